package repository

import (
	"context"
	"time"

	"motopartes/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type motoModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index;not null"`
	Anio      int       `gorm:"column:anio;not null"`
	Marca     string    `gorm:"column:marca;not null"`
	Modelo    string    `gorm:"column:modelo;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (motoModel) TableName() string { return "motos" }

type servicioModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Nombre      string          `gorm:"column:nombre;not null"`
	Descripcion string          `gorm:"column:descripcion"`
	Precio      decimal.Decimal `gorm:"column:precio;type:decimal(10,2);not null"`
}

func (servicioModel) TableName() string { return "servicios" }

type horarioModel struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	Tipo       string `gorm:"column:tipo;not null"`
	HoraInicio string `gorm:"column:hora_inicio;not null"`
	HoraFin    string `gorm:"column:hora_fin;not null"`
}

func (horarioModel) TableName() string { return "horarios" }

type motoCatalogModel struct {
	ID     int64  `gorm:"column:id;primaryKey"`
	Anio   int    `gorm:"column:anio;not null;uniqueIndex:idx_moto_models_triple"`
	Marca  string `gorm:"column:marca;not null;uniqueIndex:idx_moto_models_triple"`
	Modelo string `gorm:"column:modelo;not null;uniqueIndex:idx_moto_models_triple"`
}

func (motoCatalogModel) TableName() string { return "moto_models" }

func toDomainMoto(m motoModel) *domain.Moto {
	return &domain.Moto{ID: m.ID, UserID: m.UserID, Anio: m.Anio, Marca: m.Marca, Modelo: m.Modelo, CreatedAt: m.CreatedAt}
}

func toDomainServicio(m servicioModel) *domain.Servicio {
	return &domain.Servicio{ID: m.ID, Nombre: m.Nombre, Descripcion: m.Descripcion, Precio: m.Precio}
}

func toDomainHorario(m horarioModel) *domain.Horario {
	return &domain.Horario{ID: m.ID, Tipo: m.Tipo, HoraInicio: m.HoraInicio, HoraFin: m.HoraFin}
}

// GarageRepository stores the reference data a reservation points at:
// customer motorcycles, services, time windows and the finder catalogue.
type GarageRepository struct {
	db *gorm.DB
}

func NewGarageRepository(db *gorm.DB) *GarageRepository {
	return &GarageRepository{db: db}
}

func (r *GarageRepository) CreateMoto(ctx context.Context, m *domain.Moto) error {
	row := motoModel{UserID: m.UserID, Anio: m.Anio, Marca: m.Marca, Modelo: m.Modelo}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "create moto")
	}
	*m = *toDomainMoto(row)
	return nil
}

func (r *GarageRepository) CreateServicio(ctx context.Context, s *domain.Servicio) error {
	row := servicioModel{Nombre: s.Nombre, Descripcion: s.Descripcion, Precio: s.Precio}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "create servicio")
	}
	*s = *toDomainServicio(row)
	return nil
}

func (r *GarageRepository) CreateHorario(ctx context.Context, h *domain.Horario) error {
	row := horarioModel{Tipo: h.Tipo, HoraInicio: h.HoraInicio, HoraFin: h.HoraFin}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "create horario")
	}
	*h = *toDomainHorario(row)
	return nil
}

func (r *GarageRepository) CreateMotoModel(ctx context.Context, m *domain.MotoModel) error {
	row := motoCatalogModel{Anio: m.Anio, Marca: m.Marca, Modelo: m.Modelo}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "create moto model")
	}
	m.ID = row.ID
	return nil
}

// ListMotoModels returns the finder catalogue ordered by year desc, brand, model.
func (r *GarageRepository) ListMotoModels(ctx context.Context) ([]domain.MotoModel, error) {
	var rows []motoCatalogModel
	err := r.db.WithContext(ctx).
		Order("anio DESC").Order("marca").Order("modelo").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list moto models")
	}
	out := make([]domain.MotoModel, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.MotoModel{ID: m.ID, Anio: m.Anio, Marca: m.Marca, Modelo: m.Modelo})
	}
	return out, nil
}
