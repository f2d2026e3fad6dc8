package repository

import (
	"context"
	"time"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReservaRepository struct {
	db *gorm.DB
}

func NewReservaRepository(db *gorm.DB) *ReservaRepository {
	return &ReservaRepository{db: db}
}

type reservaModel struct {
	ID         int64          `gorm:"column:id;primaryKey"`
	UserID     int64          `gorm:"column:user_id;index;not null"`
	MotoID     int64          `gorm:"column:moto_id;not null"`
	Placa      string         `gorm:"column:placa;not null"`
	ServicioID int64          `gorm:"column:servicio_id;not null"`
	HorarioID  *int64         `gorm:"column:horario_id"`
	Fecha      datatypes.Date `gorm:"column:fecha;not null"`
	Hora       string         `gorm:"column:hora"`
	Detalles   string         `gorm:"column:detalles"`
	Estado     string         `gorm:"column:estado;index;not null;default:pendiente"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`

	User     userModel     `gorm:"foreignKey:UserID"`
	Moto     motoModel     `gorm:"foreignKey:MotoID"`
	Servicio servicioModel `gorm:"foreignKey:ServicioID"`
	Horario  *horarioModel `gorm:"foreignKey:HorarioID"`
}

func (reservaModel) TableName() string { return "reservas" }

func toDomainReserva(m reservaModel) (*domain.Reserva, error) {
	estado := domain.ReservaStatus(m.Estado)
	if !estado.Valid() {
		return nil, errors.Wrapf(domain.ErrInvalidReservaStatus, "reserva %d has estado %q", m.ID, m.Estado)
	}

	r := &domain.Reserva{
		ID:         m.ID,
		UserID:     m.UserID,
		MotoID:     m.MotoID,
		Placa:      m.Placa,
		ServicioID: m.ServicioID,
		HorarioID:  m.HorarioID,
		Fecha:      time.Time(m.Fecha).Format(time.DateOnly),
		Hora:       m.Hora,
		Detalles:   m.Detalles,
		Estado:     estado,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.User.ID != 0 {
		r.User = toDomainUser(m.User)
	}
	if m.Moto.ID != 0 {
		r.Moto = toDomainMoto(m.Moto)
	}
	if m.Servicio.ID != 0 {
		r.Servicio = toDomainServicio(m.Servicio)
	}
	if m.Horario != nil {
		r.Horario = toDomainHorario(*m.Horario)
	}
	return r, nil
}

func toReservaModel(r *domain.Reserva) (reservaModel, error) {
	fecha, err := time.Parse(time.DateOnly, r.Fecha)
	if err != nil {
		return reservaModel{}, errors.Wrapf(err, "reserva fecha %q", r.Fecha)
	}
	estado := r.Estado
	if estado == "" {
		estado = domain.ReservaPending
	}
	if !estado.Valid() {
		return reservaModel{}, errors.Wrapf(domain.ErrInvalidReservaStatus, "%q", estado)
	}
	return reservaModel{
		ID:         r.ID,
		UserID:     r.UserID,
		MotoID:     r.MotoID,
		Placa:      r.Placa,
		ServicioID: r.ServicioID,
		HorarioID:  r.HorarioID,
		Fecha:      datatypes.Date(fecha),
		Hora:       r.Hora,
		Detalles:   r.Detalles,
		Estado:     string(estado),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

func (r *ReservaRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Moto").
		Preload("Servicio").
		Preload("Horario")
}

func (r *ReservaRepository) Create(ctx context.Context, res *domain.Reserva) error {
	m, err := toReservaModel(res)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("User", "Moto", "Servicio", "Horario").Create(&m).Error; err != nil {
		return translate(err, "create reserva")
	}
	res.ID = m.ID
	res.Estado = domain.ReservaStatus(m.Estado)
	res.CreatedAt = m.CreatedAt
	res.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID returns the reservation with user, moto, servicio and horario loaded.
func (r *ReservaRepository) GetByID(ctx context.Context, id int64) (*domain.Reserva, error) {
	var m reservaModel
	if err := r.joined(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "get reserva")
	}
	return toDomainReserva(m)
}

// List returns reservations in the given status, or all of them when
// status is empty, most recent appointment first.
func (r *ReservaRepository) List(ctx context.Context, status domain.ReservaStatus) ([]domain.Reserva, error) {
	q := r.joined(ctx)
	if status != "" {
		q = q.Where("estado = ?", string(status))
	}

	var rows []reservaModel
	if err := q.Order("fecha DESC").Order("hora DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list reservas")
	}

	out := make([]domain.Reserva, 0, len(rows))
	for _, m := range rows {
		res, err := toDomainReserva(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

// CompareAndSetStatus moves reservation id from one status to another.
// It returns ErrConflict when the row is no longer in status from.
func (r *ReservaRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to domain.ReservaStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&reservaModel{}).
		Where("id = ? AND estado = ?", id, string(from)).
		Updates(map[string]any{
			"estado":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return translate(tx.Error, "update reserva estado")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrConflict, "reserva %d is no longer %s", id, from)
	}
	return nil
}

// CountByStatus returns the number of reservations per status. Statuses
// with no rows are present with a zero count.
func (r *ReservaRepository) CountByStatus(ctx context.Context) (map[domain.ReservaStatus]int64, error) {
	var rows []struct {
		Estado string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&reservaModel{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count reservas")
	}

	out := make(map[domain.ReservaStatus]int64, len(domain.ReservaStatuses))
	for _, s := range domain.ReservaStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[domain.ReservaStatus(row.Estado)] = row.Total
	}
	return out, nil
}
