package repository

import (
	"context"
	"time"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoriaModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Nombre    string    `gorm:"column:nombre;uniqueIndex;not null"`
	Estado    string    `gorm:"column:estado;not null;default:Activo"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (categoriaModel) TableName() string { return "categorias" }

type subcategoriaModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Nombre      string    `gorm:"column:nombre;not null"`
	CategoriaID int64     `gorm:"column:categoria_id;index;not null"`
	Estado      string    `gorm:"column:estado;not null;default:Activo"`
	CreatedAt   time.Time `gorm:"column:created_at"`

	Categoria categoriaModel `gorm:"foreignKey:CategoriaID"`
}

func (subcategoriaModel) TableName() string { return "subcategorias" }

func toDomainCategoria(m categoriaModel) domain.Categoria {
	return domain.Categoria{
		ID:        m.ID,
		Nombre:    m.Nombre,
		Estado:    domain.CategoryStatus(m.Estado),
		CreatedAt: m.CreatedAt,
	}
}

func toDomainSubcategoria(m subcategoriaModel) domain.Subcategoria {
	s := domain.Subcategoria{
		ID:          m.ID,
		Nombre:      m.Nombre,
		CategoriaID: m.CategoriaID,
		Estado:      domain.CategoryStatus(m.Estado),
		CreatedAt:   m.CreatedAt,
	}
	if m.Categoria.ID != 0 {
		c := toDomainCategoria(m.Categoria)
		s.Categoria = &c
	}
	return s
}

func statusOrDefault(s domain.CategoryStatus) string {
	if s == "" {
		return string(domain.CategoryActive)
	}
	return string(s)
}

func (r *CategoryRepository) CreateCategoria(ctx context.Context, c *domain.Categoria) error {
	m := categoriaModel{Nombre: c.Nombre, Estado: statusOrDefault(c.Estado)}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create categoria")
	}
	*c = toDomainCategoria(m)
	return nil
}

func (r *CategoryRepository) UpdateCategoria(ctx context.Context, c *domain.Categoria) error {
	tx := r.db.WithContext(ctx).
		Model(&categoriaModel{ID: c.ID}).
		Updates(map[string]any{"nombre": c.Nombre, "estado": statusOrDefault(c.Estado)})
	if tx.Error != nil {
		return translate(tx.Error, "update categoria")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "categoria %d", c.ID)
	}
	return nil
}

func (r *CategoryRepository) GetCategoria(ctx context.Context, id int64) (*domain.Categoria, error) {
	var m categoriaModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "get categoria")
	}
	c := toDomainCategoria(m)
	return &c, nil
}

func (r *CategoryRepository) ListCategorias(ctx context.Context) ([]domain.Categoria, error) {
	var rows []categoriaModel
	if err := r.db.WithContext(ctx).Order("nombre").Find(&rows).Error; err != nil {
		return nil, translate(err, "list categorias")
	}
	out := make([]domain.Categoria, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCategoria(m))
	}
	return out, nil
}

// DeleteCategoria removes a category and its subcategories.
func (r *CategoryRepository) DeleteCategoria(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("categoria_id = ?", id).Delete(&subcategoriaModel{}).Error; err != nil {
			return translate(err, "delete subcategorias")
		}
		res := tx.Delete(&categoriaModel{}, id)
		if res.Error != nil {
			return translate(res.Error, "delete categoria")
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(ErrNotFound, "categoria %d", id)
		}
		return nil
	})
}

func (r *CategoryRepository) CreateSubcategoria(ctx context.Context, s *domain.Subcategoria) error {
	m := subcategoriaModel{Nombre: s.Nombre, CategoriaID: s.CategoriaID, Estado: statusOrDefault(s.Estado)}
	if err := r.db.WithContext(ctx).Omit("Categoria").Create(&m).Error; err != nil {
		return translate(err, "create subcategoria")
	}
	s.ID = m.ID
	s.Estado = domain.CategoryStatus(m.Estado)
	s.CreatedAt = m.CreatedAt
	return nil
}

func (r *CategoryRepository) UpdateSubcategoria(ctx context.Context, s *domain.Subcategoria) error {
	tx := r.db.WithContext(ctx).
		Model(&subcategoriaModel{ID: s.ID}).
		Updates(map[string]any{
			"nombre":       s.Nombre,
			"categoria_id": s.CategoriaID,
			"estado":       statusOrDefault(s.Estado),
		})
	if tx.Error != nil {
		return translate(tx.Error, "update subcategoria")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "subcategoria %d", s.ID)
	}
	return nil
}

// ListSubcategorias returns subcategories with their parent category joined.
func (r *CategoryRepository) ListSubcategorias(ctx context.Context) ([]domain.Subcategoria, error) {
	var rows []subcategoriaModel
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Order("categoria_id").Order("nombre").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list subcategorias")
	}
	out := make([]domain.Subcategoria, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainSubcategoria(m))
	}
	return out, nil
}

func (r *CategoryRepository) DeleteSubcategoria(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&subcategoriaModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error, "delete subcategoria")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "subcategoria %d", id)
	}
	return nil
}
