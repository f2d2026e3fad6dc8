package repository

import (
	"context"
	"time"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID                  int64                                       `gorm:"column:id;primaryKey"`
	Codigo              string                                      `gorm:"column:codigo;uniqueIndex;not null"`
	Nombre              string                                      `gorm:"column:nombre;not null"`
	Precio              decimal.Decimal                             `gorm:"column:precio;type:decimal(10,2);not null"`
	Descuento           int                                         `gorm:"column:descuento;not null;default:0"`
	Stock               int                                         `gorm:"column:stock;not null;default:0"`
	Estado              string                                      `gorm:"column:estado;not null;default:Activo"`
	ImagenPrincipal     string                                      `gorm:"column:imagen_principal"`
	ImagenesAdicionales datatypes.JSONSlice[domain.AdditionalImage] `gorm:"column:imagenes_adicionales"`
	Destacado           bool                                        `gorm:"column:destacado;index"`
	MasVendido          bool                                        `gorm:"column:mas_vendido;index"`
	SubcategoriaID      *int64                                      `gorm:"column:subcategoria_id;index"`
	Detalles            string                                      `gorm:"column:detalles"`
	CreatedAt           time.Time                                   `gorm:"column:created_at"`
	UpdatedAt           time.Time                                   `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "productos" }

func toDomainProduct(m productModel) domain.Product {
	imgs := make([]domain.AdditionalImage, len(m.ImagenesAdicionales))
	copy(imgs, m.ImagenesAdicionales)
	return domain.Product{
		ID:                  m.ID,
		Codigo:              m.Codigo,
		Nombre:              m.Nombre,
		Precio:              m.Precio,
		Descuento:           m.Descuento,
		Stock:               m.Stock,
		Estado:              domain.ProductStatus(m.Estado),
		ImagenPrincipal:     m.ImagenPrincipal,
		ImagenesAdicionales: imgs,
		Destacado:           m.Destacado,
		MasVendido:          m.MasVendido,
		SubcategoriaID:      m.SubcategoriaID,
		Detalles:            m.Detalles,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toProductModel(p *domain.Product) productModel {
	estado := p.Estado
	if estado == "" {
		estado = domain.ProductActive
	}
	return productModel{
		ID:                  p.ID,
		Codigo:              p.Codigo,
		Nombre:              p.Nombre,
		Precio:              p.Precio,
		Descuento:           p.Descuento,
		Stock:               p.Stock,
		Estado:              string(estado),
		ImagenPrincipal:     p.ImagenPrincipal,
		ImagenesAdicionales: datatypes.NewJSONSlice(p.ImagenesAdicionales),
		Destacado:           p.Destacado,
		MasVendido:          p.MasVendido,
		SubcategoriaID:      p.SubcategoriaID,
		Detalles:            p.Detalles,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create producto")
	}
	*p = toDomainProduct(m)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	tx := r.db.WithContext(ctx).
		Model(&productModel{ID: p.ID}).
		Select("codigo", "nombre", "precio", "descuento", "stock", "estado",
			"imagen_principal", "imagenes_adicionales", "destacado", "mas_vendido",
			"subcategoria_id", "detalles", "updated_at").
		Updates(&m)
	if tx.Error != nil {
		return translate(tx.Error, "update producto")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "producto %d", p.ID)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "get producto")
	}
	p := toDomainProduct(m)
	return &p, nil
}

// List returns every product in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "list productos")
	}
	out := make([]domain.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainProduct(m))
	}
	return out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error, "delete producto")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "producto %d", id)
	}
	return nil
}
