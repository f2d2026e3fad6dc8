package repository

import (
	"context"
	"time"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type facturaModel struct {
	ID           int64           `gorm:"column:id;primaryKey"`
	Numero       string          `gorm:"column:numero;uniqueIndex;not null"`
	ReservaID    *int64          `gorm:"column:reserva_id;index"`
	Cliente      string          `gorm:"column:cliente;not null"`
	Total        decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null"`
	Estado       string          `gorm:"column:estado;index;not null"`
	FechaEmision time.Time       `gorm:"column:fecha_emision;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (facturaModel) TableName() string { return "facturas" }

func toDomainFactura(m facturaModel) domain.Factura {
	return domain.Factura{
		ID:           m.ID,
		Numero:       m.Numero,
		ReservaID:    m.ReservaID,
		Cliente:      m.Cliente,
		Total:        m.Total,
		Estado:       domain.FacturaStatus(m.Estado),
		FechaEmision: m.FechaEmision,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, f *domain.Factura) error {
	estado := f.Estado
	if estado == "" {
		estado = domain.FacturaPending
	}
	m := facturaModel{
		Numero:       f.Numero,
		ReservaID:    f.ReservaID,
		Cliente:      f.Cliente,
		Total:        f.Total,
		Estado:       string(estado),
		FechaEmision: f.FechaEmision,
	}
	if m.FechaEmision.IsZero() {
		m.FechaEmision = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create factura")
	}
	*f = toDomainFactura(m)
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Factura, error) {
	var m facturaModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "get factura")
	}
	f := toDomainFactura(m)
	return &f, nil
}

// List returns invoices newest first, optionally restricted to one status.
func (r *InvoiceRepository) List(ctx context.Context, status domain.FacturaStatus) ([]domain.Factura, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("estado = ?", string(status))
	}
	var rows []facturaModel
	if err := q.Order("fecha_emision DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list facturas")
	}
	out := make([]domain.Factura, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainFactura(m))
	}
	return out, nil
}

// CompareAndSetStatus behaves like ReservaRepository.CompareAndSetStatus.
func (r *InvoiceRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to domain.FacturaStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&facturaModel{}).
		Where("id = ? AND estado = ?", id, string(from)).
		Updates(map[string]any{"estado": string(to), "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return translate(tx.Error, "update factura estado")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrConflict, "factura %d is no longer %s", id, from)
	}
	return nil
}

func (r *InvoiceRepository) CountByStatus(ctx context.Context) (map[domain.FacturaStatus]int64, error) {
	var rows []struct {
		Estado string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&facturaModel{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count facturas")
	}

	out := map[domain.FacturaStatus]int64{
		domain.FacturaPending:   0,
		domain.FacturaPaid:      0,
		domain.FacturaCancelled: 0,
	}
	for _, row := range rows {
		out[domain.FacturaStatus(row.Estado)] = row.Total
	}
	return out, nil
}
