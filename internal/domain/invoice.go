package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FacturaStatus string

const (
	FacturaPending   FacturaStatus = "pendiente"
	FacturaPaid      FacturaStatus = "pagada"
	FacturaCancelled FacturaStatus = "anulada"
)

func (s FacturaStatus) Valid() bool {
	switch s {
	case FacturaPending, FacturaPaid, FacturaCancelled:
		return true
	}
	return false
}

// CanAnnul reports whether an invoice in s may be annulled. Only pending
// invoices can; paid ones are settled outside this system.
func (s FacturaStatus) CanAnnul() bool {
	return s == FacturaPending
}

type Factura struct {
	ID           int64           `json:"id"`
	Numero       string          `json:"numero"`
	ReservaID    *int64          `json:"reserva_id"`
	Cliente      string          `json:"cliente"`
	Total        decimal.Decimal `json:"total"`
	Estado       FacturaStatus   `json:"estado"`
	FechaEmision time.Time       `json:"fecha_emision"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
