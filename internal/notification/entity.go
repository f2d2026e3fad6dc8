package notification

import "time"

// Event type constants
const (
	TypeReservaStatusChanged = "reserva.estado_cambiado"
	TypeFacturaAnnulled      = "factura.anulada"
)

// ReservaStatusChanged is published after a reservation moves to a new status.
type ReservaStatusChanged struct {
	Type      string    `json:"type"`
	ReservaID int64     `json:"reserva_id"`
	UserID    int64     `json:"user_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// FacturaAnnulled is published when a pending invoice is annulled.
type FacturaAnnulled struct {
	Type      string    `json:"type"`
	FacturaID int64     `json:"factura_id"`
	Numero    string    `json:"numero"`
	ChangedAt time.Time `json:"changed_at"`
}
