package domain

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrInvalidReservaStatus = errors.New("invalid reservation status")

type ReservaStatus string

const (
	ReservaPending   ReservaStatus = "pendiente"
	ReservaConfirmed ReservaStatus = "confirmada"
	ReservaCompleted ReservaStatus = "completada"
	ReservaCancelled ReservaStatus = "cancelada"
)

// ReservaStatuses lists every status in dashboard order.
var ReservaStatuses = []ReservaStatus{
	ReservaPending,
	ReservaConfirmed,
	ReservaCompleted,
	ReservaCancelled,
}

var reservaTransitions = map[ReservaStatus][]ReservaStatus{
	ReservaPending:   {ReservaConfirmed, ReservaCancelled},
	ReservaConfirmed: {ReservaCompleted, ReservaCancelled},
	ReservaCompleted: nil,
	ReservaCancelled: nil,
}

var reservaAliases = map[string]ReservaStatus{
	"pending":   ReservaPending,
	"confirmed": ReservaConfirmed,
	"completed": ReservaCompleted,
	"cancelled": ReservaCancelled,
	"canceled":  ReservaCancelled,
}

// ParseReservaStatus accepts the stored Spanish values and their English
// names, case-insensitively. Anything else is rejected.
func ParseReservaStatus(s string) (ReservaStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if st := ReservaStatus(v); st.Valid() {
		return st, nil
	}
	if st, ok := reservaAliases[v]; ok {
		return st, nil
	}
	return "", errors.Wrapf(ErrInvalidReservaStatus, "%q", s)
}

func (s ReservaStatus) Valid() bool {
	_, ok := reservaTransitions[s]
	return ok
}

func (s ReservaStatus) IsTerminal() bool {
	return s.Valid() && len(reservaTransitions[s]) == 0
}

// Actions returns the statuses a reservation in s may move to.
func (s ReservaStatus) Actions() []ReservaStatus {
	next := reservaTransitions[s]
	out := make([]ReservaStatus, len(next))
	copy(out, next)
	return out
}

func (s ReservaStatus) CanTransitionTo(next ReservaStatus) bool {
	for _, n := range reservaTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

func (s ReservaStatus) Label() string {
	switch s {
	case ReservaPending:
		return "Pendiente"
	case ReservaConfirmed:
		return "Confirmada"
	case ReservaCompleted:
		return "Completada"
	case ReservaCancelled:
		return "Cancelada"
	default:
		return string(s)
	}
}

type Reserva struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	MotoID     int64         `json:"moto_id"`
	Placa      string        `json:"placa"`
	ServicioID int64         `json:"servicio_id"`
	HorarioID  *int64        `json:"horario_id"`
	Fecha      string        `json:"fecha"` // calendar day, YYYY-MM-DD
	Hora       string        `json:"hora"`
	Detalles   string        `json:"detalles"`
	Estado     ReservaStatus `json:"estado"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	User     *User     `json:"user,omitempty"`
	Moto     *Moto     `json:"moto,omitempty"`
	Servicio *Servicio `json:"servicio,omitempty"`
	Horario  *Horario  `json:"horario,omitempty"`
}
