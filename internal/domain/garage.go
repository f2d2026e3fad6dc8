package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Moto is a customer's motorcycle.
type Moto struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Anio      int       `json:"año"`
	Marca     string    `json:"marca"`
	Modelo    string    `json:"modelo"`
	CreatedAt time.Time `json:"created_at"`
}

// Vehiculo renders "Honda CB190R 2022".
func (m *Moto) Vehiculo() string {
	if m == nil {
		return ""
	}
	return m.Marca + " " + m.Modelo + " " + strconv.Itoa(m.Anio)
}

// Servicio is a kind of maintenance that can be booked.
type Servicio struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
}

// Horario is a named time window a reservation may be assigned to.
type Horario struct {
	ID         int64  `json:"id"`
	Tipo       string `json:"tipo"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

// MotoModel is one entry of the finder's static year/brand/model catalogue.
type MotoModel struct {
	ID     int64  `json:"id"`
	Anio   int    `json:"year"`
	Marca  string `json:"marca"`
	Modelo string `json:"modelo"`
}
