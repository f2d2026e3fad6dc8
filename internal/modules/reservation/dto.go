package reservation

import (
	"motopartes/internal/domain"
	"motopartes/internal/pkg/display"
)

const (
	MsgStatusUpdated = "Estado de la reserva actualizado correctamente"
	MsgStatusFailed  = "Error al actualizar el estado de la reserva"
)

type UpdateStatusRequest struct {
	Estado string `json:"estado" binding:"required"`
}

type MotoView struct {
	Anio   int    `json:"año"`
	Marca  string `json:"marca"`
	Modelo string `json:"modelo"`
}

type HorarioView struct {
	ID         int64  `json:"id"`
	Tipo       string `json:"tipo"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

type ActionView struct {
	Estado domain.ReservaStatus `json:"estado"`
	Label  string               `json:"label"`
}

// ReservaView is a reservation row as the dashboard renders it: relations
// joined, dates formatted, and the status actions it offers.
type ReservaView struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"user_id"`
	Usuario         string               `json:"usuario"`
	UsuarioEmail    string               `json:"usuario_email,omitempty"`
	Moto            MotoView             `json:"moto"`
	Vehiculo        string               `json:"vehiculo"`
	Placa           string               `json:"placa"`
	Servicio        string               `json:"servicio"`
	HorarioID       *int64               `json:"horario_id"`
	Horario         *HorarioView         `json:"horario"`
	HorarioLabel    string               `json:"horario_label"`
	Fecha           string               `json:"fecha"`
	FechaFormateada string               `json:"fecha_formateada"`
	Hora            string               `json:"hora"`
	Detalles        string               `json:"detalles"`
	Estado          domain.ReservaStatus `json:"estado"`
	EstadoLabel     string               `json:"estado_label"`
	Acciones        []ActionView         `json:"acciones"`
	CreatedAt       string               `json:"created_at"`
	UpdatedAt       string               `json:"updated_at"`
}

func actionLabel(s domain.ReservaStatus) string {
	switch s {
	case domain.ReservaConfirmed:
		return "Confirmar"
	case domain.ReservaCompleted:
		return "Completar"
	case domain.ReservaCancelled:
		return "Cancelar"
	default:
		return s.Label()
	}
}

func ToView(r *domain.Reserva) ReservaView {
	v := ReservaView{
		ID:              r.ID,
		UserID:          r.UserID,
		Placa:           r.Placa,
		HorarioID:       r.HorarioID,
		HorarioLabel:    display.NoSchedule,
		Fecha:           r.Fecha,
		FechaFormateada: display.Date(r.Fecha),
		Hora:            r.Hora,
		Detalles:        r.Detalles,
		Estado:          r.Estado,
		EstadoLabel:     r.Estado.Label(),
		Acciones:        []ActionView{},
		CreatedAt:       display.Timestamp(r.CreatedAt),
		UpdatedAt:       display.Timestamp(r.UpdatedAt),
	}
	if r.User != nil {
		v.Usuario = r.User.DisplayName()
		v.UsuarioEmail = r.User.Email
	}
	if r.Moto != nil {
		v.Moto = MotoView{Anio: r.Moto.Anio, Marca: r.Moto.Marca, Modelo: r.Moto.Modelo}
		v.Vehiculo = r.Moto.Vehiculo()
	}
	if r.Servicio != nil {
		v.Servicio = r.Servicio.Nombre
	}
	if r.Horario != nil {
		v.Horario = &HorarioView{
			ID:         r.Horario.ID,
			Tipo:       r.Horario.Tipo,
			HoraInicio: r.Horario.HoraInicio,
			HoraFin:    r.Horario.HoraFin,
		}
		v.HorarioLabel = r.Horario.Tipo + " (" + r.Horario.HoraInicio + " - " + r.Horario.HoraFin + ")"
	}
	for _, next := range r.Estado.Actions() {
		v.Acciones = append(v.Acciones, ActionView{Estado: next, Label: actionLabel(next)})
	}
	return v
}

func ToViews(rs []domain.Reserva) []ReservaView {
	out := make([]ReservaView, 0, len(rs))
	for i := range rs {
		out = append(out, ToView(&rs[i]))
	}
	return out
}
