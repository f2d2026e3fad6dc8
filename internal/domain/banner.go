package domain

import "time"

type Banner struct {
	ID        int64     `json:"id"`
	Titulo    string    `json:"titulo"`
	ImagenURL string    `json:"imagen_url"`
	Enlace    string    `json:"enlace,omitempty"`
	Orden     int       `json:"orden"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
