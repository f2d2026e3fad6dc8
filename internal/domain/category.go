package domain

import "time"

type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "Activo"
	CategoryInactive CategoryStatus = "Inactivo"
)

func (s CategoryStatus) Valid() bool {
	return s == CategoryActive || s == CategoryInactive
}

type Categoria struct {
	ID        int64          `json:"id"`
	Nombre    string         `json:"nombre"`
	Estado    CategoryStatus `json:"estado"`
	CreatedAt time.Time      `json:"created_at"`
}

type Subcategoria struct {
	ID          int64          `json:"id"`
	Nombre      string         `json:"nombre"`
	CategoriaID int64          `json:"categoria_id"`
	Estado      CategoryStatus `json:"estado"`
	CreatedAt   time.Time      `json:"created_at"`

	Categoria *Categoria `json:"categoria,omitempty"`
}
