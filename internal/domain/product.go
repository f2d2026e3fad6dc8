package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const PlaceholderImage = "/images/placeholder.png"

type ProductStatus string

const (
	ProductActive     ProductStatus = "Activo"
	ProductInactive   ProductStatus = "Inactivo"
	ProductOutOfStock ProductStatus = "Agotado"
)

// AdditionalImage is one entry of a product's gallery after the main image.
type AdditionalImage struct {
	URL    string `json:"url"`
	Estilo string `json:"estilo,omitempty"`
}

type Product struct {
	ID                  int64             `json:"id"`
	Codigo              string            `json:"codigo"`
	Nombre              string            `json:"nombre"`
	Precio              decimal.Decimal   `json:"precio"`
	Descuento           int               `json:"descuento"` // percent, 0..100
	Stock               int               `json:"stock"`
	Estado              ProductStatus     `json:"estado"`
	ImagenPrincipal     string            `json:"imagen_principal"`
	ImagenesAdicionales []AdditionalImage `json:"imagenes_adicionales"`
	Destacado           bool              `json:"destacado"`
	MasVendido          bool              `json:"mas_vendido"`
	SubcategoriaID      *int64            `json:"subcategoria_id"`
	Detalles            string            `json:"detalles,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// PrecioTotal is the price after discount, rounded half-up to cents.
func (p *Product) PrecioTotal() decimal.Decimal {
	if p.Descuento <= 0 {
		return p.Precio.Round(2)
	}
	d := decimal.NewFromInt(int64(p.Descuento))
	return p.Precio.Sub(p.Precio.Mul(d).Div(hundred)).Round(2)
}

// DiscountLabel renders the discount the way the storefront shows it, e.g. "15%".
func (p *Product) DiscountLabel() string {
	return strconv.Itoa(p.Descuento) + "%"
}

func (p *Product) HasDiscount() bool {
	return p.Descuento > 0
}

// MainImage returns the main image URL or the placeholder.
func (p *Product) MainImage() string {
	if p.ImagenPrincipal == "" {
		return PlaceholderImage
	}
	return p.ImagenPrincipal
}

// ImageCount is the number of gallery slots: the main image plus additional ones.
func (p *Product) ImageCount() int {
	return 1 + len(p.ImagenesAdicionales)
}
