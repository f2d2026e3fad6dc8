package catalog

import (
	"strings"

	"motopartes/internal/domain"
	"motopartes/internal/pkg/display"
)

const (
	MainImageLabel   = "Imagen principal"
	NoStyleLabel     = "Sin descripción"
	EmptyListMessage = "No se encontraron productos"
)

// Filter keeps the products whose nombre or codigo contains term,
// ignoring case. An empty term keeps everything. Order is preserved.
func Filter(products []domain.Product, term string) []domain.Product {
	needle := strings.ToLower(term)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Nombre), needle) ||
			strings.Contains(strings.ToLower(p.Codigo), needle) {
			out = append(out, p)
		}
	}
	return out
}

// additional returns the gallery entry for index, where index 1 is the
// first additional image. Entries without a URL count as missing.
func additional(p *domain.Product, index int) (domain.AdditionalImage, bool) {
	if index < 1 || index > len(p.ImagenesAdicionales) {
		return domain.AdditionalImage{}, false
	}
	img := p.ImagenesAdicionales[index-1]
	if strings.TrimSpace(img.URL) == "" {
		return domain.AdditionalImage{}, false
	}
	return img, true
}

// ResolveImage returns the URL shown at gallery position index. Position 0
// and any position without an image fall back to the main image.
func ResolveImage(p *domain.Product, index int) string {
	if img, ok := additional(p, index); ok {
		return img.URL
	}
	return p.MainImage()
}

// ImageLabel describes the image at index for the gallery caption.
// Positions past the main image without a usable entry have no style.
func ImageLabel(p *domain.Product, index int) string {
	if index < 1 {
		return MainImageLabel
	}
	img, ok := additional(p, index)
	if !ok || img.Estilo == "" {
		return NoStyleLabel
	}
	return img.Estilo
}

type Direction int

const (
	Next Direction = 1
	Prev Direction = -1
)

// ParseDirection accepts "next"/"prev" and the Spanish "siguiente"/"anterior".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "siguiente", "1", "+1":
		return Next, true
	case "prev", "previous", "anterior", "-1":
		return Prev, true
	}
	return 0, false
}

// CycleImage moves one position through the gallery, wrapping at both ends.
// The gallery has 1+len(additional) positions, so with no additional
// images the index stays 0.
func CycleImage(p *domain.Product, current int, dir Direction) int {
	total := p.ImageCount()
	current = ((current % total) + total) % total
	if dir == Prev {
		return (current - 1 + total) % total
	}
	return (current + 1) % total
}

// Discount is how a product's price and discount are shown.
type Discount struct {
	Show     bool   `json:"show"`
	Original string `json:"original"`
	Total    string `json:"total"`
	Percent  string `json:"percent"`
	Label    string `json:"label,omitempty"`
}

// DiscountDisplay suppresses the struck-through price and badge when the
// discount is "0%".
func DiscountDisplay(p *domain.Product) Discount {
	d := Discount{
		Original: display.Money(p.Precio),
		Total:    display.Money(p.PrecioTotal()),
		Percent:  p.DiscountLabel(),
	}
	if d.Percent == "0%" {
		return d
	}
	d.Show = true
	d.Label = d.Percent + " descuento"
	return d
}

type Badge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

// StatusBadge maps a product estado to a badge. Unknown values are shown
// as-is with the outline variant.
func StatusBadge(estado domain.ProductStatus) Badge {
	switch estado {
	case domain.ProductActive:
		return Badge{Label: "Activo", Variant: "success"}
	case domain.ProductInactive:
		return Badge{Label: "Inactivo", Variant: "warning"}
	case domain.ProductOutOfStock:
		return Badge{Label: "Agotado", Variant: "danger"}
	default:
		return Badge{Label: string(estado), Variant: "outline"}
	}
}
