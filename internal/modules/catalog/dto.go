package catalog

import (
	"motopartes/internal/domain"
	"motopartes/internal/pkg/display"

	"github.com/shopspring/decimal"
)

const (
	MsgDeleted      = "Producto eliminado correctamente"
	MsgDeleteFailed = "Error al eliminar el producto"
)

type ImageRequest struct {
	URL    string `json:"url" validate:"required,max=500"`
	Estilo string `json:"estilo" validate:"max=100"`
}

type ProductRequest struct {
	Codigo              string          `json:"codigo" validate:"required,max=50"`
	Nombre              string          `json:"nombre" validate:"required,max=200"`
	Precio              decimal.Decimal `json:"precio"`
	Descuento           int             `json:"descuento" validate:"min=0,max=100"`
	Stock               int             `json:"stock" validate:"min=0"`
	Estado              string          `json:"estado" validate:"omitempty,oneof=Activo Inactivo Agotado"`
	ImagenPrincipal     string          `json:"imagen_principal" validate:"max=500"`
	ImagenesAdicionales []ImageRequest  `json:"imagenes_adicionales" validate:"dive"`
	Destacado           bool            `json:"destacado"`
	MasVendido          bool            `json:"mas_vendido"`
	SubcategoriaID      *int64          `json:"subcategoria_id"`
	Detalles            string          `json:"detalles"`
}

func (r ProductRequest) toDomain() *domain.Product {
	imgs := make([]domain.AdditionalImage, 0, len(r.ImagenesAdicionales))
	for _, img := range r.ImagenesAdicionales {
		imgs = append(imgs, domain.AdditionalImage{URL: img.URL, Estilo: img.Estilo})
	}
	return &domain.Product{
		Codigo:              r.Codigo,
		Nombre:              r.Nombre,
		Precio:              r.Precio,
		Descuento:           r.Descuento,
		Stock:               r.Stock,
		Estado:              domain.ProductStatus(r.Estado),
		ImagenPrincipal:     r.ImagenPrincipal,
		ImagenesAdicionales: imgs,
		Destacado:           r.Destacado,
		MasVendido:          r.MasVendido,
		SubcategoriaID:      r.SubcategoriaID,
		Detalles:            r.Detalles,
	}
}

type ImageView struct {
	URL    string `json:"url"`
	Estilo string `json:"estilo"`
}

// ProductView is a product with every display value precomputed.
type ProductView struct {
	ID                  int64       `json:"id"`
	Codigo              string      `json:"codigo"`
	Nombre              string      `json:"nombre"`
	Precio              string      `json:"precio"`
	Descuento           string      `json:"descuento"`
	PrecioTotal         string      `json:"precio_total"`
	Discount            Discount    `json:"discount"`
	Stock               int         `json:"stock"`
	Estado              string      `json:"estado"`
	Badge               Badge       `json:"badge"`
	ImagenPrincipal     string      `json:"imagen_principal"`
	ImagenesAdicionales []ImageView `json:"imagenes_adicionales"`
	TotalImagenes       int         `json:"total_imagenes"`
	Destacado           bool        `json:"destacado"`
	MasVendido          bool        `json:"mas_vendido"`
	SubcategoriaID      *int64      `json:"subcategoria_id"`
	Detalles            string      `json:"detalles,omitempty"`
	CreatedAt           string      `json:"created_at"`
}

func ToView(p *domain.Product) ProductView {
	d := DiscountDisplay(p)
	v := ProductView{
		ID:                  p.ID,
		Codigo:              p.Codigo,
		Nombre:              p.Nombre,
		Precio:              d.Original,
		Descuento:           d.Percent,
		PrecioTotal:         d.Total,
		Discount:            d,
		Stock:               p.Stock,
		Estado:              string(p.Estado),
		Badge:               StatusBadge(p.Estado),
		ImagenPrincipal:     p.MainImage(),
		ImagenesAdicionales: make([]ImageView, 0, len(p.ImagenesAdicionales)),
		TotalImagenes:       p.ImageCount(),
		Destacado:           p.Destacado,
		MasVendido:          p.MasVendido,
		SubcategoriaID:      p.SubcategoriaID,
		Detalles:            p.Detalles,
		CreatedAt:           display.Timestamp(p.CreatedAt),
	}
	for i := range p.ImagenesAdicionales {
		v.ImagenesAdicionales = append(v.ImagenesAdicionales, ImageView{
			URL:    ResolveImage(p, i+1),
			Estilo: ImageLabel(p, i+1),
		})
	}
	return v
}

func ToViews(ps []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(ps))
	for i := range ps {
		out = append(out, ToView(&ps[i]))
	}
	return out
}

// ListProps is the payload behind the product list pages. Rows is empty
// and EmptyMessage set when nothing matches.
type ListProps struct {
	Productos    []ProductView `json:"productos"`
	Query        string        `json:"q"`
	Total        int           `json:"total_registrados"`
	CountLabel   string        `json:"count_label"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// CountLabel reads "N productos registrados".
func CountLabel(n int) string {
	return display.CountLabel(n, "producto registrado", "productos registrados")
}

func NewListProps(all, filtered []domain.Product, q string) ListProps {
	props := ListProps{
		Productos:  ToViews(filtered),
		Query:      q,
		Total:      len(all),
		CountLabel: CountLabel(len(all)),
	}
	if len(filtered) == 0 {
		props.EmptyMessage = EmptyListMessage
	}
	return props
}

// ImageResult answers a gallery navigation request.
type ImageResult struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	Label string `json:"label"`
	Total int    `json:"total"`
}
