package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_PrecioTotal(t *testing.T) {
	tests := []struct {
		name      string
		precio    string
		descuento int
		want      string
	}{
		{"no discount", "120.00", 0, "120"},
		{"fifteen percent", "200.00", 15, "170"},
		{"rounds half up", "19.99", 15, "16.99"},
		{"full discount", "50", 100, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Precio: decimal.RequireFromString(tt.precio), Descuento: tt.descuento}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(p.PrecioTotal()), "got %s", p.PrecioTotal())
		})
	}
}

func TestProduct_DiscountLabel(t *testing.T) {
	assert.Equal(t, "0%", (&Product{}).DiscountLabel())
	assert.Equal(t, "15%", (&Product{Descuento: 15}).DiscountLabel())
	assert.False(t, (&Product{}).HasDiscount())
}

func TestProduct_MainImage(t *testing.T) {
	assert.Equal(t, PlaceholderImage, (&Product{}).MainImage())
	assert.Equal(t, "/img/a.png", (&Product{ImagenPrincipal: "/img/a.png"}).MainImage())
	assert.Equal(t, 3, (&Product{ImagenesAdicionales: []AdditionalImage{{URL: "a"}, {URL: "b"}}}).ImageCount())
}

func TestFacturaStatus_CanAnnul(t *testing.T) {
	assert.True(t, FacturaPending.CanAnnul())
	assert.False(t, FacturaPaid.CanAnnul())
	assert.False(t, FacturaCancelled.CanAnnul())
	assert.False(t, FacturaStatus("x").Valid())
}
