package catalog

import (
	"context"

	"motopartes/internal/domain"
	"motopartes/internal/modules/finder"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// MotoOptionsSource supplies the finder option set shown on the storefront.
type MotoOptionsSource interface {
	Options(ctx context.Context) (finder.Options, error)
}
