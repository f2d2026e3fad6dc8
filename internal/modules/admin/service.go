package admin

import (
	"context"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
)

type UserCounter interface {
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
}

type ReservaCounter interface {
	CountByStatus(ctx context.Context) (map[domain.ReservaStatus]int64, error)
}

type FacturaCounter interface {
	CountByStatus(ctx context.Context) (map[domain.FacturaStatus]int64, error)
}

// ProductLister is satisfied by the catalog service, so stats reuse its
// cached product list.
type ProductLister interface {
	All(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	users    UserCounter
	reservas ReservaCounter
	facturas FacturaCounter
	products ProductLister
}

func NewService(users UserCounter, reservas ReservaCounter, facturas FacturaCounter, products ProductLister) *Service {
	return &Service{users: users, reservas: reservas, facturas: facturas, products: products}
}

// GetStats collects the numbers shown on the dashboard landing page.
func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	clientes, err := s.users.CountByRole(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, errors.Wrap(err, "count clientes")
	}
	reservas, err := s.reservas.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count reservas")
	}
	facturas, err := s.facturas.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count facturas")
	}
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list productos")
	}

	stats := &StatsResponse{
		TotalClientes:      clientes,
		Reservas:           reservas,
		ReservasPendientes: reservas[domain.ReservaPending],
		FacturasPendientes: facturas[domain.FacturaPending],
		TotalProductos:     len(products),
	}
	for _, p := range products {
		if p.Stock == 0 || p.Estado == domain.ProductOutOfStock {
			stats.ProductosAgotados++
		}
	}
	for _, n := range reservas {
		stats.TotalReservas += n
	}
	return stats, nil
}
