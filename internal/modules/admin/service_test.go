package admin

import (
	"context"
	"testing"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

/* ==================== MOCKS ==================== */

type MockUserCounter struct{ mock.Mock }

func (m *MockUserCounter) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockReservaCounter struct{ mock.Mock }

func (m *MockReservaCounter) CountByStatus(ctx context.Context) (map[domain.ReservaStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ReservaStatus]int64), args.Error(1)
}

type MockFacturaCounter struct{ mock.Mock }

func (m *MockFacturaCounter) CountByStatus(ctx context.Context) (map[domain.FacturaStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.FacturaStatus]int64), args.Error(1)
}

type MockProductLister struct{ mock.Mock }

func (m *MockProductLister) All(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

/* ==================== TESTS ==================== */

func TestGetStats(t *testing.T) {
	users := new(MockUserCounter)
	reservas := new(MockReservaCounter)
	facturas := new(MockFacturaCounter)
	products := new(MockProductLister)

	users.On("CountByRole", mock.Anything, domain.RoleCustomer).Return(int64(3), nil)
	reservas.On("CountByStatus", mock.Anything).Return(map[domain.ReservaStatus]int64{
		domain.ReservaPending:   2,
		domain.ReservaConfirmed: 1,
		domain.ReservaCompleted: 4,
		domain.ReservaCancelled: 0,
	}, nil)
	facturas.On("CountByStatus", mock.Anything).Return(map[domain.FacturaStatus]int64{
		domain.FacturaPending: 5,
	}, nil)
	products.On("All", mock.Anything).Return([]domain.Product{
		{ID: 1, Stock: 3, Estado: domain.ProductActive},
		{ID: 2, Stock: 0, Estado: domain.ProductActive},
		{ID: 3, Stock: 7, Estado: domain.ProductOutOfStock},
	}, nil)

	svc := NewService(users, reservas, facturas, products)
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalClientes)
	assert.Equal(t, int64(7), stats.TotalReservas)
	assert.Equal(t, int64(2), stats.ReservasPendientes)
	assert.Equal(t, int64(5), stats.FacturasPendientes)
	assert.Equal(t, 3, stats.TotalProductos)
	assert.Equal(t, 2, stats.ProductosAgotados)
}

func TestGetStats_PropagatesErrors(t *testing.T) {
	users := new(MockUserCounter)
	reservas := new(MockReservaCounter)
	users.On("CountByRole", mock.Anything, domain.RoleCustomer).Return(int64(0), nil)
	reservas.On("CountByStatus", mock.Anything).Return(nil, errors.New("db down"))

	svc := NewService(users, reservas, new(MockFacturaCounter), new(MockProductLister))
	_, err := svc.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count reservas")
}
