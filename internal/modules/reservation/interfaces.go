package reservation

import (
	"context"

	"motopartes/internal/domain"
)

type ReservaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reserva, error)
	List(ctx context.Context, status domain.ReservaStatus) ([]domain.Reserva, error)
	CompareAndSetStatus(ctx context.Context, id int64, from, to domain.ReservaStatus) error
	CountByStatus(ctx context.Context) (map[domain.ReservaStatus]int64, error)
}
