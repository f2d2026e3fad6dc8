package auth

import (
	"context"

	"motopartes/internal/domain"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role, firstName string) (string, error)
}
