package auth

import (
	"context"
	"strings"

	"motopartes/internal/domain"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	users UserRepositoryInterface
	jwt   tokenIssuer
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(users UserRepositoryInterface, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.FirstName)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}

// Register creates a customer account. Admins are only created by the seeder.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// RedirectOptions lists where a user may go after signing in. Admins get
// the dashboard as well as the storefront.
func RedirectOptions(role domain.UserRole) []RedirectOption {
	home := RedirectOption{Label: "Ir a la tienda", Path: "/"}
	if role == domain.RoleAdmin {
		return []RedirectOption{
			{Label: "Ir al dashboard", Path: "/dashboard"},
			home,
		}
	}
	return []RedirectOption{home}
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(b), nil
}
