package auth

import (
	"context"
	"testing"

	"motopartes/internal/domain"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubTokens struct{ last string }

func (s *stubTokens) GenerateToken(userID int64, role, firstName string) (string, error) {
	s.last = role + ":" + firstName
	return "token-" + role, nil
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestService_Login_Success(t *testing.T) {
	repo := new(mockUserRepo)
	tokens := &stubTokens{}
	svc := NewService(repo, tokens)

	user := &domain.User{ID: 7, FirstName: "Luis", Email: "admin@motopartes.pe", Role: domain.RoleAdmin, PasswordHash: hashed(t, "secreto123")}
	repo.On("GetByEmail", mock.Anything, "admin@motopartes.pe").Return(user, nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: " Admin@MotoPartes.pe ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "token-admin", res.AccessToken)
	assert.Equal(t, "admin:Luis", tokens.last)
	repo.AssertExpectations(t)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, &stubTokens{})

	user := &domain.User{ID: 1, Email: "a@b.pe", PasswordHash: hashed(t, "right-one")}
	repo.On("GetByEmail", mock.Anything, "a@b.pe").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@b.pe").Return(nil, errors.Wrap(repository.ErrNotFound, "get user by email"))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.pe", Password: "wrong-one"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@b.pe", Password: "x"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, &stubTokens{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ana@b.pe" && u.Role == domain.RoleCustomer && u.PasswordHash != "password123"
	})).Return(errors.Mark(errors.New("UNIQUE constraint failed: users.email"), repository.ErrDuplicate)).Once()

	_, err := svc.Register(context.Background(), RegisterRequest{FirstName: "Ana", Email: "Ana@b.pe", Password: "password123"})
	assert.True(t, errors.Is(err, ErrEmailAlreadyExists))
	repo.AssertExpectations(t)
}

func TestRedirectOptions(t *testing.T) {
	admin := RedirectOptions(domain.RoleAdmin)
	require.Len(t, admin, 2)
	assert.Equal(t, "/dashboard", admin[0].Path)
	assert.Equal(t, "/", admin[1].Path)

	customer := RedirectOptions(domain.RoleCustomer)
	require.Len(t, customer, 1)
	assert.Equal(t, "/", customer[0].Path)
}
