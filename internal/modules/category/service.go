package category

import (
	"context"
	"strings"

	"motopartes/internal/domain"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrNameExists    = errors.New("category name already exists")
	ErrParentMissing = errors.New("parent category not found")
)

type Repository interface {
	CreateCategoria(ctx context.Context, c *domain.Categoria) error
	UpdateCategoria(ctx context.Context, c *domain.Categoria) error
	GetCategoria(ctx context.Context, id int64) (*domain.Categoria, error)
	ListCategorias(ctx context.Context) ([]domain.Categoria, error)
	DeleteCategoria(ctx context.Context, id int64) error
	CreateSubcategoria(ctx context.Context, s *domain.Subcategoria) error
	UpdateSubcategoria(ctx context.Context, s *domain.Subcategoria) error
	ListSubcategorias(ctx context.Context) ([]domain.Subcategoria, error)
	DeleteSubcategoria(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrNameExists
	}
	return err
}

func (s *Service) Categorias(ctx context.Context) ([]domain.Categoria, error) {
	return s.repo.ListCategorias(ctx)
}

func (s *Service) SaveCategoria(ctx context.Context, c *domain.Categoria) error {
	c.Nombre = strings.TrimSpace(c.Nombre)
	if c.ID == 0 {
		return mapErr(s.repo.CreateCategoria(ctx, c))
	}
	return mapErr(s.repo.UpdateCategoria(ctx, c))
}

func (s *Service) DeleteCategoria(ctx context.Context, id int64) error {
	return mapErr(s.repo.DeleteCategoria(ctx, id))
}

// Subcategorias returns the subcategory page props: every subcategory
// with its category joined, plus the categories for the form select.
func (s *Service) Subcategorias(ctx context.Context) ([]domain.Subcategoria, []domain.Categoria, error) {
	subs, err := s.repo.ListSubcategorias(ctx)
	if err != nil {
		return nil, nil, err
	}
	cats, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, nil, err
	}
	return subs, cats, nil
}

func (s *Service) SaveSubcategoria(ctx context.Context, sub *domain.Subcategoria) error {
	if _, err := s.repo.GetCategoria(ctx, sub.CategoriaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrParentMissing
		}
		return err
	}
	sub.Nombre = strings.TrimSpace(sub.Nombre)
	if sub.ID == 0 {
		return mapErr(s.repo.CreateSubcategoria(ctx, sub))
	}
	return mapErr(s.repo.UpdateSubcategoria(ctx, sub))
}

func (s *Service) DeleteSubcategoria(ctx context.Context, id int64) error {
	return mapErr(s.repo.DeleteSubcategoria(ctx, id))
}
