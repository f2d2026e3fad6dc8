package catalog

import (
	"context"
	"time"

	"motopartes/internal/cache"
	"motopartes/internal/domain"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const productListKey = "productos:all"

type Service struct {
	products ProductRepository
	cache    cache.Store
	ttl      time.Duration
	log      *zap.Logger
	sf       singleflight.Group
}

// NewService wires the product service. A nil store disables caching.
func NewService(products ProductRepository, store cache.Store, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{products: products, cache: store, ttl: ttl, log: log}
}

// All returns every product. The list is read through the cache and
// concurrent misses share a single database load.
func (s *Service) All(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		var cached []domain.Product
		ok, err := s.cache.Get(ctx, productListKey, &cached)
		if err != nil {
			s.log.Warn("product cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(productListKey, func() (any, error) {
		list, err := s.products.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, productListKey, list, s.ttl); err != nil {
				s.log.Warn("product cache write failed", zap.Error(err))
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	// callers may filter in place; hand each its own slice
	shared := v.([]domain.Product)
	out := make([]domain.Product, len(shared))
	copy(out, shared)
	return out, nil
}

func (s *Service) Search(ctx context.Context, term string) (all, filtered []domain.Product, err error) {
	all, err = s.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	return all, Filter(all, term), nil
}

func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.where(ctx, func(p *domain.Product) bool { return p.Destacado })
}

func (s *Service) BestSelling(ctx context.Context) ([]domain.Product, error) {
	return s.where(ctx, func(p *domain.Product) bool { return p.MasVendido })
}

func (s *Service) where(ctx context.Context, keep func(*domain.Product) bool) ([]domain.Product, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Image resolves the gallery position to show. With a direction the index
// is first moved one step, wrapping around.
func (s *Service) Image(ctx context.Context, id int64, index int, dir *Direction) (*ImageResult, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if dir != nil {
		index = CycleImage(p, index, *dir)
	} else if index < 0 || index >= p.ImageCount() {
		index = 0
	}
	return &ImageResult{
		Index: index,
		URL:   ResolveImage(p, index),
		Label: ImageLabel(p, index),
		Total: p.ImageCount(),
	}, nil
}

func (s *Service) Create(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if req.Precio.IsNegative() {
		return nil, ErrInvalidPrice
	}
	p := req.toDomain()
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req ProductRequest) (*domain.Product, error) {
	if req.Precio.IsNegative() {
		return nil, ErrInvalidPrice
	}
	p := req.toDomain()
	p.ID = id
	if err := s.products.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrCodeExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productListKey); err != nil {
		s.log.Warn("product cache invalidation failed", zap.Error(err))
	}
}
