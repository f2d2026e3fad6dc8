package finder

import (
	"context"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type CatalogueRepository interface {
	ListMotoModels(ctx context.Context) ([]domain.MotoModel, error)
}

type Service struct {
	catalogue CatalogueRepository
	recent    RecentStore
	log       *zap.Logger
}

func NewService(catalogue CatalogueRepository, recent RecentStore, log *zap.Logger) *Service {
	return &Service{catalogue: catalogue, recent: recent, log: log}
}

func (s *Service) Options(ctx context.Context) (Options, error) {
	rows, err := s.catalogue.ListMotoModels(ctx)
	if err != nil {
		return Options{}, errors.Wrap(err, "load finder options")
	}
	return BuildOptions(rows), nil
}

func (s *Service) Models(ctx context.Context, brand string) ([]ModelOption, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return nil, err
	}
	return opts.ModelsFor(brand), nil
}

func (s *Service) Recent(ctx context.Context, visitor string) (RecentSearches, error) {
	return s.recent.Load(ctx, visitor)
}

// Search validates q, records it as the visitor's newest recent search and
// returns the updated list. Nothing is recorded for an incomplete or
// unknown selection.
func (s *Service) Search(ctx context.Context, visitor string, q Search) (RecentSearches, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	opts, err := s.Options(ctx)
	if err != nil {
		return nil, err
	}
	sel := NewSelection(opts)
	if err := sel.SetYear(q.Year); err != nil {
		return nil, err
	}
	if err := sel.SetBrand(q.Brand); err != nil {
		return nil, err
	}
	if err := sel.SetModel(q.Model); err != nil {
		return nil, err
	}

	prev, err := s.recent.Load(ctx, visitor)
	if err != nil {
		// a broken history must not block the search itself
		s.log.Warn("recent searches unavailable", zap.String("visitor", visitor), zap.Error(err))
		prev = nil
	}
	updated := prev.Add(sel.Search())
	if err := s.recent.Save(ctx, visitor, updated); err != nil {
		s.log.Warn("recent searches not saved", zap.String("visitor", visitor), zap.Error(err))
	}
	return updated, nil
}
