package reservation

import (
	"context"
	"time"

	"motopartes/internal/domain"
	"motopartes/internal/notification"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Service struct {
	reservas ReservaRepository
	notifier notification.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(reservas ReservaRepository, notifier notification.Notifier, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &Service{reservas: reservas, notifier: notifier, log: log, now: time.Now}
}

// ListByStatus backs the per-status dashboard pages. Every reservation
// appears in exactly one of them.
func (s *Service) ListByStatus(ctx context.Context, status domain.ReservaStatus) ([]domain.Reserva, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(domain.ErrInvalidReservaStatus, "%q", status)
	}
	return s.reservas.List(ctx, status)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Reserva, error) {
	return s.reservas.List(ctx, "")
}

func (s *Service) Counts(ctx context.Context) (map[domain.ReservaStatus]int64, error) {
	return s.reservas.CountByStatus(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reserva, error) {
	r, err := s.reservas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservaNotFound
		}
		return nil, err
	}
	return r, nil
}

// SetStatus moves a reservation along the status workflow. The write only
// succeeds if nobody else moved the reservation since it was read.
func (s *Service) SetStatus(ctx context.Context, id int64, next domain.ReservaStatus) (*domain.Reserva, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := current.Estado
	if !from.CanTransitionTo(next) {
		return nil, errors.Wrapf(ErrInvalidStatusTransition, "%s -> %s", from, next)
	}

	if err := s.reservas.CompareAndSetStatus(ctx, id, from, next); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, errors.Wrapf(ErrStatusConflict, "reserva %d", id)
		}
		return nil, err
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ev := notification.ReservaStatusChanged{
		ReservaID: id,
		UserID:    updated.UserID,
		From:      string(from),
		To:        string(next),
		ChangedAt: s.now().UTC(),
	}
	if err := s.notifier.ReservaStatusChanged(ctx, ev); err != nil {
		s.log.Warn("reserva status event not published",
			zap.Int64("reserva_id", id),
			zap.String("to", string(next)),
			zap.Error(err),
		)
	}

	s.log.Info("reserva status changed",
		zap.Int64("reserva_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
	)
	return updated, nil
}
