package invoice

import (
	"context"
	"time"

	"motopartes/internal/domain"
	"motopartes/internal/notification"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var (
	ErrFacturaNotFound = errors.New("factura not found")
	ErrNotAnnullable   = errors.New("factura cannot be annulled")
	ErrInvalidStatus   = errors.New("invalid factura status")
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Factura, error)
	List(ctx context.Context, status domain.FacturaStatus) ([]domain.Factura, error)
	CompareAndSetStatus(ctx context.Context, id int64, from, to domain.FacturaStatus) error
}

type Service struct {
	facturas Repository
	notifier notification.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(facturas Repository, notifier notification.Notifier, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &Service{facturas: facturas, notifier: notifier, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context, status domain.FacturaStatus) ([]domain.Factura, error) {
	if status != "" && !status.Valid() {
		return nil, errors.Wrapf(ErrInvalidStatus, "%q", status)
	}
	return s.facturas.List(ctx, status)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Factura, error) {
	f, err := s.facturas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFacturaNotFound
		}
		return nil, err
	}
	return f, nil
}

// Annul marks a pending invoice as anulada. A concurrent payment or
// annulment between the read and the write is reported as ErrNotAnnullable.
func (s *Service) Annul(ctx context.Context, id int64) (*domain.Factura, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.Estado.CanAnnul() {
		return nil, errors.Wrapf(ErrNotAnnullable, "factura %s is %s", f.Numero, f.Estado)
	}

	err = s.facturas.CompareAndSetStatus(ctx, id, f.Estado, domain.FacturaCancelled)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, errors.Wrapf(ErrNotAnnullable, "factura %s changed concurrently", f.Numero)
		}
		return nil, err
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ev := notification.FacturaAnnulled{FacturaID: id, Numero: updated.Numero, ChangedAt: s.now().UTC()}
	if err := s.notifier.FacturaAnnulled(ctx, ev); err != nil {
		s.log.Warn("factura event not published", zap.Int64("factura_id", id), zap.Error(err))
	}
	s.log.Info("factura annulled", zap.Int64("factura_id", id), zap.String("numero", updated.Numero))
	return updated, nil
}
