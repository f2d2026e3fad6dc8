package reservation

import (
	"context"
	"testing"
	"time"

	"motopartes/internal/domain"
	"motopartes/internal/notification"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockReservaRepo struct {
	mock.Mock
}

func (m *mockReservaRepo) GetByID(ctx context.Context, id int64) (*domain.Reserva, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reserva), args.Error(1)
}

func (m *mockReservaRepo) List(ctx context.Context, status domain.ReservaStatus) ([]domain.Reserva, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reserva), args.Error(1)
}

func (m *mockReservaRepo) CompareAndSetStatus(ctx context.Context, id int64, from, to domain.ReservaStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockReservaRepo) CountByStatus(ctx context.Context) (map[domain.ReservaStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ReservaStatus]int64), args.Error(1)
}

type recordingNotifier struct {
	notification.NopNotifier
	events []notification.ReservaStatusChanged
	err    error
}

func (n *recordingNotifier) ReservaStatusChanged(_ context.Context, ev notification.ReservaStatusChanged) error {
	n.events = append(n.events, ev)
	return n.err
}

func newTestService(repo ReservaRepository, n notification.Notifier) *Service {
	svc := NewService(repo, n, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestSetStatus_PendingToConfirmed(t *testing.T) {
	repo := new(mockReservaRepo)
	n := &recordingNotifier{}
	svc := newTestService(repo, n)

	before := &domain.Reserva{ID: 5, UserID: 9, Estado: domain.ReservaPending}
	after := &domain.Reserva{ID: 5, UserID: 9, Estado: domain.ReservaConfirmed}
	repo.On("GetByID", mock.Anything, int64(5)).Return(before, nil).Once()
	repo.On("CompareAndSetStatus", mock.Anything, int64(5), domain.ReservaPending, domain.ReservaConfirmed).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(5)).Return(after, nil).Once()

	got, err := svc.SetStatus(context.Background(), 5, domain.ReservaConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaConfirmed, got.Estado)

	require.Len(t, n.events, 1)
	assert.Equal(t, notification.ReservaStatusChanged{
		ReservaID: 5, UserID: 9, From: "pendiente", To: "confirmada",
		ChangedAt: time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC),
	}, n.events[0])
	repo.AssertExpectations(t)
}

func TestSetStatus_RejectsTransitionsOutsideWorkflow(t *testing.T) {
	cases := []struct {
		from, to domain.ReservaStatus
	}{
		{domain.ReservaPending, domain.ReservaCompleted},
		{domain.ReservaCompleted, domain.ReservaCancelled},
		{domain.ReservaCancelled, domain.ReservaConfirmed},
		{domain.ReservaConfirmed, domain.ReservaPending},
	}
	for _, tc := range cases {
		repo := new(mockReservaRepo)
		n := &recordingNotifier{}
		svc := newTestService(repo, n)
		repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reserva{ID: 1, Estado: tc.from}, nil)

		_, err := svc.SetStatus(context.Background(), 1, tc.to)
		assert.True(t, errors.Is(err, ErrInvalidStatusTransition), "%s -> %s: %v", tc.from, tc.to, err)
		repo.AssertNotCalled(t, "CompareAndSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, n.events)
	}
}

func TestSetStatus_ConcurrentChangeIsConflict(t *testing.T) {
	repo := new(mockReservaRepo)
	n := &recordingNotifier{}
	svc := newTestService(repo, n)

	repo.On("GetByID", mock.Anything, int64(2)).Return(&domain.Reserva{ID: 2, Estado: domain.ReservaPending}, nil)
	repo.On("CompareAndSetStatus", mock.Anything, int64(2), domain.ReservaPending, domain.ReservaCancelled).
		Return(errors.Wrap(repository.ErrConflict, "reserva 2"))

	_, err := svc.SetStatus(context.Background(), 2, domain.ReservaCancelled)
	assert.True(t, errors.Is(err, ErrStatusConflict))
	assert.Empty(t, n.events)
}

func TestSetStatus_NotFound(t *testing.T) {
	repo := new(mockReservaRepo)
	svc := newTestService(repo, nil)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, errors.Wrap(repository.ErrNotFound, "get reserva"))

	_, err := svc.SetStatus(context.Background(), 404, domain.ReservaConfirmed)
	assert.True(t, errors.Is(err, ErrReservaNotFound))
}

func TestSetStatus_PublishFailureDoesNotFailTransition(t *testing.T) {
	repo := new(mockReservaRepo)
	n := &recordingNotifier{err: errors.New("broker down")}
	svc := newTestService(repo, n)

	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Reserva{ID: 3, Estado: domain.ReservaConfirmed}, nil).Once()
	repo.On("CompareAndSetStatus", mock.Anything, int64(3), domain.ReservaConfirmed, domain.ReservaCompleted).Return(nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Reserva{ID: 3, Estado: domain.ReservaCompleted}, nil).Once()

	got, err := svc.SetStatus(context.Background(), 3, domain.ReservaCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCompleted, got.Estado)
	assert.Len(t, n.events, 1)
}

func TestListByStatus_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(new(mockReservaRepo), nil)
	_, err := svc.ListByStatus(context.Background(), "archivada")
	assert.True(t, errors.Is(err, domain.ErrInvalidReservaStatus))
}

func TestToView(t *testing.T) {
	horarioID := int64(4)
	r := &domain.Reserva{
		ID:        1,
		Placa:     "ABC-123",
		Fecha:     "2025-03-05",
		Hora:      "09:30",
		Estado:    domain.ReservaPending,
		HorarioID: &horarioID,
		User:      &domain.User{FirstName: "Ana", LastName: "Quispe"},
		Moto:      &domain.Moto{Anio: 2022, Marca: "Honda", Modelo: "CB190R"},
		Servicio:  &domain.Servicio{Nombre: "Cambio de aceite"},
		Horario:   &domain.Horario{ID: 4, Tipo: "Mañana", HoraInicio: "08:00", HoraFin: "12:00"},
		CreatedAt: time.Date(2025, 3, 5, 2, 30, 0, 0, time.UTC),
	}

	v := ToView(r)
	assert.Equal(t, "Ana Quispe", v.Usuario)
	assert.Equal(t, "Honda CB190R 2022", v.Vehiculo)
	assert.Equal(t, "05/03/2025", v.FechaFormateada)
	assert.Equal(t, "2025-03-04 21:30", v.CreatedAt)
	assert.Equal(t, "Mañana (08:00 - 12:00)", v.HorarioLabel)
	assert.Equal(t, []ActionView{
		{Estado: domain.ReservaConfirmed, Label: "Confirmar"},
		{Estado: domain.ReservaCancelled, Label: "Cancelar"},
	}, v.Acciones)

	r.Horario, r.HorarioID, r.Estado = nil, nil, domain.ReservaCompleted
	v = ToView(r)
	assert.Nil(t, v.Horario)
	assert.Equal(t, "Sin horario", v.HorarioLabel)
	assert.Empty(t, v.Acciones)
	assert.NotNil(t, v.Acciones)
}
