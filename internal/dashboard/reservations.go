package dashboard

import (
	"context"
	"sync"

	"motopartes/internal/domain"
	"motopartes/internal/modules/reservation"

	"github.com/cockroachdb/errors"
)

var (
	ErrActionNotOffered = errors.New("action not offered for this reservation")
	ErrNotLoaded        = errors.New("reservation not in view")
	// ErrStale accompanies a conflict whose reload failed; the rows shown
	// are the ones from before the conflict.
	ErrStale = errors.New("reservation view not refreshed")
)

const (
	titleUpdated = "Estado actualizado"
	titleFailed  = "Error"
)

// ReservationView is the state behind one reservation status page: the
// rows, which of them are expanded and which one is open in the detail
// modal. It is safe for concurrent use.
type ReservationView struct {
	client *Client
	status domain.ReservaStatus

	mu       sync.Mutex
	rows     []reservation.ReservaView
	loaded   bool
	expanded map[int64]bool
	detail   int64
}

// NewReservationView binds a view to status. An empty status is the
// "all reservations" page.
func NewReservationView(client *Client, status domain.ReservaStatus) *ReservationView {
	return &ReservationView{client: client, status: status, expanded: make(map[int64]bool)}
}

func (v *ReservationView) Status() domain.ReservaStatus { return v.status }

// Load replaces the rows with the server's list. On error the previous
// rows stay.
func (v *ReservationView) Load(ctx context.Context) error {
	rows, err := v.client.Reservations(ctx, v.status)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.replace(rows)
	v.mu.Unlock()
	return nil
}

func (v *ReservationView) replace(rows []reservation.ReservaView) {
	v.rows = rows
	v.loaded = true
	keep := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if v.expanded[r.ID] {
			keep[r.ID] = true
		}
	}
	v.expanded = keep
	if v.detail != 0 && v.indexOf(v.detail) < 0 {
		v.detail = 0
	}
}

func (v *ReservationView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func (v *ReservationView) Rows() []reservation.ReservaView {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]reservation.ReservaView, len(v.rows))
	copy(out, v.rows)
	return out
}

func (v *ReservationView) indexOf(id int64) int {
	for i := range v.rows {
		if v.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func offers(row reservation.ReservaView, next domain.ReservaStatus) bool {
	for _, a := range row.Acciones {
		if a.Estado == next {
			return true
		}
	}
	return false
}

// SetStatus asks the server to move reservation id to next. Actions the
// row does not offer are rejected without a request. On success the row
// leaves this view; the all-reservations view updates it in place. A 409
// reloads the view, and if that reload fails too the error is marked
// ErrStale. The returned row is the server's updated reservation, nil on
// failure.
func (v *ReservationView) SetStatus(ctx context.Context, id int64, next domain.ReservaStatus) (*reservation.ReservaView, Notice, error) {
	v.mu.Lock()
	i := v.indexOf(id)
	if i < 0 {
		v.mu.Unlock()
		return nil, failure(titleFailed, reservation.MsgStatusFailed), errors.Wrapf(ErrNotLoaded, "reserva %d", id)
	}
	if !offers(v.rows[i], next) {
		v.mu.Unlock()
		return nil, failure(titleFailed, reservation.MsgStatusFailed),
			errors.Wrapf(ErrActionNotOffered, "reserva %d: %s", id, next)
	}
	v.mu.Unlock()

	updated, msg, err := v.client.UpdateReservaStatus(ctx, id, next)
	if err != nil {
		if IsConflict(err) {
			if lerr := v.Load(ctx); lerr != nil {
				err = errors.Mark(errors.CombineErrors(err, lerr), ErrStale)
			}
		}
		return nil, failure(titleFailed, reservation.MsgStatusFailed), err
	}

	v.mu.Lock()
	if j := v.indexOf(id); j >= 0 && v.status != "" && updated.Estado != v.status {
		v.rows = append(v.rows[:j:j], v.rows[j+1:]...)
		delete(v.expanded, id)
		if v.detail == id {
			v.detail = 0
		}
	} else if j >= 0 {
		v.rows[j] = *updated
	}
	v.mu.Unlock()

	if msg == "" {
		msg = reservation.MsgStatusUpdated
	}
	return updated, success(titleUpdated, msg), nil
}

// insert puts row at the top of the view unless it is already there.
func (v *ReservationView) insert(row reservation.ReservaView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loaded {
		return
	}
	if i := v.indexOf(row.ID); i >= 0 {
		v.rows[i] = row
		return
	}
	v.rows = append([]reservation.ReservaView{row}, v.rows...)
}

// ToggleRow flips the expanded state of a row and returns the new state.
func (v *ReservationView) ToggleRow(id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.indexOf(id) < 0 {
		return false
	}
	if v.expanded[id] {
		delete(v.expanded, id)
		return false
	}
	v.expanded[id] = true
	return true
}

func (v *ReservationView) Expanded(id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded[id]
}

// OpenDetail selects the row shown in the detail modal.
func (v *ReservationView) OpenDetail(id int64) (reservation.ReservaView, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(id)
	if i < 0 {
		return reservation.ReservaView{}, false
	}
	v.detail = id
	return v.rows[i], true
}

func (v *ReservationView) CloseDetail() {
	v.mu.Lock()
	v.detail = 0
	v.mu.Unlock()
}

// Detail returns the row open in the modal, if any.
func (v *ReservationView) Detail() (reservation.ReservaView, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.detail == 0 {
		return reservation.ReservaView{}, false
	}
	i := v.indexOf(v.detail)
	if i < 0 {
		return reservation.ReservaView{}, false
	}
	return v.rows[i], true
}

// Board is the set of per-status reservation pages sharing one client.
type Board struct {
	views map[domain.ReservaStatus]*ReservationView
}

func NewBoard(client *Client) *Board {
	b := &Board{views: make(map[domain.ReservaStatus]*ReservationView, len(domain.ReservaStatuses))}
	for _, s := range domain.ReservaStatuses {
		b.views[s] = NewReservationView(client, s)
	}
	return b
}

func (b *Board) View(status domain.ReservaStatus) *ReservationView {
	return b.views[status]
}

// SetStatus moves a row out of the from view. When the target view has
// been loaded the updated row shows up there without a refetch.
func (b *Board) SetStatus(ctx context.Context, from domain.ReservaStatus, id int64, next domain.ReservaStatus) (Notice, error) {
	src, ok := b.views[from]
	if !ok {
		return failure(titleFailed, reservation.MsgStatusFailed), errors.Wrapf(domain.ErrInvalidReservaStatus, "%q", from)
	}
	updated, notice, err := src.SetStatus(ctx, id, next)
	if err != nil {
		return notice, err
	}
	if dst, ok := b.views[updated.Estado]; ok && dst != src {
		dst.insert(*updated)
	}
	return notice, nil
}
