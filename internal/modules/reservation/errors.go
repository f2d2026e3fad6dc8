package reservation

import "github.com/cockroachdb/errors"

var (
	ErrReservaNotFound         = errors.New("reservation not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrStatusConflict          = errors.New("reservation status changed concurrently")
)
