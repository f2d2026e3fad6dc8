package catalog

import "github.com/cockroachdb/errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCodeExists      = errors.New("product code already exists")
	ErrInvalidPrice    = errors.New("price must not be negative")
)
