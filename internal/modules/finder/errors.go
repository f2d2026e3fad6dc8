package finder

import "github.com/cockroachdb/errors"

const (
	MsgIncompleteTitle = "Información incompleta"
	MsgIncompleteBody  = "Por favor selecciona año, marca y modelo para continuar."
)

var (
	ErrIncompleteSearch = errors.New("year, brand and model are required")
	ErrUnknownOption    = errors.New("option not in catalogue")
)
