package render

import "errors"

var (
	ErrAlreadyPerformed = errors.New("already performed")
	ErrMissingTemplate  = errors.New("missing template")
)
