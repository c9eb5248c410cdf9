package template

import "errors"

var (
	ErrNoTemplate  = errors.New("no such template")
	ErrUnknownKind = errors.New("unknown inline kind")
)
