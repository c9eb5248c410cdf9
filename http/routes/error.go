package routes

import "errors"

var (
	ErrBadPattern      = errors.New("bad route pattern")
	ErrNoMatchingRoute = errors.New("no route matches")
)
