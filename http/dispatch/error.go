package dispatch

import "errors"

var (
	ErrUnknownAction = errors.New("unknown action")
)
