package dispatch

import "errors"

// Error values returned by Call.
var (
	ErrInvalidParams    = errors.New("dispatch: invalid params")
	ErrUnknownOperation = errors.New("dispatch: unknown operation")
)
