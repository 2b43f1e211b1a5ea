package binfile

import "errors"

var (
	ErrUnavailable    = errors.New("resource unavailable")
	ErrClosed         = errors.New("closed")
	ErrOutOfRange     = errors.New("out of range")
	ErrUnbound        = errors.New("unbound")
	ErrInvalidCompare = errors.New("invalid comparison")
)
