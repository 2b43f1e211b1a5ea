package bin

import "github.com/dacapoday/binfile"

var (
	ErrUnavailable    = binfile.ErrUnavailable
	ErrClosed         = binfile.ErrClosed
	ErrOutOfRange     = binfile.ErrOutOfRange
	ErrUnbound        = binfile.ErrUnbound
	ErrInvalidCompare = binfile.ErrInvalidCompare
)
