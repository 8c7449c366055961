package perfdump

import "errors"

// Sentinel kinds for loader errors.
var (
	ErrBadFormat    = errors.New("unknown dump format")
	ErrMissingLabel = errors.New("column has no label")
	ErrNoColumns    = errors.New("no input files given")
)
