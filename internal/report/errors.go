package report

import "errors"

// Sentinel kinds for renderer errors.
var (
	ErrEmptySet = errors.New("no columns to render")
	ErrBadValue = errors.New("non-numeric event value")
)
