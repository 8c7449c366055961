package histogram

import "errors"

// Sentinel kinds for measurement parsing errors.
var (
	ErrBadRecord = errors.New("malformed HIST record")
	ErrNoSamples = errors.New("no HIST samples found")
)
