package chart

import "errors"

// Sentinel kinds for chart rendering errors.
var (
	ErrNothingToPlot = errors.New("no samples to plot")
	ErrBadGeometry   = errors.New("invalid chart geometry")
)
