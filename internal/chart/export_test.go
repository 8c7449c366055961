package chart

// Hooks for tests.
var (
	LogEdges   = logEdges
	BinCounts  = binCounts
	Percentile = percentile
)
