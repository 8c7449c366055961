// Package config defines tool configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration values.
const (
	defaultTableFormat    = "html"
	defaultChartWidthIn   = 10.0
	defaultPanelHeightIn  = 2.5
	defaultChartBins      = 500
	defaultWhiskerPctile  = 99.0
	defaultFigureBasename = "figure"
)

// Config contains process configuration for both CLIs. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TableFormat selects the comparison table output: html or text.
	TableFormat string `koanf:"table_format"`

	// ChartWidthIn is the rendered figure width in inches.
	ChartWidthIn float64 `koanf:"chart_width_in"`

	// PanelHeightIn is the height of each per-operation panel in inches.
	PanelHeightIn float64 `koanf:"panel_height_in"`

	// ChartBins is the number of log-spaced histogram bin edges.
	ChartBins int `koanf:"chart_bins"`

	// WhiskerPctile is the upper box-plot whisker percentile; the lower
	// whisker sits at the minimum.
	WhiskerPctile float64 `koanf:"whisker_percentile"`

	// FigureBasename names the chart output files (basename.png, basename.svg).
	FigureBasename string `koanf:"figure_basename"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		TableFormat:    defaultTableFormat,
		ChartWidthIn:   defaultChartWidthIn,
		PanelHeightIn:  defaultPanelHeightIn,
		ChartBins:      defaultChartBins,
		WhiskerPctile:  defaultWhiskerPctile,
		FigureBasename: defaultFigureBasename,
	}
}
