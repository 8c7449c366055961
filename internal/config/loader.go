package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PERFDIFF_CONFIG is set
//  3. env (prefix PERFDIFF_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PERFDIFF_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PERFDIFF_TABLE_FORMAT, PERFDIFF_CHART_BINS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PERFDIFF_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "perfdiff_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch cfg.TableFormat {
	case "html", "text":
	default:
		return nil, fmt.Errorf("%w: table_format must be html or text, got %q", ErrInvalidConfig, cfg.TableFormat)
	}
	if cfg.ChartBins < 2 {
		return nil, fmt.Errorf("%w: chart_bins must be at least 2, got %d", ErrInvalidConfig, cfg.ChartBins)
	}
	if cfg.ChartWidthIn <= 0 || cfg.PanelHeightIn <= 0 {
		return nil, fmt.Errorf("%w: chart dimensions must be positive", ErrInvalidConfig)
	}
	if cfg.WhiskerPctile <= 0 || cfg.WhiskerPctile > 100 {
		return nil, fmt.Errorf("%w: whisker_percentile must be in (0, 100], got %g", ErrInvalidConfig, cfg.WhiskerPctile)
	}
	if cfg.FigureBasename == "" {
		return nil, fmt.Errorf("%w: figure_basename must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
