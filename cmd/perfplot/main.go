// Command perfplot reads HIST-formatted measurement lines and renders
// per-operation histogram and box-plot panels to PNG and SVG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/okian/perfdiff/internal/chart"
	"github.com/okian/perfdiff/internal/config"
	"github.com/okian/perfdiff/internal/histogram"
	"github.com/okian/perfdiff/pkg/logger"
)

func main() {
	var (
		out     = flag.String("out", "", "Output basename (default from config)")
		bins    = flag.Int("bins", 0, "Number of log-spaced bin edges (default from config)")
		width   = flag.Float64("width", 0, "Figure width in inches (default from config)")
		height  = flag.Float64("height", 0, "Panel height in inches (default from config)")
		whisker = flag.Float64("whisker", 0, "Upper box-plot whisker percentile (default from config)")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showUsage()
		return
	}
	if flag.NArg() != 1 {
		showUsage()
		os.Exit(1)
	}

	_ = logger.Init()
	log := logger.Named("perfplot")
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := chart.Options{
		WidthIn:       cfg.ChartWidthIn,
		PanelHeightIn: cfg.PanelHeightIn,
		Bins:          cfg.ChartBins,
		WhiskerPctile: cfg.WhiskerPctile,
		Basename:      cfg.FigureBasename,
	}
	if *out != "" {
		opts.Basename = *out
	}
	if *bins > 0 {
		opts.Bins = *bins
	}
	if *width > 0 {
		opts.WidthIn = *width
	}
	if *height > 0 {
		opts.PanelHeightIn = *height
	}
	if *whisker > 0 {
		opts.WhiskerPctile = *whisker
	}

	path := flag.Arg(0)
	log.Info(ctx, "plotting measurements",
		logger.String("run_id", uuid.NewString()),
		logger.String("input", path),
		logger.String("basename", opts.Basename),
	)

	f, err := os.Open(path)
	if err != nil {
		log.Error(ctx, "failed to open measurements", logger.Error(err))
		os.Exit(1)
	}
	defer f.Close()

	c, err := histogram.Parse(f)
	if err != nil {
		log.Error(ctx, "failed to parse measurements", logger.Error(err))
		os.Exit(1)
	}

	if err := chart.Render(c, opts); err != nil {
		log.Error(ctx, "failed to render charts", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "charts written",
		logger.String("png", opts.Basename+".png"),
		logger.String("svg", opts.Basename+".svg"),
		logger.Int("operations", len(c.Ops())),
		logger.Int("implementations", len(c.Impls())),
	)
}

func showUsage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stdout, `Usage: %s [flags] <measurements-file>

Reads lines of the form

  HIST <impl> <op> <bucket> <count>

and renders one histogram + box-plot panel row per operation, written as
<basename>.png and <basename>.svg. Lines not starting with HIST are
skipped, so raw benchmark output can be fed in directly.

Flags:
  -out string      Output basename (default from config)
  -bins int        Number of log-spaced bin edges (default from config)
  -width float     Figure width in inches (default from config)
  -height float    Panel height in inches (default from config)
  -whisker float   Upper box-plot whisker percentile (default from config)
  -help            Show this help message

Example:
  %s -out latency bench_output.txt
`, prog, prog)
}
