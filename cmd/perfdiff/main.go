// Command perfdiff reads performance-counter dump files and writes a
// comparison table against the first file (the baseline) to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/perfdiff/internal/config"
	"github.com/okian/perfdiff/internal/perfdump"
	"github.com/okian/perfdiff/internal/report"
	"github.com/okian/perfdiff/pkg/logger"
)

func main() {
	var (
		formatName = flag.String("format", "kv", "Input format: kv, perfstat, or prom")
		outputName = flag.String("output", "", "Table output: html or text (default from config)")
		modeName   = flag.String("mode", "percent", "Comparison mode: percent or delta")
		orderName  = flag.String("order", "auto", "Row order: sorted, input, or auto (per-format default)")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showUsage()
		return
	}
	if flag.NArg() < 1 {
		showUsage()
		os.Exit(1)
	}

	_ = logger.Init()
	log := logger.Named("perfdiff")
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

	format, err := perfdump.ParseFormat(*formatName)
	if err != nil {
		log.Error(ctx, "bad -format", logger.Error(err))
		os.Exit(1)
	}
	opts, err := buildOptions(*modeName, *orderName, format)
	if err != nil {
		log.Error(ctx, "bad flags", logger.Error(err))
		os.Exit(1)
	}
	output := *outputName
	if output == "" {
		output = cfg.TableFormat
	}

	log.Info(ctx, "comparing dumps",
		logger.String("run_id", uuid.NewString()),
		logger.Int("files", flag.NArg()),
		logger.String("format", *formatName),
		logger.String("output", output),
	)

	set, err := perfdump.ReadSet(parseSpecs(flag.Args()), format)
	if err != nil {
		log.Error(ctx, "failed to load dumps", logger.Error(err))
		os.Exit(1)
	}

	switch output {
	case "text":
		err = report.RenderText(os.Stdout, set, opts)
	case "html":
		err = report.RenderHTML(os.Stdout, set, opts)
	default:
		log.Error(ctx, "bad -output", logger.String("output", output))
		os.Exit(1)
	}
	if err != nil {
		log.Error(ctx, "failed to render table", logger.Error(err))
		os.Exit(1)
	}
}

// parseSpecs maps CLI arguments to file specs. An argument of the form
// label=path supplies an explicit column label; a bare path relies on the
// file's embedded __NAME__ key.
func parseSpecs(args []string) []perfdump.FileSpec {
	specs := make([]perfdump.FileSpec, len(args))
	for i, arg := range args {
		if label, path, ok := strings.Cut(arg, "="); ok && label != "" {
			specs[i] = perfdump.FileSpec{Label: label, Path: path}
			continue
		}
		specs[i] = perfdump.FileSpec{Path: arg}
	}
	return specs
}

// buildOptions resolves mode and order flags. Order "auto" sorts rows for
// the kv format and keeps first-seen order for perfstat and prom dumps.
func buildOptions(mode, order string, format perfdump.Format) (report.Options, error) {
	var opts report.Options
	switch mode {
	case "percent":
		opts.Mode = report.ModePercent
	case "delta":
		opts.Mode = report.ModeDelta
	default:
		return opts, fmt.Errorf("unknown mode %q", mode)
	}
	switch order {
	case "sorted":
		opts.Order = report.OrderSorted
	case "input":
		opts.Order = report.OrderFirstSeen
	case "auto":
		if format == perfdump.FormatKV {
			opts.Order = report.OrderSorted
		} else {
			opts.Order = report.OrderFirstSeen
		}
	default:
		return opts, fmt.Errorf("unknown order %q", order)
	}
	return opts, nil
}

func showUsage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stdout, `Usage: %s [flags] [label=]file [[label=]file ...]

Compares performance-counter dumps against the first file (the baseline)
and writes an HTML table fragment (or a plain-text table) to stdout.

Input files are UTF-8 text; blank lines and lines starting with '#' are
ignored. The reserved keys __NAME__ and __PATCH__ set a column's display
label and an optional patch hyperlink.

Flags:
  -format string   Input format: kv, perfstat, or prom (default "kv")
  -output string   Table output: html or text (default from config)
  -mode string     Comparison mode: percent or delta (default "percent")
  -order string    Row order: sorted, input, or auto (default "auto")
  -help            Show this help message

Examples:
  %s baseline.txt patched.txt
  %s -format perfstat -mode delta before=a.csv after=b.csv
`, prog, prog, prog)
}
