// Package chart renders histogram collections as per-operation panels:
// a step histogram on a log-scaled X axis next to horizontal box plots,
// one panel row per operation, written as PNG and SVG.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/okian/perfdiff/internal/histogram"
)

// Layout constants.
const (
	panelCols     = 2 // histogram panel + box-plot panel per operation
	tilePad       = 2 * vg.Millimeter
	boxWidth      = 12.0 // box-plot glyph width in points
	startExponent = 0.1  // first bin edge at 10^0.1, below any whole-unit bucket

	defaultWhiskerPctile = 99.0
	fullRange            = 100.0
)

// A small qualitative palette; series cycle through it.
var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// Options configure figure geometry and output naming.
type Options struct {
	// WidthIn is the total figure width in inches.
	WidthIn float64
	// PanelHeightIn is the height of each operation's panel row in inches.
	PanelHeightIn float64
	// Bins is the number of log-spaced bin edges.
	Bins int
	// WhiskerPctile is the upper whisker percentile for the box plots;
	// the lower whisker sits at the minimum and outliers are hidden.
	// Zero means the default (99).
	WhiskerPctile float64
	// Basename names the outputs: Basename.png and Basename.svg.
	Basename string
}

// Render draws one panel row per operation and writes Basename.png and
// Basename.svg.
func Render(c *histogram.Collection, opts Options) error {
	if c == nil || c.Empty() {
		return ErrNothingToPlot
	}
	if opts.Bins < 2 {
		return fmt.Errorf("%w: need at least 2 bin edges, got %d", ErrBadGeometry, opts.Bins)
	}
	if opts.WidthIn <= 0 || opts.PanelHeightIn <= 0 {
		return fmt.Errorf("%w: non-positive figure dimensions", ErrBadGeometry)
	}
	if opts.WhiskerPctile > fullRange {
		return fmt.Errorf("%w: whisker percentile %g above 100", ErrBadGeometry, opts.WhiskerPctile)
	}
	if opts.WhiskerPctile <= 0 {
		opts.WhiskerPctile = defaultWhiskerPctile
	}

	_, max, err := c.MinMax()
	if err != nil {
		return err
	}
	edges := logEdges(max, opts.Bins)

	ops := c.SortedOps()
	impls := c.Impls()

	plots := make([][]*plot.Plot, len(ops))
	for i, op := range ops {
		hp, err := histPanel(c, op, impls, edges, i == 0)
		if err != nil {
			return err
		}
		bp, err := boxPanel(c, op, impls, opts.WhiskerPctile)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{hp, bp}
	}

	w := vg.Length(opts.WidthIn) * vg.Inch
	h := vg.Length(opts.PanelHeightIn*float64(len(ops))) * vg.Inch

	if err := writePNG(opts.Basename+".png", plots, w, h); err != nil {
		return err
	}
	return writeSVG(opts.Basename+".svg", plots, w, h)
}

// histPanel draws each implementation's binned counts as a step line.
func histPanel(c *histogram.Collection, op string, impls []string, edges []float64, legend bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = op
	p.X.Label.Text = "measurement"
	p.Y.Label.Text = "count"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	for i, impl := range impls {
		samples := c.Samples(impl, op)
		if len(samples) == 0 {
			continue
		}
		line, err := plotter.NewLine(binCounts(samples, edges))
		if err != nil {
			return nil, fmt.Errorf("histogram line for %s/%s: %w", impl, op, err)
		}
		line.StepStyle = plotter.PostStep
		line.Color = palette[i%len(palette)]
		p.Add(line)
		if legend {
			p.Legend.Add(impl, line)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// boxPanel draws one horizontal box plot per implementation, sharing the
// histogram panel's log X axis. Whiskers span the minimum up to the
// configured percentile, with outliers hidden.
func boxPanel(c *histogram.Collection, op string, impls []string, whiskerPctile float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = op + " spread"
	p.X.Label.Text = "measurement"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Min = 1

	labels := make([]string, 0, len(impls))
	loc := 0.0
	for _, impl := range impls {
		samples := c.Samples(impl, op)
		if len(samples) == 0 {
			continue
		}
		vals := clampPositive(samples)
		b, err := plotter.NewBoxPlot(vg.Points(boxWidth), loc, plotter.Values(vals))
		if err != nil {
			return nil, fmt.Errorf("box plot for %s/%s: %w", impl, op, err)
		}
		b.Horizontal = true
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		b.AdjLow = sorted[0]
		b.AdjHigh = percentile(sorted, whiskerPctile)
		b.Outside = nil
		p.Add(b)
		labels = append(labels, impl)
		loc++
	}
	p.NominalY(labels...)
	return p, nil
}

// binCounts buckets samples into the half-open ranges [edge_i, edge_i+1)
// between consecutive edges and returns step-line points, one per edge.
// A sample on an interior edge belongs to the upper bin; the maximum
// lands in the last bin. The last edge closes the step at zero.
func binCounts(samples, edges []float64) plotter.XYs {
	counts := make([]float64, len(edges)-1)
	for _, v := range samples {
		idx := sort.SearchFloat64s(edges, v)
		if idx == len(edges) || edges[idx] != v {
			idx--
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(counts) {
			idx = len(counts) - 1
		}
		counts[idx]++
	}

	pts := make(plotter.XYs, len(edges))
	for i := range edges {
		pts[i].X = edges[i]
		if i < len(counts) {
			pts[i].Y = counts[i]
		}
	}
	return pts
}

// logEdges computes n log-spaced bin edges from 10^startExponent up to the
// collection maximum.
func logEdges(max float64, n int) []float64 {
	endExp := math.Log10(max)
	if endExp <= startExponent {
		endExp = startExponent + 1
	}
	edges := make([]float64, n)
	for i := range edges {
		exp := startExponent + (endExp-startExponent)*float64(i)/float64(n-1)
		edges[i] = math.Pow(10, exp)
	}
	return edges
}

// percentile returns the pct-th percentile of sorted samples, linearly
// interpolated between neighbors.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := pct / fullRange * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// clampPositive lifts non-positive samples to 1: a log scale cannot
// represent them, and bucket values below one unit carry no information
// at this resolution.
func clampPositive(samples []float64) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		if v < 1 {
			v = 1
		}
		out[i] = v
	}
	return out
}

func writePNG(path string, plots [][]*plot.Plot, w, h vg.Length) error {
	img := vgimg.New(w, h)
	drawTiled(plots, draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeSVG(path string, plots [][]*plot.Plot, w, h vg.Length) error {
	svg := vgsvg.New(w, h)
	drawTiled(plots, draw.New(svg))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := svg.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func drawTiled(plots [][]*plot.Plot, dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: panelCols,
		PadX: tilePad,
		PadY: tilePad,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
}
