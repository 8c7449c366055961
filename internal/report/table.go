// Package report renders loaded counter columns as comparison tables.
//
// The first column is the baseline; every later column is reported next to
// its percentage of (or delta against) the baseline value. Cells are
// classified perfstatincr/perfstatdecr for CSS styling; the baseline cell
// is never classified.
package report

import (
	"fmt"
	"strconv"

	"github.com/okian/perfdiff/internal/perfdump"
)

// CSS class contract names external stylesheets target.
const (
	ClassIncrease = "perfstatincr"
	ClassDecrease = "perfstatdecr"
)

// Placeholder rendered when a column lacks a value for an event.
const naCell = "n/a"

const percentFactor = 100.0

// Mode selects how comparison columns relate to the baseline.
type Mode int

const (
	// ModePercent shows each value and 100*value/baseline.
	ModePercent Mode = iota
	// ModeDelta shows each value, the absolute delta, and the delta
	// percentage 100*(value-baseline)/baseline.
	ModeDelta
)

// Order selects the event row ordering.
type Order int

const (
	// OrderSorted emits rows in lexicographic event-name order.
	OrderSorted Order = iota
	// OrderFirstSeen keeps the order events were first encountered in.
	OrderFirstSeen
)

// Options configure table rendering.
type Options struct {
	Mode  Mode
	Order Order
}

// HeaderCell is one header-row entry.
type HeaderCell struct {
	Label string
	// PatchRef, when set, adds a "patch" hyperlink under the label.
	PatchRef string
}

// Cell is one body cell: text plus an optional CSS class.
type Cell struct {
	Text  string
	Class string
}

// Row is one event's worth of cells: baseline first, then the comparison
// columns' cells in column order.
type Row struct {
	Event string
	Cells []Cell
}

// Table is the fully formatted comparison table, shared by the HTML and
// text renderers.
type Table struct {
	Headers []HeaderCell
	Rows    []Row
}

// valueFormatter renders a parsed numeric value for a given mode.
type valueFormatter func(v float64, mode Mode) string

// buildTable formats the set into renderer-agnostic cells.
func buildTable(set *perfdump.Set, opts Options, value valueFormatter) (*Table, error) {
	if set == nil || len(set.Columns) == 0 {
		return nil, ErrEmptySet
	}

	baseline := set.Baseline()
	comps := set.Columns[1:]

	t := &Table{}
	t.Headers = append(t.Headers, HeaderCell{}) // corner cell
	t.Headers = append(t.Headers, HeaderCell{Label: baseline.Label})
	for _, c := range comps {
		t.Headers = append(t.Headers, HeaderCell{Label: c.Label, PatchRef: c.PatchRef})
		if opts.Mode == ModeDelta {
			t.Headers = append(t.Headers, HeaderCell{Label: "Δ"}, HeaderCell{Label: "Δ%"})
		} else {
			t.Headers = append(t.Headers, HeaderCell{Label: "%"})
		}
	}

	events := set.Universe.Sorted()
	if opts.Order == OrderFirstSeen {
		events = set.Universe.Names()
	}

	for _, event := range events {
		row := Row{Event: event}

		bVal, bOK, err := numericValue(baseline, event)
		if err != nil {
			return nil, err
		}
		if bOK {
			row.Cells = append(row.Cells, Cell{Text: value(bVal, opts.Mode)})
		} else {
			row.Cells = append(row.Cells, Cell{Text: naCell})
		}

		for _, c := range comps {
			vVal, vOK, err := numericValue(c, event)
			if err != nil {
				return nil, err
			}
			row.Cells = append(row.Cells, compCells(bVal, bOK, vVal, vOK, opts.Mode, value)...)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// compCells formats one comparison column's cells for a row. A missing
// value on either side yields unclassified n/a placeholders instead of a
// lookup failure.
func compCells(b float64, bOK bool, v float64, vOK bool, mode Mode, value valueFormatter) []Cell {
	n := 2
	if mode == ModeDelta {
		n = 3
	}

	cells := make([]Cell, 0, n)
	if !vOK {
		for i := 0; i < n; i++ {
			cells = append(cells, Cell{Text: naCell})
		}
		return cells
	}
	if !bOK {
		cells = append(cells, Cell{Text: value(v, mode)})
		for len(cells) < n {
			cells = append(cells, Cell{Text: naCell})
		}
		return cells
	}

	// Strictly greater than the baseline counts as an increase; equal
	// values classify as a decrease.
	class := ClassDecrease
	if v > b {
		class = ClassIncrease
	}

	cells = append(cells, Cell{Text: value(v, mode), Class: class})
	if mode == ModeDelta {
		cells = append(cells, Cell{Text: fmt.Sprintf("%+.1f", v-b), Class: class})
		cells = append(cells, Cell{Text: formatPercent(deltaPercent(b, v)), Class: class})
		return cells
	}
	cells = append(cells, Cell{Text: formatPercent(ratioPercent(b, v)), Class: class})
	return cells
}

// numericValue parses a column's value for an event. ok=false means the
// event (or its value) is absent; a present but non-numeric value is an
// error.
func numericValue(c *perfdump.Column, event string) (float64, bool, error) {
	raw, ok := c.Value(event)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: event %q in %s: %q", ErrBadValue, event, c.Source, raw)
	}
	return v, true, nil
}

// ratioPercent is 100*v/b with an explicit zero guard: a zero baseline
// reports 0 rather than an infinity.
func ratioPercent(b, v float64) float64 {
	if b == 0 {
		return 0
	}
	return percentFactor * v / b
}

// deltaPercent is 100*(v-b)/b with the same zero guard.
func deltaPercent(b, v float64) float64 {
	if b == 0 {
		return 0
	}
	return percentFactor * (v - b) / b
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
