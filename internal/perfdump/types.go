// Package perfdump loads performance-counter dump files into columns of
// event name/value pairs suitable for baseline comparison.
//
// The first loaded column is the baseline; all later columns are reported
// relative to it. Values are kept as raw text until render time.
package perfdump

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved pseudo-event keys carried inside dump files.
const (
	nameKey  = "__NAME__"
	patchKey = "__PATCH__"
)

// Sentinel written in place of fields missing from short lines.
const missingField = "n/a"

// Format identifies a supported dump file layout.
type Format int

const (
	// FormatKV is "<event> <value>", space-delimited.
	FormatKV Format = iota
	// FormatPerfStat is the `perf stat -x ;` record layout: the value is
	// the first field and the event name the third.
	FormatPerfStat
	// FormatProm is the Prometheus text exposition format.
	FormatProm
)

// ParseFormat maps a CLI format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kv":
		return FormatKV, nil
	case "perfstat":
		return FormatPerfStat, nil
	case "prom", "prometheus":
		return FormatProm, nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q", ErrBadFormat, s)
	}
}

// Header carries the per-column metadata embedded under reserved keys.
type Header struct {
	// Label is the column display name.
	Label string
	// PatchRef, when non-empty, is a hyperlink target describing the
	// change that produced this column.
	PatchRef string
}

// Column is one input file's worth of performance data.
type Column struct {
	Header
	// Source is the file the column was loaded from.
	Source string
	// Events maps event name to its raw textual value.
	Events map[string]string
}

// Value returns the raw value for an event. A missing event, or one whose
// value is the short-line sentinel, reports ok=false.
func (c *Column) Value(event string) (string, bool) {
	v, ok := c.Events[event]
	if !ok || v == missingField {
		return "", false
	}
	return v, true
}

// Universe is the ordered set of distinct non-reserved event names seen
// across all columns. Names keep first-seen order; Add is a no-op for
// already-known names.
type Universe struct {
	names []string
	seen  map[string]struct{}
}

// NewUniverse creates an empty Universe.
func NewUniverse() *Universe {
	return &Universe{seen: make(map[string]struct{})}
}

// Add records an event name on first sight.
func (u *Universe) Add(name string) {
	if _, ok := u.seen[name]; ok {
		return
	}
	u.seen[name] = struct{}{}
	u.names = append(u.names, name)
}

// Len reports the number of distinct event names.
func (u *Universe) Len() int { return len(u.names) }

// Names returns event names in first-seen order.
func (u *Universe) Names() []string {
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// Sorted returns event names in lexicographic order.
func (u *Universe) Sorted() []string {
	out := u.Names()
	sort.Strings(out)
	return out
}

// Set holds the ordered columns and their shared event universe.
type Set struct {
	Columns  []*Column
	Universe *Universe
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{Universe: NewUniverse()}
}

// Baseline returns the first column, or nil when the set is empty.
func (s *Set) Baseline() *Column {
	if len(s.Columns) == 0 {
		return nil
	}
	return s.Columns[0]
}

// FileSpec names one input file and its optional caller-supplied label.
type FileSpec struct {
	Label string
	Path  string
}
