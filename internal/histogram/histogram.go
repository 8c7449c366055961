// Package histogram parses HIST-formatted measurement lines into
// per-implementation, per-operation sample sets.
//
// Input lines look like:
//
//	HIST <impl> <op> <bucket> <count>
//
// meaning <count> measurements landed in bucket value <bucket>. Lines not
// starting with HIST are ignored, so the format can be interleaved with
// arbitrary benchmark output.
package histogram

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const (
	histMarker     = "HIST"
	histLineFields = 5
)

type key struct {
	impl, op string
}

// Collection holds expanded samples keyed by implementation and operation.
// Implementations and operations keep first-seen order.
type Collection struct {
	impls   []string
	ops     []string
	implSet map[string]struct{}
	opSet   map[string]struct{}
	samples map[key][]float64
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		implSet: make(map[string]struct{}),
		opSet:   make(map[string]struct{}),
		samples: make(map[key][]float64),
	}
}

// Parse reads measurement lines from r into a Collection.
func Parse(r io.Reader) (*Collection, error) {
	c := NewCollection()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != histMarker {
			continue
		}
		if len(fields) < histLineFields {
			return nil, fmt.Errorf("%w: line %d: want %d fields, got %d", ErrBadRecord, lineNo, histLineFields, len(fields))
		}
		bucket, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bucket %q", ErrBadRecord, lineNo, fields[3])
		}
		count, err := strconv.Atoi(fields[4])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: line %d: count %q", ErrBadRecord, lineNo, fields[4])
		}
		c.add(fields[1], fields[2], bucket, count)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read measurements: %w", err)
	}
	return c, nil
}

// add appends count copies of bucket to the impl/op sample set.
func (c *Collection) add(impl, op string, bucket float64, count int) {
	if _, ok := c.implSet[impl]; !ok {
		c.implSet[impl] = struct{}{}
		c.impls = append(c.impls, impl)
	}
	if _, ok := c.opSet[op]; !ok {
		c.opSet[op] = struct{}{}
		c.ops = append(c.ops, op)
	}
	k := key{impl: impl, op: op}
	s := c.samples[k]
	for i := 0; i < count; i++ {
		s = append(s, bucket)
	}
	c.samples[k] = s
}

// Impls returns implementation names in first-seen order.
func (c *Collection) Impls() []string {
	out := make([]string, len(c.impls))
	copy(out, c.impls)
	return out
}

// Ops returns operation names in first-seen order.
func (c *Collection) Ops() []string {
	out := make([]string, len(c.ops))
	copy(out, c.ops)
	return out
}

// SortedOps returns operation names in lexicographic order, the order the
// chart panels are laid out in.
func (c *Collection) SortedOps() []string {
	out := c.Ops()
	sort.Strings(out)
	return out
}

// Samples returns the expanded measurements for one impl/op pair. The
// returned slice is shared; callers must not mutate it.
func (c *Collection) Samples(impl, op string) []float64 {
	return c.samples[key{impl: impl, op: op}]
}

// Empty reports whether the collection holds no samples at all.
func (c *Collection) Empty() bool { return len(c.samples) == 0 }

// MinMax returns the smallest and largest measurement across every
// impl/op pair. It fails on an empty collection.
func (c *Collection) MinMax() (min, max float64, err error) {
	if c.Empty() {
		return 0, 0, ErrNoSamples
	}
	first := true
	for _, s := range c.samples {
		for _, v := range s {
			if first {
				min, max = v, v
				first = false
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max, nil
}
