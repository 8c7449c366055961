package perfdump

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Field layout of a `perf stat -x ;` record: value;unit;event;...
const (
	perfStatValueField = 0
	perfStatEventField = 2
	perfStatMinFields  = 3
)

// Load reads one dump file, appends it as a column, and folds its event
// names into the shared universe. Label precedence: an embedded __NAME__
// key wins, then the caller-supplied label; a column with neither fails
// with ErrMissingLabel.
func (s *Set) Load(label, path string, format Format) error {
	col, err := readColumn(path, format, s.Universe)
	if err != nil {
		return err
	}
	if col.Label == "" {
		col.Label = label
	}
	if col.Label == "" {
		return fmt.Errorf("%w: %s (supply a label or a %s key)", ErrMissingLabel, path, nameKey)
	}
	s.Columns = append(s.Columns, col)
	return nil
}

// ReadSet loads all files in argument order and returns the populated Set.
func ReadSet(specs []FileSpec, format Format) (*Set, error) {
	if len(specs) == 0 {
		return nil, ErrNoColumns
	}
	s := NewSet()
	for _, spec := range specs {
		if err := s.Load(spec.Label, spec.Path, format); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func readColumn(path string, format Format, u *Universe) (*Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close()

	col := &Column{
		Source: path,
		Events: make(map[string]string),
	}

	if format == FormatProm {
		if err := readProm(f, col, u); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return col, nil
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		event, value := splitLine(line, format)
		switch event {
		case nameKey:
			col.Label = value
		case patchKey:
			col.PatchRef = value
		default:
			u.Add(event)
			col.Events[event] = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return col, nil
}

// splitLine extracts the event name and raw value from one record. Short
// lines fill the missing fields with the "n/a" sentinel.
func splitLine(line string, format Format) (event, value string) {
	event, value = missingField, missingField
	switch format {
	case FormatPerfStat:
		fields := strings.Split(line, ";")
		if len(fields) > perfStatValueField {
			value = fields[perfStatValueField]
		}
		if len(fields) >= perfStatMinFields {
			event = fields[perfStatEventField]
		}
	default:
		fields := strings.Fields(line)
		if len(fields) > 0 {
			event = fields[0]
		}
		if len(fields) > 1 {
			value = fields[1]
		}
	}
	return event, value
}
