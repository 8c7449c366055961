package report

import (
	"io"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/dustin/go-humanize"
	"github.com/okian/perfdiff/internal/perfdump"
)

// tabwriter settings for the text table.
const (
	textMinWidth = 0
	textTabWidth = 0
	textPadding  = 2
)

// RenderText writes the comparison table as an aligned plain-text table.
// Values are humanized (SI suffixes) and the increase/decrease classes
// become +/- markers on the percentage cells.
func RenderText(w io.Writer, set *perfdump.Set, opts Options) error {
	t, err := buildTable(set, opts, textValue)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, textMinWidth, textTabWidth, textPadding, ' ', 0)
	tb := tabby.NewCustom(tw)

	headers := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h.Label
	}
	tb.AddHeader(headers...)

	for _, row := range t.Rows {
		line := make([]interface{}, 0, len(row.Cells)+1)
		line = append(line, row.Event)
		for _, c := range row.Cells {
			line = append(line, c.Text+marker(c.Class))
		}
		tb.AddLine(line...)
	}
	tb.Print()
	return nil
}

func marker(class string) string {
	switch class {
	case ClassIncrease:
		return " +"
	case ClassDecrease:
		return " -"
	default:
		return ""
	}
}

func textValue(v float64, _ Mode) string {
	return humanize.SIWithDigits(v, 1, "")
}
