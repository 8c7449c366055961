package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/okian/perfdiff/internal/perfdump"
)

// The output is a fragment meant for embedding into a wider page, so no
// <html>/<head> wrapper is emitted.
var htmlTableTemplate = template.Must(template.New("perfstats").Parse(`<table class="perfstats">
<tr>
{{- range .Headers}}
{{- if .PatchRef}}
<th>{{.Label}}<br><a href="{{.PatchRef}}">patch</a></th>
{{- else}}
<th>{{.Label}}</th>
{{- end}}
{{- end}}
</tr>
{{- range .Rows}}
<tr>
<td>{{.Event}}</td>
{{- range .Cells}}
{{- if .Class}}
<td class="{{.Class}}">{{.Text}}</td>
{{- else}}
<td>{{.Text}}</td>
{{- end}}
{{- end}}
</tr>
{{- end}}
</table>
`))

// RenderHTML writes the comparison table as an HTML fragment. Baseline
// values use scientific notation with one mantissa digit in percent mode
// and fixed-point with one decimal in delta mode.
func RenderHTML(w io.Writer, set *perfdump.Set, opts Options) error {
	t, err := buildTable(set, opts, htmlValue)
	if err != nil {
		return err
	}
	if err := htmlTableTemplate.Execute(w, t); err != nil {
		return fmt.Errorf("render html table: %w", err)
	}
	return nil
}

func htmlValue(v float64, mode Mode) string {
	if mode == ModeDelta {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.1e", v)
}
