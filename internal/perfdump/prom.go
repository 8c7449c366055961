package perfdump

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// readProm parses a Prometheus text exposition dump. Each sample becomes
// one event; labels are folded into the event name so that differently
// labeled series stay distinct rows. Histogram and summary families
// contribute their _count and _sum series.
func readProm(r io.Reader, col *Column, u *Universe) error {
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(r)
	if err != nil {
		return fmt.Errorf("parse prometheus text: %w", err)
	}

	// Map iteration order is random; sort family names so column and
	// universe ordering is stable across runs.
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mf := families[name]
		for _, m := range mf.GetMetric() {
			event := sampleName(name, m)
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				addSample(col, u, event, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				addSample(col, u, event, m.GetGauge().GetValue())
			case dto.MetricType_SUMMARY:
				addSample(col, u, event+"_count", float64(m.GetSummary().GetSampleCount()))
				addSample(col, u, event+"_sum", m.GetSummary().GetSampleSum())
			case dto.MetricType_HISTOGRAM:
				addSample(col, u, event+"_count", float64(m.GetHistogram().GetSampleCount()))
				addSample(col, u, event+"_sum", m.GetHistogram().GetSampleSum())
			default:
				addSample(col, u, event, m.GetUntyped().GetValue())
			}
		}
	}
	return nil
}

func addSample(col *Column, u *Universe, event string, v float64) {
	u.Add(event)
	col.Events[event] = strconv.FormatFloat(v, 'g', -1, 64)
}

// sampleName renders name{label="value",...} for labeled series.
func sampleName(name string, m *dto.Metric) string {
	labels := m.GetLabel()
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, len(labels))
	for i, lp := range labels {
		parts[i] = lp.GetName() + `="` + lp.GetValue() + `"`
	}
	return name + "{" + strings.Join(parts, ",") + "}"
}
