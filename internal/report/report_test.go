package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okian/perfdiff/internal/perfdump"
	"github.com/okian/perfdiff/internal/report"
	. "github.com/smartystreets/goconvey/convey"
)

// buildSet assembles an in-memory set; the first map is the baseline.
func buildSet(labels []string, events []map[string]string) *perfdump.Set {
	set := perfdump.NewSet()
	for i, ev := range events {
		col := &perfdump.Column{
			Header: perfdump.Header{Label: labels[i]},
			Source: labels[i] + ".txt",
			Events: ev,
		}
		for name := range ev {
			set.Universe.Add(name)
		}
		set.Columns = append(set.Columns, col)
	}
	return set
}

func TestRenderHTMLPercent(t *testing.T) {
	Convey("Given a two-column set with a shared event", t, func() {
		set := buildSet(
			[]string{"before", "after"},
			[]map[string]string{
				{"cache_misses": "100"},
				{"cache_misses": "150"},
			},
		)

		var buf bytes.Buffer
		err := report.RenderHTML(&buf, set, report.Options{})
		out := buf.String()

		Convey("Then the table renders the documented cells", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `<table class="perfstats">`)
			So(out, ShouldContainSubstring, "<td>cache_misses</td>")
			So(out, ShouldContainSubstring, "<td>1.0e+02</td>")
			So(out, ShouldContainSubstring, `<td class="perfstatincr">1.5e+02</td>`)
			So(out, ShouldContainSubstring, `<td class="perfstatincr">150.0%</td>`)
		})

		Convey("And the header has 1 + 1 + 2*(N-1) cells", func() {
			So(strings.Count(out, "<th>"), ShouldEqual, 4)
		})

		Convey("And the baseline cell carries no class", func() {
			So(out, ShouldNotContainSubstring, `class="perfstatincr">1.0e+02`)
			So(out, ShouldNotContainSubstring, `class="perfstatdecr">1.0e+02`)
		})
	})
}

func TestRenderHTMLClassification(t *testing.T) {
	Convey("Given comparison values around the baseline", t, func() {
		set := buildSet(
			[]string{"base", "equal", "lower"},
			[]map[string]string{
				{"ev": "100"},
				{"ev": "100"},
				{"ev": "50"},
			},
		)

		var buf bytes.Buffer
		So(report.RenderHTML(&buf, set, report.Options{}), ShouldBeNil)
		out := buf.String()

		Convey("Then equal values classify as decrease", func() {
			So(out, ShouldContainSubstring, `<td class="perfstatdecr">100.0%</td>`)
			So(out, ShouldNotContainSubstring, "perfstatincr")
		})

		Convey("And lower values classify as decrease too", func() {
			So(out, ShouldContainSubstring, `<td class="perfstatdecr">5.0e+01</td>`)
			So(out, ShouldContainSubstring, `<td class="perfstatdecr">50.0%</td>`)
		})
	})
}

func TestRenderHTMLZeroBaseline(t *testing.T) {
	Convey("Given a zero baseline value", t, func() {
		set := buildSet(
			[]string{"base", "new"},
			[]map[string]string{
				{"ev": "0"},
				{"ev": "5"},
			},
		)

		var buf bytes.Buffer
		So(report.RenderHTML(&buf, set, report.Options{}), ShouldBeNil)
		out := buf.String()

		Convey("Then the percentage is the guarded zero, not an error", func() {
			So(out, ShouldContainSubstring, `<td class="perfstatincr">0.0%</td>`)
		})
	})
}

func TestRenderHTMLMissingEvent(t *testing.T) {
	Convey("Given an event absent from a comparison column", t, func() {
		set := buildSet(
			[]string{"base", "partial"},
			[]map[string]string{
				{"present": "10", "only_base": "3"},
				{"present": "20"},
			},
		)

		var buf bytes.Buffer
		So(report.RenderHTML(&buf, set, report.Options{}), ShouldBeNil)
		out := buf.String()

		Convey("Then the row is kept with unclassified n/a cells", func() {
			So(out, ShouldContainSubstring, "<td>only_base</td>")
			So(out, ShouldContainSubstring, "<td>n/a</td>")
			So(out, ShouldNotContainSubstring, `class="perfstatincr">n/a`)
			So(out, ShouldNotContainSubstring, `class="perfstatdecr">n/a`)
		})
	})

	Convey("Given an event absent from the baseline column", t, func() {
		set := buildSet(
			[]string{"base", "extra"},
			[]map[string]string{
				{"shared": "1"},
				{"shared": "1", "only_new": "7"},
			},
		)

		var buf bytes.Buffer
		So(report.RenderHTML(&buf, set, report.Options{}), ShouldBeNil)
		out := buf.String()

		Convey("Then the new value renders without class or percentage", func() {
			So(out, ShouldContainSubstring, "<td>only_new</td>")
			So(out, ShouldContainSubstring, "<td>7.0e+00</td>")
		})
	})
}

func TestRenderHTMLPatchLink(t *testing.T) {
	Convey("Given a comparison column with a patch reference", t, func() {
		set := buildSet(
			[]string{"base", "patched"},
			[]map[string]string{
				{"ev": "1"},
				{"ev": "2"},
			},
		)
		set.Columns[1].PatchRef = "https://example.com/0001.patch"

		var buf bytes.Buffer
		So(report.RenderHTML(&buf, set, report.Options{}), ShouldBeNil)
		out := buf.String()

		Convey("Then the header embeds a patch hyperlink", func() {
			So(out, ShouldContainSubstring, `<th>patched<br><a href="https://example.com/0001.patch">patch</a></th>`)
		})
	})
}

func TestRenderHTMLDeltaMode(t *testing.T) {
	Convey("Given delta mode", t, func() {
		set := buildSet(
			[]string{"base", "new"},
			[]map[string]string{
				{"ev": "100.0"},
				{"ev": "150.0"},
			},
		)

		var buf bytes.Buffer
		err := report.RenderHTML(&buf, set, report.Options{Mode: report.ModeDelta})
		out := buf.String()

		Convey("Then values are fixed-point with delta and delta-percent cells", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "<td>100.0</td>")
			So(out, ShouldContainSubstring, `<td class="perfstatincr">150.0</td>`)
			So(out, ShouldContainSubstring, `<td class="perfstatincr">+50.0</td>`)
			So(out, ShouldContainSubstring, `<td class="perfstatincr">50.0%</td>`)
		})

		Convey("And the header has 1 + 1 + 3*(N-1) cells", func() {
			So(strings.Count(out, "<th>"), ShouldEqual, 5)
		})
	})
}

func TestRenderHTMLOrdering(t *testing.T) {
	Convey("Given events recorded out of lexicographic order", t, func() {
		set := buildSet([]string{"base"}, []map[string]string{{}})
		set.Universe.Add("zeta")
		set.Universe.Add("alpha")
		set.Columns[0].Events = map[string]string{"zeta": "1", "alpha": "2"}

		Convey("When rendering with sorted order", func() {
			var buf bytes.Buffer
			So(report.RenderHTML(&buf, set, report.Options{Order: report.OrderSorted}), ShouldBeNil)
			out := buf.String()
			So(strings.Index(out, "alpha"), ShouldBeLessThan, strings.Index(out, "zeta"))
		})

		Convey("When rendering with first-seen order", func() {
			var buf bytes.Buffer
			So(report.RenderHTML(&buf, set, report.Options{Order: report.OrderFirstSeen}), ShouldBeNil)
			out := buf.String()
			So(strings.Index(out, "zeta"), ShouldBeLessThan, strings.Index(out, "alpha"))
		})
	})
}

func TestRenderHTMLErrors(t *testing.T) {
	Convey("Given an empty set", t, func() {
		var buf bytes.Buffer
		err := report.RenderHTML(&buf, perfdump.NewSet(), report.Options{})
		So(errors.Is(err, report.ErrEmptySet), ShouldBeTrue)
	})

	Convey("Given a non-numeric value", t, func() {
		set := buildSet([]string{"base"}, []map[string]string{{"ev": "fast"}})
		var buf bytes.Buffer
		err := report.RenderHTML(&buf, set, report.Options{})
		So(errors.Is(err, report.ErrBadValue), ShouldBeTrue)
	})
}

func TestRenderText(t *testing.T) {
	Convey("Given a two-column set", t, func() {
		set := buildSet(
			[]string{"before", "after"},
			[]map[string]string{
				{"cache_misses": "1000000"},
				{"cache_misses": "1500000"},
			},
		)

		var buf bytes.Buffer
		err := report.RenderText(&buf, set, report.Options{})
		out := buf.String()

		Convey("Then the table is plain text with humanized values", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "before")
			So(out, ShouldContainSubstring, "after")
			So(out, ShouldContainSubstring, "cache_misses")
			So(out, ShouldContainSubstring, "1.5 M")
			So(out, ShouldNotContainSubstring, "<table")
		})

		Convey("And increases carry a + marker", func() {
			So(out, ShouldContainSubstring, "150.0% +")
		})
	})
}
