//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
)

func testPanel(t *testing.T, counts ...int) panel.Panel {
	t.Helper()
	ds := str.NewDataset("test")
	ds.Runs = []string{"r0"}
	docs := str.NewNest[str.TopicDoc]()
	terms := str.NewNest[str.TopicTerm]()
	ids := []string{"a", "b", "c", "d"}
	for i, n := range counts {
		id := ids[i]
		ds.CountsByRun["r0"] = append(ds.CountsByRun["r0"], str.TopicCount{RunID: "r0", TopicID: id, Count: n})
		docs.Add(id, str.TopicDoc{RunID: "r0", TopicID: id, TopDoc: "Thuc. <1.22>", TopDocOrder: 1, TopDocProb: 0.8})
		terms.Add(id, str.TopicTerm{RunID: "r0", TopicID: id, TopTerm: "λόγος", TopTermOrder: 1, TopProb: 0.2})
	}
	ds.TopicsByRun["r0"] = docs
	ds.TermsByRun["r0"] = terms
	ds.MetricsByRun["r0"] = []str.RunMetric{{RunID: "r0", Metric: "coherence", MetricScore: 0.42, ActionType: "eval"}}

	p, err := panel.Build(ds, str.PanelState{Side: str.LEFT}, panel.Limits{TopicLimit: 2, TokenLimit: 3, TextLimit: 3})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func wellformed(t *testing.T, b []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(b))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("svg is not well-formed xml: %v\n%s", err, b)
		}
	}
}

func TestHTMLPaint(t *testing.T) {
	p := testPanel(t, 50, 30, 20)
	r, err := Paint(NewHTMLPainter(), p, NewPalette(10, false))
	if err != nil {
		t.Fatal(err)
	}

	if r.Side != str.LEFT || r.RunID != "r0" {
		t.Fatalf("rendered = %+v", r)
	}
	for name, frag := range map[string]string{"histogram": r.Histogram, "radial": r.Radial, "matrix": r.Matrix} {
		if !strings.Contains(frag, "<script") || !strings.Contains(frag, "echarts.init") {
			t.Fatalf("%s is not a chart fragment:\n%s", name, frag)
		}
	}
	if !strings.Contains(r.Docs, "Thuc. &lt;1.22&gt;") {
		t.Fatalf("document names should be escaped:\n%s", r.Docs)
	}
	if strings.Count(r.Docs, `class="nthrow"`)+strings.Count(r.Docs, `<tr class="vectorrow">`) != 3 {
		t.Fatalf("expected a header and two topic rows:\n%s", r.Docs)
	}
	// one document per topic, padded to the text limit
	if strings.Count(r.Docs, `<td class="vectorsent"></td>`) != 4 {
		t.Fatalf("short lists should be padded:\n%s", r.Docs)
	}
	if !strings.Contains(r.Terms, "λόγος") || !strings.Contains(r.Metrics, "coherence") {
		t.Fatal("terms or metrics missing")
	}
	if !strings.Contains(r.Summary, "3 topics") {
		t.Fatalf("summary = %q", r.Summary)
	}
}

func TestHTMLEmptyPanel(t *testing.T) {
	p, err := panel.Build(str.NewDataset("empty"), str.PanelState{Side: str.RIGHT}, panel.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	r, err := Paint(NewHTMLPainter(), p, NewPalette(10, false))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{r.Histogram, r.Radial, r.Docs, r.Terms, r.Matrix, r.Metrics} {
		if !strings.Contains(s, NODATA) {
			t.Fatalf("empty panel should say so, got %q", s)
		}
	}
}

func TestFragmentIDsDiffer(t *testing.T) {
	p := testPanel(t, 5, 5)
	h := NewHTMLPainter()
	a, _ := h.Radial(p, NewPalette(10, false))
	b, _ := h.Radial(p, NewPalette(10, false))
	if a == b {
		t.Fatal("two renders of the same chart should not share an element id")
	}
}

func TestRadialSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := RadialSVG(&buf, testPanel(t, 50, 30, 20), NewPalette(10, false), 300); err != nil {
		t.Fatal(err)
	}
	wellformed(t, buf.Bytes())
	if n := strings.Count(buf.String(), "<path"); n != 3 {
		t.Fatalf("expected 3 sectors, got %d", n)
	}
}

func TestRadialSVGSingleTopic(t *testing.T) {
	var buf bytes.Buffer
	if err := RadialSVG(&buf, testPanel(t, 7), NewPalette(10, false), 0); err != nil {
		t.Fatal(err)
	}
	wellformed(t, buf.Bytes())
	if !strings.Contains(buf.String(), "<circle") {
		t.Fatal("a topic with the whole circle should be drawn as a circle")
	}
}

func TestRadialSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RadialSVG(&buf, testPanel(t, 0, 0), NewPalette(10, false), 200); err != nil {
		t.Fatal(err)
	}
	wellformed(t, buf.Bytes())
	if !strings.Contains(buf.String(), "no data") {
		t.Fatal("zero documents should be labelled")
	}
}

func TestTermPainter(t *testing.T) {
	r, err := Paint(NewTermPainter(), testPanel(t, 50, 30, 20), NewPalette(10, true))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.Radial, "50.0%") || !strings.Contains(r.Radial, "20.0%") {
		t.Fatalf("radial table:\n%s", r.Radial)
	}
	if !strings.Contains(r.Matrix, "λόγος") {
		t.Fatalf("matrix table:\n%s", r.Matrix)
	}
}

func TestPalette(t *testing.T) {
	pal := NewPalette(12, false)
	if len(pal.Colors) != 12 {
		t.Fatalf("colours = %d", len(pal.Colors))
	}
	if pal.Color(-1) != pal.Neutral {
		t.Fatal("negative index should be neutral")
	}
	if pal.Color(13) != pal.Color(1) {
		t.Fatal("indices should wrap")
	}
	if pal.Shade(0, 1) == pal.Shade(0, 0) {
		t.Fatal("shade should vary with t")
	}

	bw := NewPalette(3, true)
	for _, c := range bw.Colors {
		if c[1:3] != c[3:5] || c[3:5] != c[5:7] {
			t.Fatalf("%s is not grey", c)
		}
	}
	if Ink("#000000") != "#ffffff" || Ink("#ffffff") != "#000000" {
		t.Fatal("ink should contrast")
	}
}

func TestSelector(t *testing.T) {
	s := NewSelector()
	if _, err := s.Fire(Selection{Side: str.LEFT}); !errors.Is(err, ErrNoCallback) {
		t.Fatalf("err = %v", err)
	}

	var got Selection
	s.Register(str.LEFT, func(sel Selection) (Rendered, error) {
		got = sel
		return Rendered{Side: sel.Side, Index: sel.Index}, nil
	})
	r, err := s.Fire(Selection{Session: "abc", Side: str.LEFT, Index: 2})
	if err != nil || r.Index != 2 || got.Session != "abc" {
		t.Fatalf("fire: %+v %v", r, err)
	}
}

func TestWriteReport(t *testing.T) {
	pal := NewPalette(10, false)
	l, err := Paint(NewHTMLPainter(), testPanel(t, 50, 30, 20), pal)
	if err != nil {
		t.Fatal(err)
	}
	r := l
	r.Side = str.RIGHT

	var buf bytes.Buffer
	if err = WriteReport(&buf, "csv:./data", "mean |Δ|: 0.0667", l, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"csv:./data", "0.0667", "echarts", l.Summary} {
		if !strings.Contains(out, want) {
			t.Fatalf("report lacks %q", want)
		}
	}
}
