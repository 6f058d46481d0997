//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"golang.org/x/text/unicode/norm"
)

const (
	COLRUN         = "run_id"
	COLTOPIC       = "topic_id"
	COLTOPDOC      = "top_doc"
	COLTOPDOCORDER = "top_doc_order"
	COLTOPDOCPROB  = "top_doc_prob"
	COLTOPTERM     = "top_term"
	COLTERMORDER   = "top_term_order"
	COLTOPPROB     = "top_prob"
	COLCOUNT       = "count"
	COLMETRIC      = "metric"
	COLSCORE       = "metric_score"
	COLACTION      = "action_type"
)

// ParseOptions configures how tolerant coercion is
type ParseOptions struct {
	// WarningHandler is called once per dropped row or degraded table; nil means Msg.WARN
	WarningHandler func(string)
}

func (o ParseOptions) warn() func(string) {
	if o.WarningHandler != nil {
		return o.WarningHandler
	}
	return Msg.WARN
}

// clean - identifiers and terms are compared as NFC so that composed and decomposed accents agree
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// columns - positions of the required columns, or a *ColumnError for the first one absent
func columns(tb str.Table, want ...string) (map[string]int, error) {
	pos := make(map[string]int, len(want))
	for _, w := range want {
		i := tb.Column(w)
		if i < 0 {
			return nil, &ColumnError{Table: tb.Name, Column: w}
		}
		pos[w] = i
	}
	return pos, nil
}

// rowreader - pulls typed cells out of one record; the first failure sticks
type rowreader struct {
	tb   string
	line int
	rec  []string
	pos  map[string]int
	err  error
}

func (r *rowreader) cell(col string) string {
	i := r.pos[col]
	if i >= len(r.rec) {
		return ""
	}
	return r.rec[i]
}

func (r *rowreader) fail(col, val string, err error) {
	if r.err == nil {
		r.err = &RowError{Table: r.tb, Line: r.line, Column: col, Value: val, Err: err}
	}
}

func (r *rowreader) text(col string) string {
	return clean(r.cell(col))
}

func (r *rowreader) id(col string) string {
	v := clean(r.cell(col))
	if v == "" {
		r.fail(col, v, fmt.Errorf("%w: empty identifier", ErrParse))
	}
	return v
}

// integer - accepts "3" and "3.0", as the "+d" coercion of a csv reader would
func (r *rowreader) integer(col string) int {
	raw := strings.TrimSpace(r.cell(col))
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		r.fail(col, raw, ErrParse)
		return 0
	}
	return int(f)
}

func (r *rowreader) float(col string) float64 {
	raw := strings.TrimSpace(r.cell(col))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.fail(col, raw, ErrParse)
		return 0
	}
	return f
}

func (r *rowreader) probability(col string) float64 {
	f := r.float(col)
	if r.err == nil && (f < 0 || f > 1) {
		r.fail(col, r.cell(col), fmt.Errorf("%w: probability outside [0,1]", ErrParse))
	}
	return f
}

func (r *rowreader) nonnegative(col string) int {
	i := r.integer(col)
	if r.err == nil && i < 0 {
		r.fail(col, r.cell(col), fmt.Errorf("%w: negative count", ErrParse))
	}
	return i
}

// coerce - run fn over every record of tb; rows that fail are dropped with a warning
func coerce[T any](tb str.Table, want []string, o ParseOptions, fn func(r *rowreader) T) ([]T, int, error) {
	pos, err := columns(tb, want...)
	if err != nil {
		return nil, 0, err
	}

	warn := o.warn()
	out := make([]T, 0, len(tb.Records))
	dropped := 0
	for i, rec := range tb.Records {
		// line 1 is the header
		r := &rowreader{tb: tb.Name, line: i + 2, rec: rec, pos: pos}
		row := fn(r)
		if r.err != nil {
			dropped++
			warn(fmt.Sprintf("skipping row: %v", r.err))
			continue
		}
		out = append(out, row)
	}
	return out, dropped, nil
}

// TopicDocs - typed rows of topics-by-texts.csv
func TopicDocs(tb str.Table, o ParseOptions) ([]str.TopicDoc, int, error) {
	want := []string{COLRUN, COLTOPIC, COLTOPDOC, COLTOPDOCORDER, COLTOPDOCPROB}
	return coerce(tb, want, o, func(r *rowreader) str.TopicDoc {
		return str.TopicDoc{
			RunID:       r.id(COLRUN),
			TopicID:     r.id(COLTOPIC),
			TopDoc:      r.text(COLTOPDOC),
			TopDocOrder: r.integer(COLTOPDOCORDER),
			TopDocProb:  r.probability(COLTOPDOCPROB),
		}
	})
}

// TopicTerms - typed rows of words-by-topics.csv
func TopicTerms(tb str.Table, o ParseOptions) ([]str.TopicTerm, int, error) {
	want := []string{COLRUN, COLTOPIC, COLTOPTERM, COLTERMORDER, COLTOPPROB}
	return coerce(tb, want, o, func(r *rowreader) str.TopicTerm {
		return str.TopicTerm{
			RunID:        r.id(COLRUN),
			TopicID:      r.id(COLTOPIC),
			TopTerm:      r.id(COLTOPTERM),
			TopTermOrder: r.integer(COLTERMORDER),
			TopProb:      r.probability(COLTOPPROB),
		}
	})
}

// TopicCounts - typed rows of topics-by-count.csv
func TopicCounts(tb str.Table, o ParseOptions) ([]str.TopicCount, int, error) {
	want := []string{COLRUN, COLTOPIC, COLCOUNT}
	return coerce(tb, want, o, func(r *rowreader) str.TopicCount {
		return str.TopicCount{
			RunID:   r.id(COLRUN),
			TopicID: r.id(COLTOPIC),
			Count:   r.nonnegative(COLCOUNT),
		}
	})
}

// RunMetrics - typed rows of runs_sample.csv; action_type is optional
func RunMetrics(tb str.Table, o ParseOptions) ([]str.RunMetric, int, error) {
	want := []string{COLRUN, COLMETRIC, COLSCORE}
	act := tb.Column(COLACTION)
	return coerce(tb, want, o, func(r *rowreader) str.RunMetric {
		m := str.RunMetric{
			RunID:       r.id(COLRUN),
			Metric:      r.id(COLMETRIC),
			MetricScore: r.float(COLSCORE),
		}
		if act >= 0 && act < len(r.rec) {
			m.ActionType = clean(r.rec[act])
		}
		return m
	})
}
