//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package panel

import (
	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"gonum.org/v1/gonum/floats"
)

// ActiveTopic - one of the TopicLimit best-represented topics and what the tables show for it
type ActiveTopic struct {
	RankedTopic
	Color int
	Docs  []str.TopicDoc
	Terms []str.TopicTerm
}

// Bar - one histogram bar; every ranked topic gets one
type Bar struct {
	TopicID string
	Count   int
	Height  float64 // Count through the panel's CountScale
	Active  bool
	Color   int
}

// Panel - everything a painter needs for one side
type Panel struct {
	State  str.PanelState
	RunID  string
	Limits Limits

	Ranked []RankedTopic
	Active []ActiveTopic

	MaxTopicProb float64
	MaxTokenProb float64
	DocScale     LinearScale
	TermScale    LinearScale

	Matrix    Matrix
	Radial    []Arc
	TotalDocs int

	Bars       []Bar
	CountScale LinearScale

	Metrics []str.RunMetric
}

// IsEmpty - nothing to draw
func (p Panel) IsEmpty() bool {
	return p.RunID == ""
}

// Resolve - run id at index i, or a *RunIndexError
func Resolve(ds *str.Dataset, i int) (string, error) {
	run, ok := ds.RunAt(i)
	if !ok {
		n := 0
		if ds != nil {
			n = len(ds.Runs)
		}
		return "", &RunIndexError{Index: i, Runs: n}
	}
	return run, nil
}

// Build - derive a panel for the run the state points at; pure, the dataset is only read
func Build(ds *str.Dataset, ps str.PanelState, l Limits) (Panel, error) {
	l = l.Normalized()
	p := Panel{
		State:      ps,
		Limits:     l,
		DocScale:   NewLinearScale(0),
		TermScale:  NewLinearScale(0),
		CountScale: NewLinearScale(0),
		Matrix:     Matrix{Marker: NewLinearScale(0)},
	}

	// "no runs" draws an empty panel
	if ds.IsEmpty() {
		return p, nil
	}

	// [1] resolve

	run, err := Resolve(ds, ps.RunIndex)
	if err != nil {
		return Panel{}, err
	}
	p.RunID = run

	// [2] rank

	p.Ranked = Rank(TopicCounts(ds, run))

	// [3] + [4] active set with its documents and terms

	var (
		docprobs  []float64
		termprobs []float64
	)

	for _, r := range gen.FirstN(p.Ranked, l.TopicLimit) {
		docs := ds.Docs(run, r.TopicID)
		terms := ds.Terms(run, r.TopicID)
		for _, d := range docs {
			docprobs = append(docprobs, d.TopDocProb)
		}
		for _, t := range terms {
			termprobs = append(termprobs, t.TopProb)
		}
		p.Active = append(p.Active, ActiveTopic{
			RankedTopic: r,
			Color:       r.Rank % l.PaletteSize,
			Docs:        gen.FirstN(docs, l.TextLimit),
			Terms:       gen.FirstN(terms, l.TokenLimit),
		})
	}

	// [5] probability domains over the full lists of the active topics

	p.MaxTopicProb = maxof(docprobs)
	p.MaxTokenProb = maxof(termprobs)
	p.DocScale = NewLinearScale(p.MaxTopicProb)
	p.TermScale = NewLinearScale(p.MaxTokenProb)

	// [6] shared terms

	p.Matrix = SharedTerms(p.Active, l.TokenLimit)

	// [7] radial overview over every topic

	p.Radial, p.TotalDocs = Radial(p.Ranked, len(p.Active), l.PaletteSize)

	// [8] histogram

	counts := make([]float64, len(p.Ranked))
	for i, r := range p.Ranked {
		counts[i] = float64(r.Count)
	}
	p.CountScale = NewLinearScale(maxof(counts))
	p.Bars = make([]Bar, len(p.Ranked))
	for i, r := range p.Ranked {
		p.Bars[i] = Bar{
			TopicID: r.TopicID,
			Count:   r.Count,
			Height:  p.CountScale.Map(float64(r.Count)),
			Active:  i < len(p.Active),
			Color:   -1,
		}
		if p.Bars[i].Active {
			p.Bars[i].Color = p.Active[i].Color
		}
	}

	// [9] metrics

	p.Metrics = ds.MetricsByRun[run]

	return p, nil
}

// TopicCounts - the run's count rows; without any, one count per topic from its document rows
func TopicCounts(ds *str.Dataset, run string) []str.TopicCount {
	if cc := ds.CountsByRun[run]; len(cc) > 0 {
		return cc
	}
	nest := ds.TopicsByRun[run]
	cc := make([]str.TopicCount, 0, nest.Len())
	for i := 0; i < nest.Len(); i++ {
		t := nest.Keys[i]
		cc = append(cc, str.TopicCount{RunID: run, TopicID: t, Count: len(nest.Get(t))})
	}
	return cc
}

func maxof(ff []float64) float64 {
	if len(ff) == 0 {
		return 0
	}
	return floats.Max(ff)
}
