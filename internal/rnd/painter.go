//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"errors"
	"fmt"
	"sync"

	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	Msg = mm.NewMessageMakerWithDefaults()
	nf  = message.NewPrinter(language.English)
)

// Painter - draws the chart primitives of a panel; scales travel inside the panel, colours in the palette
type Painter interface {
	Histogram(p panel.Panel, pal Palette) (string, error)
	Radial(p panel.Panel, pal Palette) (string, error)
	DocTable(p panel.Panel, pal Palette) (string, error)
	TermTable(p panel.Panel, pal Palette) (string, error)
	Matrix(p panel.Panel, pal Palette) (string, error)
	Metrics(p panel.Panel) (string, error)
}

// Rendered - one painted panel
type Rendered struct {
	Side      string `json:"side"`
	Index     int    `json:"index"`
	RunID     string `json:"runid"`
	Summary   string `json:"summary"`
	Histogram string `json:"histogram"`
	Radial    string `json:"radial"`
	Docs      string `json:"docs"`
	Terms     string `json:"terms"`
	Matrix    string `json:"matrix"`
	Metrics   string `json:"metrics"`
}

// Paint - run every draw call of pt over p
func Paint(pt Painter, p panel.Panel, pal Palette) (Rendered, error) {
	r := Rendered{
		Side:    p.State.Side,
		Index:   p.State.RunIndex,
		RunID:   p.RunID,
		Summary: Summary(p),
	}

	type call struct {
		into *string
		fn   func() (string, error)
	}

	calls := []call{
		{&r.Histogram, func() (string, error) { return pt.Histogram(p, pal) }},
		{&r.Radial, func() (string, error) { return pt.Radial(p, pal) }},
		{&r.Docs, func() (string, error) { return pt.DocTable(p, pal) }},
		{&r.Terms, func() (string, error) { return pt.TermTable(p, pal) }},
		{&r.Matrix, func() (string, error) { return pt.Matrix(p, pal) }},
		{&r.Metrics, func() (string, error) { return pt.Metrics(p) }},
	}

	for _, c := range calls {
		s, err := c.fn()
		if err != nil {
			return Rendered{}, fmt.Errorf("painting %s panel: %w", p.State.Side, err)
		}
		*c.into = s
	}
	return r, nil
}

// Summary - one line describing the panel
func Summary(p panel.Panel) string {
	const (
		EMPTY = "no runs loaded"
		LINE  = "run %s: %d topics, %d documents; showing %d topics"
	)
	if p.IsEmpty() {
		return EMPTY
	}
	return nf.Sprintf(LINE, p.RunID, len(p.Ranked), p.TotalDocs, len(p.Active))
}

//
// RUN SELECTED CALLBACKS
//

// ErrNoCallback - nothing is listening for selections on that side
var ErrNoCallback = errors.New("no run-selected callback for side")

// Selection - a user picked a run for one side
type Selection struct {
	Session string
	Side    string
	Index   int
}

// SelectFunc - what to do when a run is picked; must leave the old state alone on error
type SelectFunc func(sel Selection) (Rendered, error)

// Selector - the per-side "run selected" callbacks
type Selector struct {
	mtx sync.RWMutex
	fns map[string]SelectFunc
}

func NewSelector() *Selector {
	return &Selector{fns: make(map[string]SelectFunc)}
}

// Register - set (or replace) the callback for a side
func (s *Selector) Register(side string, fn SelectFunc) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.fns[side] = fn
}

// Fire - dispatch a selection to its side's callback
func (s *Selector) Fire(sel Selection) (Rendered, error) {
	s.mtx.RLock()
	fn, ok := s.fns[sel.Side]
	s.mtx.RUnlock()
	if !ok {
		return Rendered{}, fmt.Errorf("%w '%s'", ErrNoCallback, sel.Side)
	}
	return fn(sel)
}

// PanelOutput - the json the viewer sends for a rendered panel
func (r Rendered) PanelOutput(found string, js string) str.PanelOutputJSON {
	return str.PanelOutputJSON{
		Side:    r.Side,
		Index:   r.Index,
		RunID:   r.RunID,
		Summary: r.Summary,
		Found:   found,
		JS:      js,
	}
}
