//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package panel

import (
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
)

// Limits - how much of a run a panel shows
type Limits struct {
	TopicLimit  int
	TokenLimit  int
	TextLimit   int
	PaletteSize int
}

func DefaultLimits() Limits {
	return Limits{
		TopicLimit:  vv.TOPICLIMIT,
		TokenLimit:  vv.TOKENLIMIT,
		TextLimit:   vv.TEXTLIMIT,
		PaletteSize: vv.PALETTESIZE,
	}
}

// Normalized - any non-positive limit falls back to its default
func (l Limits) Normalized() Limits {
	d := DefaultLimits()
	if l.TopicLimit <= 0 {
		l.TopicLimit = d.TopicLimit
	}
	if l.TokenLimit <= 0 {
		l.TokenLimit = d.TokenLimit
	}
	if l.TextLimit <= 0 {
		l.TextLimit = d.TextLimit
	}
	if l.PaletteSize <= 0 {
		l.PaletteSize = d.PaletteSize
	}
	return l
}

// LinearScale - maps the domain [Lo, Hi] onto [0, 1]
type LinearScale struct {
	Lo float64
	Hi float64
}

// NewLinearScale - domain [0, max]; a max of zero (or less) degenerates to [0, 1]
func NewLinearScale(max float64) LinearScale {
	if max <= 0 {
		return LinearScale{Lo: 0, Hi: 1}
	}
	return LinearScale{Lo: 0, Hi: max}
}

// Map - x scaled into [0, 1]; values outside the domain are clamped
func (s LinearScale) Map(x float64) float64 {
	span := s.Hi - s.Lo
	if span <= 0 {
		return 0
	}
	v := (x - s.Lo) / span
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
