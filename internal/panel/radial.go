//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package panel

import (
	"math"
)

// Arc - one topic's angular span of the radial overview, in radians from 0 to 2π
type Arc struct {
	TopicID string
	Count   int
	Start   float64
	End     float64
	Active  bool
	Color   int // palette index; -1 for the neutral colour
}

// Fraction - share of the circle
func (a Arc) Fraction() float64 {
	return (a.End - a.Start) / (2 * math.Pi)
}

// Radial - cumulative count proportions of every ranked topic laid around the circle; only the
// first nactive are coloured
func Radial(ranked []RankedTopic, nactive int, palettesize int) ([]Arc, int) {
	total := 0
	for _, r := range ranked {
		total += r.Count
	}

	angle := func(x int) float64 {
		if total == 0 {
			return 0
		}
		return float64(x) / float64(total) * 2 * math.Pi
	}

	arcs := make([]Arc, len(ranked))
	cum := 0
	for i, r := range ranked {
		arcs[i] = Arc{
			TopicID: r.TopicID,
			Count:   r.Count,
			Start:   angle(cum),
			End:     angle(cum + r.Count),
			Active:  i < nactive,
			Color:   -1,
		}
		if arcs[i].Active {
			arcs[i].Color = r.Rank % palettesize
		}
		cum += r.Count
	}
	return arcs, total
}
