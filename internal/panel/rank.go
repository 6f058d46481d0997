//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package panel

import (
	"sort"
	"strconv"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
)

// RankedTopic - a topic and its place in the count ordering
type RankedTopic struct {
	TopicID string
	Count   int
	Rank    int
}

// Rank - topics by count descending; equal counts fall back to topic id ascending
func Rank(counts []str.TopicCount) []RankedTopic {
	rr := make([]RankedTopic, len(counts))
	for i, c := range counts {
		rr[i] = RankedTopic{TopicID: c.TopicID, Count: c.Count}
	}

	sort.SliceStable(rr, func(i, j int) bool {
		if rr[i].Count != rr[j].Count {
			return rr[i].Count > rr[j].Count
		}
		return LessTopicID(rr[i].TopicID, rr[j].TopicID)
	})

	for i := range rr {
		rr[i].Rank = i
	}
	return rr
}

// LessTopicID - integer ids first and in numeric order ("2" < "10"); then the rest in plain string order
func LessTopicID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	aint, bint := aerr == nil, berr == nil
	switch {
	case aint && !bint:
		return true
	case !aint && bint:
		return false
	case aint && bint && ai != bi:
		return ai < bi
	}
	return a < b
}
