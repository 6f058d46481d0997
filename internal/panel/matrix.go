//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package panel

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Matrix - the shared-term grid: one row per term, one column per active topic
type Matrix struct {
	Terms  []string
	Topics []string
	Probs  *mat.Dense // nil when either dimension is zero
	Max    float64
	Marker LinearScale
}

// Dims - rows (terms) and columns (topics)
func (m Matrix) Dims() (int, int) {
	return len(m.Terms), len(m.Topics)
}

// At - probability of term r under topic c; zero outside the grid
func (m Matrix) At(r, c int) float64 {
	if m.Probs == nil || r < 0 || c < 0 || r >= len(m.Terms) || c >= len(m.Topics) {
		return 0
	}
	return m.Probs.At(r, c)
}

// SharedTerms - pool the active topics' term lists, keep the tokenlimit terms that recur across
// the most topics, and look each one up in every topic
func SharedTerms(active []ActiveTopic, tokenlimit int) Matrix {
	// [a] cross-topic frequency; first-seen position is the tie-break

	type termfreq struct {
		term  string
		freq  int
		first int
	}

	var (
		seen   = make(map[string]int)
		pooled []termfreq
	)

	for _, a := range active {
		// a term repeated inside one topic still counts once for that topic
		intopic := make(map[string]struct{})
		for _, t := range a.Terms {
			if _, dup := intopic[t.TopTerm]; dup {
				continue
			}
			intopic[t.TopTerm] = struct{}{}
			if i, ok := seen[t.TopTerm]; ok {
				pooled[i].freq++
				continue
			}
			seen[t.TopTerm] = len(pooled)
			pooled = append(pooled, termfreq{term: t.TopTerm, freq: 1, first: len(pooled)})
		}
	}

	sort.SliceStable(pooled, func(i, j int) bool {
		if pooled[i].freq != pooled[j].freq {
			return pooled[i].freq > pooled[j].freq
		}
		return pooled[i].first < pooled[j].first
	})

	if len(pooled) > tokenlimit {
		pooled = pooled[:tokenlimit]
	}

	m := Matrix{
		Terms:  make([]string, len(pooled)),
		Topics: make([]string, len(active)),
	}
	for i := range pooled {
		m.Terms[i] = pooled[i].term
	}
	for j := range active {
		m.Topics[j] = active[j].TopicID
	}

	// [b] dense lookup; absent pairs stay 0

	if len(m.Terms) == 0 || len(m.Topics) == 0 {
		m.Marker = NewLinearScale(0)
		return m
	}

	m.Probs = mat.NewDense(len(m.Terms), len(m.Topics), nil)
	row := make(map[string]int, len(m.Terms))
	for i, t := range m.Terms {
		row[t] = i
	}
	for j, a := range active {
		for _, t := range a.Terms {
			i, ok := row[t.TopTerm]
			if !ok || m.Probs.At(i, j) != 0 {
				continue
			}
			m.Probs.Set(i, j, t.TopProb)
		}
	}

	m.Max = mat.Max(m.Probs)
	m.Marker = NewLinearScale(m.Max)
	return m
}
