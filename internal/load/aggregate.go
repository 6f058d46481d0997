//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"golang.org/x/exp/maps"
)

// Aggregate - coerce the four raw tables and nest them by run and topic
func Aggregate(src string, tt Tables, o ParseOptions) *str.Dataset {
	const (
		DEGRADE = "%v: treating '%s' as empty"
		NORUNS  = "%v: no usable rows in '%s'"
		ORPHAN  = "%d run(s) present in '%s' but absent from '%s' cannot be selected: %s"
	)

	warn := o.warn()
	ds := str.NewDataset(src)

	// [a] the primary table decides which runs exist

	docs, dropped, err := TopicDocs(tt.TopicDocs, o)
	ds.Dropped += dropped
	if err != nil {
		warn(fmt.Sprintf(DEGRADE, err, tt.TopicDocs.Name))
	}
	if len(docs) == 0 {
		warn(fmt.Sprintf(NORUNS, ErrEmptyDataset, tt.TopicDocs.Name))
		return ds
	}

	runs := make([]string, len(docs))
	for i := range docs {
		runs[i] = docs[i].RunID
	}
	ds.Runs = gen.FirstSeen(runs)

	for _, d := range docs {
		nest(ds.TopicsByRun, d.RunID).Add(d.TopicID, d)
	}
	for _, n := range ds.TopicsByRun {
		ds.Dropped += orderwithin(n, func(d str.TopicDoc) int { return d.TopDocOrder }, warn, tt.TopicDocs.Name)
	}

	// [b] terms

	terms, dropped, err := TopicTerms(tt.TopicTerms, o)
	ds.Dropped += dropped
	if err != nil {
		warn(fmt.Sprintf(DEGRADE, err, tt.TopicTerms.Name))
	}
	for _, t := range terms {
		nest(ds.TermsByRun, t.RunID).Add(t.TopicID, t)
	}
	for _, n := range ds.TermsByRun {
		ds.Dropped += orderwithin(n, func(t str.TopicTerm) int { return t.TopTermOrder }, warn, tt.TopicTerms.Name)
	}

	// [c] counts: pre-aggregated, but a repeated (run, topic) is summed rather than lost

	counts, dropped, err := TopicCounts(tt.TopicCounts, o)
	ds.Dropped += dropped
	if err != nil {
		warn(fmt.Sprintf(DEGRADE, err, tt.TopicCounts.Name))
	}
	ds.CountsByRun = groupcounts(counts)

	// [d] metrics stay in file order: the positional comparison depends on it

	metrics, dropped, err := RunMetrics(tt.RunMetrics, o)
	ds.Dropped += dropped
	if err != nil {
		warn(fmt.Sprintf(DEGRADE, err, tt.RunMetrics.Name))
	}
	for _, m := range metrics {
		ds.MetricsByRun[m.RunID] = append(ds.MetricsByRun[m.RunID], m)
	}

	// [e] say so if the other tables know about runs the primary table does not

	for _, other := range []struct {
		name string
		keys []string
	}{
		{tt.TopicTerms.Name, maps.Keys(ds.TermsByRun)},
		{tt.TopicCounts.Name, maps.Keys(ds.CountsByRun)},
		{tt.RunMetrics.Name, maps.Keys(ds.MetricsByRun)},
	} {
		orphans := gen.SetSubtraction(other.keys, ds.Runs)
		if len(orphans) > 0 {
			sort.Strings(orphans)
			Msg.NOTE(fmt.Sprintf(ORPHAN, len(orphans), other.name, tt.TopicDocs.Name, strings.Join(orphans, ", ")))
		}
	}

	return ds
}

func nest[T any](m map[string]*str.Nest[T], run string) *str.Nest[T] {
	n, ok := m[run]
	if !ok {
		n = str.NewNest[T]()
		m[run] = n
	}
	return n
}

// orderwithin - sort every group by its order column; a repeated order keeps the first row seen
func orderwithin[T any](n *str.Nest[T], order func(T) int, warn func(string), tb string) int {
	const (
		DUPE = "skipping row: %s: duplicate order %d in topic '%s'"
	)
	dropped := 0
	for _, k := range n.Keys {
		rows := n.Groups[k]
		sort.SliceStable(rows, func(i, j int) bool { return order(rows[i]) < order(rows[j]) })

		kept := rows[:0]
		for i, r := range rows {
			if i > 0 && order(r) == order(kept[len(kept)-1]) {
				dropped++
				warn(fmt.Sprintf(DUPE, tb, order(r), k))
				continue
			}
			kept = append(kept, r)
		}
		n.Groups[k] = kept
	}
	return dropped
}

// groupcounts - run -> counts, topics in first-seen order, repeats summed
func groupcounts(counts []str.TopicCount) map[string][]str.TopicCount {
	out := make(map[string][]str.TopicCount)
	where := make(map[string]map[string]int)
	for _, c := range counts {
		if _, ok := where[c.RunID]; !ok {
			where[c.RunID] = make(map[string]int)
		}
		if i, seen := where[c.RunID][c.TopicID]; seen {
			out[c.RunID][i].Count += c.Count
			continue
		}
		where[c.RunID][c.TopicID] = len(out[c.RunID])
		out[c.RunID] = append(out[c.RunID], c)
	}
	return out
}

// IsDegraded - a table-level problem that was absorbed rather than returned
func IsDegraded(err error) bool {
	return errors.Is(err, ErrMissingColumn) || errors.Is(err, ErrTableNotFound)
}
