//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

//
// NESTED GROUPINGS
//

// Nest - rows grouped under a key; Keys keeps first-seen order
type Nest[T any] struct {
	Keys   []string
	Groups map[string][]T
}

func NewNest[T any]() *Nest[T] {
	return &Nest[T]{Groups: make(map[string][]T)}
}

// Add - append a row to its group, registering the key if it is new
func (n *Nest[T]) Add(key string, row T) {
	if _, ok := n.Groups[key]; !ok {
		n.Keys = append(n.Keys, key)
	}
	n.Groups[key] = append(n.Groups[key], row)
}

// Get - the rows under key; nil if the key was never seen (or n is nil)
func (n *Nest[T]) Get(key string) []T {
	if n == nil {
		return nil
	}
	return n.Groups[key]
}

func (n *Nest[T]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Keys)
}

//
// THE DATASET
//

// Dataset - the read-only snapshot built once at load time
type Dataset struct {
	Source       string
	Runs         []string // distinct run ids in first-seen order of the topic-document source
	TopicsByRun  map[string]*Nest[TopicDoc]
	TermsByRun   map[string]*Nest[TopicTerm]
	CountsByRun  map[string][]TopicCount
	MetricsByRun map[string][]RunMetric
	Dropped      int // rows discarded during coercion
}

func NewDataset(src string) *Dataset {
	return &Dataset{
		Source:       src,
		TopicsByRun:  make(map[string]*Nest[TopicDoc]),
		TermsByRun:   make(map[string]*Nest[TopicTerm]),
		CountsByRun:  make(map[string][]TopicCount),
		MetricsByRun: make(map[string][]RunMetric),
	}
}

// IsEmpty - "no runs" is a valid state that renders as an empty panel
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Runs) == 0
}

// RunAt - the run id at position i of the run list
func (d *Dataset) RunAt(i int) (string, bool) {
	if d == nil || i < 0 || i >= len(d.Runs) {
		return "", false
	}
	return d.Runs[i], true
}

// Docs - ordered top documents for a topic in a run
func (d *Dataset) Docs(run, topic string) []TopicDoc {
	return d.TopicsByRun[run].Get(topic)
}

// Terms - ordered top terms for a topic in a run
func (d *Dataset) Terms(run, topic string) []TopicTerm {
	return d.TermsByRun[run].Get(topic)
}
