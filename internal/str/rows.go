//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// TopicDoc - one row of topics-by-texts.csv
type TopicDoc struct {
	RunID       string  `json:"run_id"`
	TopicID     string  `json:"topic_id"`
	TopDoc      string  `json:"top_doc"`
	TopDocOrder int     `json:"top_doc_order"`
	TopDocProb  float64 `json:"top_doc_prob"`
}

// TopicTerm - one row of words-by-topics.csv
type TopicTerm struct {
	RunID        string  `json:"run_id"`
	TopicID      string  `json:"topic_id"`
	TopTerm      string  `json:"top_term"`
	TopTermOrder int     `json:"top_term_order"`
	TopProb      float64 `json:"top_prob"`
}

// TopicCount - one row of topics-by-count.csv
type TopicCount struct {
	RunID   string `json:"run_id"`
	TopicID string `json:"topic_id"`
	Count   int    `json:"count"`
}

// RunMetric - one row of runs_sample.csv
type RunMetric struct {
	RunID       string  `json:"run_id"`
	Metric      string  `json:"metric"`
	MetricScore float64 `json:"metric_score"`
	ActionType  string  `json:"action_type"`
}

// Table - a raw source table: a header row and the records under it
type Table struct {
	Name    string
	Header  []string
	Records [][]string
}

// Column - position of a named column in the header; -1 if absent
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}
