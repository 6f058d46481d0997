//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"context"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
)

// the four logical tables every source has to provide
const (
	TOPICDOCS   = "topicdocs"
	TOPICTERMS  = "topicterms"
	TOPICCOUNTS = "topiccounts"
	RUNMETRICS  = "runmetrics"
)

// AllTables - fetch order is irrelevant: the loader asks for all four at once
var AllTables = []string{TOPICDOCS, TOPICTERMS, TOPICCOUNTS, RUNMETRICS}

// Source - something that can hand over a raw table by logical name
type Source interface {
	Fetch(ctx context.Context, table string) (str.Table, error)
	Name() string
}

// Tables - the four raw tables, fetched and joined
type Tables struct {
	TopicDocs   str.Table
	TopicTerms  str.Table
	TopicCounts str.Table
	RunMetrics  str.Table
}

func (t *Tables) set(name string, tb str.Table) {
	switch name {
	case TOPICDOCS:
		t.TopicDocs = tb
	case TOPICTERMS:
		t.TopicTerms = tb
	case TOPICCOUNTS:
		t.TopicCounts = tb
	case RUNMETRICS:
		t.RunMetrics = tb
	}
}
