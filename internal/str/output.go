//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// PanelOutputJSON - what the viewer sends back when a panel is (re)rendered
type PanelOutputJSON struct {
	Side    string `json:"side"`
	Index   int    `json:"index"`
	RunID   string `json:"runid"`
	Summary string `json:"summary"`
	Found   string `json:"found"`
	JS      string `json:"js"`
}

// CompareOutputJSON - the difference metric between the two selected runs
type CompareOutputJSON struct {
	Left    string             `json:"left"`
	Right   string             `json:"right"`
	Mode    string             `json:"mode"`
	Mean    float64            `json:"mean"`
	PerPair map[string]float64 `json:"perpair"`
	Error   string             `json:"error,omitempty"`
}

// ErrorOutputJSON - a usage error reported to the client
type ErrorOutputJSON struct {
	Error string `json:"error"`
}
