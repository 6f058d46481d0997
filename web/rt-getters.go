//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/labstack/echo/v4"
)

// RunsJSON - the run list in selection order
type RunsJSON struct {
	Source  string   `json:"source"`
	Runs    []string `json:"runs"`
	Dropped int      `json:"dropped"`
}

// SessionJSON - which run each side currently shows
type SessionJSON struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// RtGetJSRuns - "u: /get/json/runs"
func (v *Viewer) RtGetJSRuns(c echo.Context) error {
	Msg.LogPaths("RtGetJSRuns()")
	out := RunsJSON{Runs: []string{}}
	if v.Data != nil {
		out.Source = v.Data.Source
		out.Dropped = v.Data.Dropped
		if len(v.Data.Runs) > 0 {
			out.Runs = v.Data.Runs
		}
	}
	return gen.JSONresponse(c, out)
}

// RtGetJSSession - "u: /get/json/session"
func (v *Viewer) RtGetJSSession(c echo.Context) error {
	Msg.LogPaths("RtGetJSSession()")
	user := vlt.ReadUUIDCookie(c, v.Sessions)
	s := v.Sessions.GetSess(user)
	return gen.JSONresponse(c, SessionJSON{Left: s.Left.RunIndex, Right: s.Right.RunIndex})
}
