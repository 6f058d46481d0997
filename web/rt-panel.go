//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/e-gun/HipparchiaTopicRuns/internal/cmpr"
	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/rnd"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtPanel - a run was picked for one side: re-render that side
func (v *Viewer) RtPanel(c echo.Context) error {
	const (
		BADIDX = "'%s' is not a run index"
	)

	Msg.LogPaths("RtPanel()")
	user := vlt.ReadUUIDCookie(c, v.Sessions)

	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		return gen.JSONerror(c, http.StatusBadRequest, fmt.Errorf(BADIDX, c.Param("idx")))
	}

	r, err := v.Selector.Fire(rnd.Selection{Session: user, Side: c.Param("side"), Index: idx})
	if err != nil {
		return gen.JSONerror(c, selectionstatus(err), err)
	}
	return gen.JSONresponse(c, paneljson(r))
}

// RtCompare - the difference metric between the session's two current runs
func (v *Viewer) RtCompare(c echo.Context) error {
	Msg.LogPaths("RtCompare()")
	user := vlt.ReadUUIDCookie(c, v.Sessions)
	s := v.Sessions.GetSess(user)

	mode := c.QueryParam("mode")
	res, err := cmpr.Runs(v.Data, s.Left.RunIndex, s.Right.RunIndex, cmpr.ByMode(mode))
	if err != nil {
		out := str.CompareOutputJSON{Mode: mode, Error: err.Error()}
		if l, ok := v.Data.RunAt(s.Left.RunIndex); ok {
			out.Left = l
		}
		if r, ok := v.Data.RunAt(s.Right.RunIndex); ok {
			out.Right = r
		}
		return c.JSON(selectionstatus(err), out)
	}

	return gen.JSONresponse(c, comparejson(res))
}

// selectionstatus - usage errors are the client's fault; anything else is ours
func selectionstatus(err error) int {
	switch {
	case errors.Is(err, cmpr.ErrAlignment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, panel.ErrInvalidRunIndex), errors.Is(err, rnd.ErrNoCallback):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// paneljson - tables go into "found", charts (html+js) into "js"
func paneljson(r rnd.Rendered) str.PanelOutputJSON {
	found := r.Docs + r.Terms + r.Metrics
	js := r.Histogram + r.Radial + r.Matrix
	return r.PanelOutput(found, js)
}

func comparejson(res cmpr.Result) str.CompareOutputJSON {
	return str.CompareOutputJSON{
		Left:    res.LeftRun,
		Right:   res.RightRun,
		Mode:    res.Mode,
		Mean:    res.Mean,
		PerPair: res.PerPair(),
	}
}
