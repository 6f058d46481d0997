//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/rnd"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/labstack/echo/v4"
	"golang.org/x/exp/maps"
)

// RunOption - one entry of a run dropdown
type RunOption struct {
	Index    int
	RunID    string
	Selected bool
}

// RtFrontpage - send the html for "/"
func (v *Viewer) RtFrontpage(c echo.Context) error {
	const (
		UPSTR    = "[%v] %s uptime: %v [%s]"
		PADDING  = " ----------------- "
		STATTMPL = "%s: %d"
		SPACER   = "    "
		NORUNS   = "no runs were found in %s"
	)

	Msg.LogPaths("RtFrontpage()")

	// will set if missing
	user := vlt.ReadUUIDCookie(c, v.Sessions)
	s := v.Sessions.GetSess(user)

	env := fmt.Sprintf("%s: %s - %s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// t() will give the uptime
	var mem runtime.MemStats

	t := func(up time.Duration) string {
		runtime.ReadMemStats(&mem)
		heap := fmt.Sprintf("%dM", mem.HeapAlloc/1024/1024)
		tick := fmt.Sprintf(UPSTR, time.Now().Format(time.TimeOnly), vv.SHORTNAME, up.Truncate(time.Minute), heap)
		return PADDING + tick + PADDING
	}

	// svd() will report what requests have been made
	svd := func() string {
		responder := mm.PIReply{Request: true, Response: make(chan map[string]int)}
		mm.PIRequest <- responder
		ctr := <-responder.Response

		keys := maps.Keys(ctr)
		keys = gen.SetSubtraction(keys, []string{"RtFrontpage()"})
		sort.Strings(keys)

		var pairs []string
		for k := range keys {
			this := strings.TrimPrefix(keys[k], "Rt")
			this = strings.TrimSuffix(this, "()")
			pairs = append(pairs, fmt.Sprintf(SPACER+STATTMPL, this, ctr[keys[k]]))
		}
		return strings.Join(pairs, "\n")
	}

	options := func(sel int) []RunOption {
		var oo []RunOption
		if v.Data == nil {
			return oo
		}
		for i, r := range v.Data.Runs {
			oo = append(oo, RunOption{Index: i, RunID: r, Selected: i == sel})
		}
		return oo
	}

	empty := ""
	if v.Data.IsEmpty() {
		src := ""
		if v.Data != nil {
			src = v.Data.Source
		}
		empty = fmt.Sprintf(NORUNS, src)
	}

	subs := map[string]interface{}{
		"title":    vv.MYNAME,
		"version":  vv.VERSION,
		"env":      env,
		"ticker":   t(time.Since(vv.LaunchTime)) + "\n\n" + svd(),
		"jsassets": rnd.ChartAssets(),
		"css":      template.CSS(rnd.PanelCSS),
		"left":     options(s.Left.RunIndex),
		"right":    options(s.Right.RunIndex),
		"leftidx":  s.Left.RunIndex,
		"rightidx": s.Right.RunIndex,
		"empty":    empty,
	}

	f, e := efs.ReadFile("emb/frontpage.html")
	if e != nil {
		return gen.JSONerror(c, http.StatusInternalServerError, e)
	}

	tmpl, e := template.New("fp").Parse(string(f))
	if e != nil {
		return gen.JSONerror(c, http.StatusInternalServerError, e)
	}

	var b bytes.Buffer
	if e = tmpl.Execute(&b, subs); e != nil {
		return gen.JSONerror(c, http.StatusInternalServerError, e)
	}

	return c.HTML(http.StatusOK, b.String())
}
