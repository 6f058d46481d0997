//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/rnd"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	Msg = mm.NewMessageMakerWithDefaults()

	//go:embed emb
	efs embed.FS

	hubonce sync.Once
)

// Viewer - the loaded dataset plus everything needed to paint it for many sessions
type Viewer struct {
	Data     *str.Dataset
	Cfg      str.CurrentConfiguration
	Sessions *vlt.SessionVault
	Limits   panel.Limits
	Painter  rnd.Painter
	Palette  rnd.Palette
	Selector *rnd.Selector
}

// NewViewer - wire the per-side "run selected" callbacks to the session vault
func NewViewer(ds *str.Dataset, cfg str.CurrentConfiguration, sv *vlt.SessionVault) *Viewer {
	v := &Viewer{
		Data:     ds,
		Cfg:      cfg,
		Sessions: sv,
		Limits: panel.Limits{
			TopicLimit:  cfg.TopicLimit,
			TokenLimit:  cfg.TokenLimit,
			TextLimit:   cfg.TextLimit,
			PaletteSize: cfg.PaletteSize,
		}.Normalized(),
		Painter:  rnd.NewHTMLPainter(),
		Selector: rnd.NewSelector(),
	}
	v.Palette = rnd.NewPalette(v.Limits.PaletteSize, cfg.BlackAndWhite)
	sv.SetDefaults(cfg.LeftRun, cfg.RightRun)

	for _, side := range []string{str.LEFT, str.RIGHT} {
		v.Selector.Register(side, v.selectrun)
	}
	return v
}

// selectrun - validate by building the panel; only a panel that builds replaces the session's state
func (v *Viewer) selectrun(sel rnd.Selection) (rnd.Rendered, error) {
	var r rnd.Rendered
	ps := str.PanelState{Side: sel.Side, RunIndex: sel.Index}

	// there is nothing for an index to point at: draw the empty panel and keep the session as it is
	if v.Data.IsEmpty() {
		p, err := panel.Build(v.Data, ps, v.Limits)
		if err != nil {
			return r, err
		}
		return rnd.Paint(v.Painter, p, v.Palette)
	}

	_, err := v.Sessions.Update(sel.Session, ps, func(s str.ViewerSession) error {
		p, err := panel.Build(v.Data, ps, v.Limits)
		if err != nil {
			return err
		}
		r, err = rnd.Paint(v.Painter, p, v.Palette)
		return err
	})
	return r, err
}

// BuildEchoServer - middleware and routes; StartEchoServer() is this plus e.Start()
func (v *Viewer) BuildEchoServer() *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		last := ua[len(ua)-1]
		return buf.Write([]byte(last))
	}

	// the hub answers the frontpage ticker
	hubonce.Do(func() { go mm.PathInfoHub() })

	//
	// SETUP
	//

	e := echo.New()
	e.JSONSerializer = gen.GoJSONSerializer{}

	switch v.Cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECOND)))

	e.Use(middleware.Recover())

	if v.Cfg.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// ROUTES
	//

	// [a] frontpage ("rt-frontpage.go")

	e.GET("/", v.RtFrontpage)

	// [b] getters ("rt-getters.go")

	e.GET("/get/json/runs", v.RtGetJSRuns)
	e.GET("/get/json/session", v.RtGetJSSession)

	// [c] panels and comparison ("rt-panel.go")

	e.GET("/panel/:side/:idx", v.RtPanel) // "u: /panel/left/1"
	e.GET("/compare", v.RtCompare)       // "u: /compare?mode=matched"

	// [d] websocket ("rt-websocket.go")

	e.GET("/ws", v.RtWebsocket)

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true
	return e
}

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func (v *Viewer) StartEchoServer() error {
	e := v.BuildEchoServer()
	return e.Start(fmt.Sprintf("%s:%d", v.Cfg.HostIP, v.Cfg.HostPort))
}
