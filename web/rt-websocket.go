//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"net/http"
	"net/url"

	"github.com/e-gun/HipparchiaTopicRuns/internal/rnd"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var (
	Upgrader = websocket.Upgrader{CheckOrigin: sameorigin}
)

// sameorigin - only the viewer's own page may open the socket
func sameorigin(r *http.Request) bool {
	o := r.Header.Get("Origin")
	if o == "" {
		return true
	}
	u, err := url.Parse(o)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

//
// THE ROUTE
//

// RtWebsocket - the "run selected" channel: one selection in, one rendered panel (or error) out
func (v *Viewer) RtWebsocket(c echo.Context) error {
	const (
		FAILCON = "RtWebsocket(): ws connection failed"
	)

	Msg.LogPaths("RtWebsocket()")
	user := vlt.ReadUUIDCookie(c, v.Sessions)

	ws, err := Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		Msg.NOTE(FAILCON)
		return nil
	}
	defer ws.Close()

	client := &vlt.WSClient{ID: user, Conn: ws}
	client.WSMessageLoop(func(sel vlt.WSSelection) any {
		r, e := v.Selector.Fire(rnd.Selection{Session: user, Side: sel.Side, Index: sel.Index})
		if e != nil {
			return str.ErrorOutputJSON{Error: e.Error()}
		}
		return paneljson(r)
	})
	return nil
}
