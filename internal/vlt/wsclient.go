//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"errors"
	"fmt"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

//
// WEBSOCKET INFRASTRUCTURE
//

// WSSelection - what the browser sends when a dropdown changes: {"side":"left","index":1}
type WSSelection struct {
	Side  string `json:"side"`
	Index int    `json:"index"`
}

// WSClient - one open websocket belonging to one session
type WSClient struct {
	ID   string
	Conn *websocket.Conn
}

// WSMessageLoop - read selections, answer each with whatever handle returns; exits when the client goes away
func (c *WSClient) WSMessageLoop(handle func(sel WSSelection) any) {
	const (
		GONE = `WSClient.WSMessageLoop(): %s disconnected`
		FAIL = `WSClient.WSMessageLoop(): %s: %s`
		BAD  = "malformed selection: %v"
	)

	c.Conn.SetReadLimit(vv.WSREADLIMIT)

	for {
		_, m, err := c.Conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) || websocket.IsUnexpectedCloseError(err) {
				Msg.TMI(fmt.Sprintf(GONE, c.ID))
			} else {
				Msg.FYI(fmt.Sprintf(FAIL, c.ID, err.Error()))
			}
			return
		}

		var reply any
		var sel WSSelection
		if e := json.Unmarshal(m, &sel); e != nil {
			reply = str.ErrorOutputJSON{Error: fmt.Sprintf(BAD, e)}
		} else {
			reply = handle(sel)
		}

		js, e := json.Marshal(reply)
		if e != nil {
			Msg.EC(e)
			continue
		}
		if e = c.Conn.WriteMessage(websocket.TextMessage, js); e != nil {
			Msg.FYI(fmt.Sprintf(FAIL, c.ID, e.Error()))
			return
		}
	}
}
