//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	COOKIENAME = "ID"
	COOKIELIFE = 4800 * time.Hour
)

// ReadUUIDCookie - find the ID of the client; a new client gets a cookie and a default session
func ReadUUIDCookie(c echo.Context, sv *SessionVault) string {
	cookie, err := c.Cookie(COOKIENAME)
	if err != nil || cookie.Value == "" {
		id := WriteUUIDCookie(c)
		sv.InsertSess(sv.GetSess(id))
		return id
	}
	id := cookie.Value

	if !sv.IsInVault(id) {
		sv.InsertSess(sv.GetSess(id))
	}

	return id
}

// WriteUUIDCookie - set the ID of the client
func WriteUUIDCookie(c echo.Context) string {
	cookie := new(http.Cookie)
	cookie.Name = COOKIENAME
	cookie.Path = "/"
	cookie.Value = uuid.New().String()
	cookie.Expires = time.Now().Add(COOKIELIFE)
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteStrictMode
	c.SetCookie(cookie)
	Msg.TMI(fmt.Sprintf("WriteUUIDCookie() - new ID set: %s", cookie.Value))
	return cookie.Value
}
