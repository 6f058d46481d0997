//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func dataset() *str.Dataset {
	ds := str.NewDataset("csv:test")
	ds.Runs = []string{"r0", "r1", "r2"}
	for _, run := range ds.Runs {
		docs := str.NewNest[str.TopicDoc]()
		docs.Add("1", str.TopicDoc{RunID: run, TopicID: "1", TopDoc: "Hom. Il.", TopDocOrder: 1, TopDocProb: 0.5})
		ds.TopicsByRun[run] = docs
		ds.CountsByRun[run] = []str.TopicCount{{RunID: run, TopicID: "1", Count: 4}}
	}
	ds.MetricsByRun["r0"] = []str.RunMetric{{RunID: "r0", Metric: "m", MetricScore: 0.5}, {RunID: "r0", Metric: "n", MetricScore: 0.3}}
	ds.MetricsByRun["r1"] = []str.RunMetric{{RunID: "r1", Metric: "m", MetricScore: 0.4}, {RunID: "r1", Metric: "n", MetricScore: 0.4}}
	ds.MetricsByRun["r2"] = []str.RunMetric{{RunID: "r2", Metric: "n", MetricScore: 0.4}, {RunID: "r2", Metric: "m", MetricScore: 0.4}}
	return ds
}

type client struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func newClient(t *testing.T, ds *str.Dataset) (*client, *Viewer) {
	cfg := str.CurrentConfiguration{LeftRun: 0, RightRun: 1, HostIP: vv.SERVEDFROMHOST, HostPort: vv.SERVEDFROMPORT}
	v := NewViewer(ds, cfg, vlt.MakeSessionVault())
	return &client{t: t, e: v.BuildEchoServer()}, v
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == vlt.COOKIENAME {
			c.cookie = ck
		}
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("bad json %q: %v", rec.Body.String(), err)
	}
}

func (c *client) session() SessionJSON {
	var s SessionJSON
	decode(c.t, c.get("/get/json/session"), &s)
	return s
}

func TestRuns(t *testing.T) {
	c, _ := newClient(t, dataset())
	rec := c.get("/get/json/runs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var out RunsJSON
	decode(t, rec, &out)
	if strings.Join(out.Runs, ",") != "r0,r1,r2" || out.Source != "csv:test" {
		t.Fatalf("runs = %+v", out)
	}
}

func TestSelectPanel(t *testing.T) {
	c, _ := newClient(t, dataset())

	if s := c.session(); s.Left != 0 || s.Right != 1 {
		t.Fatalf("default session = %+v", s)
	}

	rec := c.get("/panel/left/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out str.PanelOutputJSON
	decode(t, rec, &out)
	if out.RunID != "r2" || out.Side != str.LEFT || !strings.Contains(out.JS, "echarts") || !strings.Contains(out.Found, "Hom. Il.") {
		t.Fatalf("panel = %+v", out)
	}

	if s := c.session(); s.Left != 2 || s.Right != 1 {
		t.Fatalf("session after select = %+v", s)
	}
}

func TestBadIndexLeavesStateAlone(t *testing.T) {
	c, _ := newClient(t, dataset())
	c.get("/panel/right/2")

	for _, path := range []string{"/panel/right/5", "/panel/right/-1", "/panel/right/two"} {
		rec := c.get(path)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		var e str.ErrorOutputJSON
		decode(t, rec, &e)
		if e.Error == "" {
			t.Fatalf("%s: no error message", path)
		}
	}

	if s := c.session(); s.Right != 2 {
		t.Fatalf("failed selections should not move the panel: %+v", s)
	}
}

func TestUnknownSide(t *testing.T) {
	c, _ := newClient(t, dataset())
	if rec := c.get("/panel/middle/0"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestCompare(t *testing.T) {
	c, _ := newClient(t, dataset())

	rec := c.get("/compare")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out str.CompareOutputJSON
	decode(t, rec, &out)
	if math.Abs(out.Mean-0.1) > 1e-9 || out.Left != "r0" || out.Right != "r1" {
		t.Fatalf("compare = %+v", out)
	}

	// r2 lists the same metrics in another order
	c.get("/panel/right/2")
	if rec = c.get("/compare"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("positional with reordered metrics: status %d", rec.Code)
	}
	decode(t, rec, &out)
	if out.Error == "" || out.Right != "r2" {
		t.Fatalf("compare error = %+v", out)
	}

	if rec = c.get("/compare?mode=matched"); rec.Code != http.StatusOK {
		t.Fatalf("matched: status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEmptyDataset(t *testing.T) {
	c, _ := newClient(t, str.NewDataset("csv:empty"))

	if rec := c.get("/"); rec.Code != http.StatusOK {
		t.Fatalf("frontpage: status %d", rec.Code)
	}
	rec := c.get("/panel/left/0")
	if rec.Code != http.StatusOK {
		t.Fatalf("panel on an empty dataset: status %d", rec.Code)
	}
	var out str.PanelOutputJSON
	decode(t, rec, &out)
	if out.RunID != "" {
		t.Fatalf("panel = %+v", out)
	}
	if rec = c.get("/compare"); rec.Code != http.StatusBadRequest {
		t.Fatalf("compare on an empty dataset: status %d", rec.Code)
	}
}

func TestEmptyDatasetKeepsSessionIndex(t *testing.T) {
	c, _ := newClient(t, str.NewDataset("csv:empty"))

	for _, path := range []string{"/panel/left/5", "/panel/right/9"} {
		rec := c.get(path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		var out str.PanelOutputJSON
		decode(t, rec, &out)
		if out.RunID != "" {
			t.Fatalf("%s: panel = %+v", path, out)
		}
	}

	if s := c.session(); s.Left != 0 || s.Right != 1 {
		t.Fatalf("an empty dataset should not store the requested indices: %+v", s)
	}
}

func TestFrontpage(t *testing.T) {
	c, _ := newClient(t, dataset())
	rec := c.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"r0", "r2", vv.MYNAME} {
		if !strings.Contains(body, want) {
			t.Fatalf("frontpage lacks %q", want)
		}
	}
	if c.cookie == nil {
		t.Fatal("no session cookie was set")
	}
}

func TestWebsocketSelection(t *testing.T) {
	_, v := newClient(t, dataset())
	srv := httptest.NewServer(v.BuildEchoServer())
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	send := func(msg string) map[string]any {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatal(err)
		}
		_, b, err := ws.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		out := map[string]any{}
		if err := json.Unmarshal(b, &out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	if out := send(`{"side":"right","index":2}`); out["runid"] != "r2" {
		t.Fatalf("reply = %v", out)
	}
	if out := send(`{"side":"right","index":9}`); out["error"] == nil {
		t.Fatalf("bad index should come back as an error: %v", out)
	}
	if out := send(`not json`); out["error"] == nil {
		t.Fatalf("malformed selection should come back as an error: %v", out)
	}
}
