//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestThreshold(t *testing.T) {
	var buf bytes.Buffer
	m := NewMessageMakerTo(&buf, "test", "TST", "0", MSGWARN)
	m.SetBW(true)

	m.WARN("shown")
	m.NOTE("hidden")
	m.EC(nil)
	m.EC(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "[TST] shown") || strings.Contains(out, "hidden") || !strings.Contains(out, "boom") {
		t.Fatalf("output = %q", out)
	}
}

func TestColorTags(t *testing.T) {
	m := NewMessageMakerTo(&bytes.Buffer{}, "test", "TST", "0", MSGTMI)
	m.Win = false
	if got := m.Color("C4green C0"); !strings.Contains(got, GREEN) {
		t.Fatalf("Color = %q", got)
	}
	m.SetBW(true)
	if got := m.ColStyle("S1C4bold green S0C0"); got != "bold green " {
		t.Fatalf("black and white should strip tags: %q", got)
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	m := NewMessageMakerTo(&buf, "test", "TST", "0", MSGTMI)
	m.SetBW(true)
	start := time.Now()
	m.Timer("A1", "done", start, start)
	if !strings.Contains(buf.String(), "[A1: ") || !strings.Contains(buf.String(), "done") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestConfigureAll(t *testing.T) {
	m := NewMessageMakerWithDefaults()
	ConfigureAll(MSGTMI, true)
	if m.LLvl != MSGTMI || !m.BW {
		t.Fatalf("maker not reconfigured: %d %v", m.LLvl, m.BW)
	}
}

func TestPathInfoHub(t *testing.T) {
	go PathInfoHub()
	m := NewMessageMakerTo(&bytes.Buffer{}, "test", "TST", "0", MSGCRIT)
	m.LogPaths("RtPanel()")
	m.LogPaths("RtPanel()")

	// updates are buffered: ask until both have been counted
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r := PIReply{Request: true, Response: make(chan map[string]int)}
		PIRequest <- r
		if (<-r.Response)["RtPanel()"] == 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("path counts never arrived")
}
