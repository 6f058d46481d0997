//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/HipparchiaTopicRuns/internal/cmpr"
	"github.com/e-gun/HipparchiaTopicRuns/internal/db"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/goccy/go-json"
)

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		vv.CSVTOPICDOCS: "run_id,topic_id,top_doc,top_doc_order,top_doc_prob\n" +
			"r0,1,Hom. Il.,1,0.6\nr0,2,Hes. Op.,1,0.3\nr1,1,Pl. Resp.,1,0.9\n",
		vv.CSVTOPICTERMS: "run_id,topic_id,top_term,top_term_order,top_prob\n" +
			"r0,1,μῆνις,1,0.2\nr0,2,ἔργον,1,0.1\nr1,1,πόλις,1,0.3\n",
		vv.CSVTOPICCOUNTS: "run_id,topic_id,count\nr0,1,50\nr0,2,30\nr1,1,20\n",
		vv.CSVRUNMETRICS: "run_id,metric,metric_score,action_type\n" +
			"r0,coherence,0.5,eval\nr0,perplexity,0.3,eval\nr1,perplexity,0.4,eval\nr1,coherence,0.4,eval\n",
	}
	for n, b := range files {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(b), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func fresh(t *testing.T, dir string) *str.CurrentConfiguration {
	t.Helper()
	Config = BuildDefaultConfig()
	Config.DataDir = dir
	Config.QuietStart = true
	return Config
}

func TestValidateConfig(t *testing.T) {
	c := BuildDefaultConfig()
	if err := ValidateConfig(c); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	c.Source = "redis"
	if ValidateConfig(c) == nil {
		t.Fatal("unknown source accepted")
	}
	c = BuildDefaultConfig()
	c.LeftRun = -1
	if ValidateConfig(c) == nil {
		t.Fatal("negative run index accepted")
	}
	c = BuildDefaultConfig()
	c.HostPort = 70000
	if ValidateConfig(c) == nil {
		t.Fatal("bad port accepted")
	}
}

func TestReport(t *testing.T) {
	cfg := fresh(t, fixture(t))
	ds, err := db.LoadAll(context.Background(), *cfg)
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	ff, err := Report(ds, cfg, cmpr.Matched, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(ff) != 4 {
		t.Fatalf("wrote %v", ff)
	}

	page, err := os.ReadFile(filepath.Join(out, REPORTHTML))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "Hom. Il.") || !strings.Contains(string(page), "0.1000") {
		t.Fatal("report page lacks the panels or the comparison")
	}

	for _, side := range []string{str.LEFT, str.RIGHT} {
		b, err := os.ReadFile(filepath.Join(out, side+"-radial.svg"))
		if err != nil {
			t.Fatal(err)
		}
		dec := xml.NewDecoder(bytes.NewReader(b))
		for {
			_, err = dec.Token()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				t.Fatalf("%s svg: %v", side, err)
			}
		}
	}

	var exp ReportExport
	js, err := os.ReadFile(filepath.Join(out, REPORTJSON))
	if err != nil {
		t.Fatal(err)
	}
	if err = json.Unmarshal(js, &exp); err != nil {
		t.Fatal(err)
	}
	if len(exp.Panels) != 2 || exp.Panels[0].RunID != "r0" || exp.Panels[1].RunID != "r1" {
		t.Fatalf("panels = %+v", exp.Panels)
	}
	if exp.Comparison == nil || exp.Comparison.Error != "" || exp.Comparison.Mode != cmpr.MATCHED {
		t.Fatalf("comparison = %+v", exp.Comparison)
	}
	if len(exp.Panels[0].Topics) != 2 || exp.Panels[0].Topics[0].TopicID != "1" {
		t.Fatalf("topics = %+v", exp.Panels[0].Topics)
	}
	if m := exp.Panels[0].Matrix; len(m.Probs) != len(m.Terms) {
		t.Fatalf("matrix = %+v", m)
	}
}

func TestReportKeepsGoingWhenRunsDiffer(t *testing.T) {
	cfg := fresh(t, fixture(t))
	ds, err := db.LoadAll(context.Background(), *cfg)
	if err != nil {
		t.Fatal(err)
	}
	// positional pairing fails: r1 lists its metrics in the other order
	if _, err = Report(ds, cfg, cmpr.Positional, t.TempDir()); err != nil {
		t.Fatalf("a failed comparison should not stop the report: %v", err)
	}
}

func TestReportBadIndex(t *testing.T) {
	cfg := fresh(t, fixture(t))
	cfg.RightRun = 9
	ds, err := db.LoadAll(context.Background(), *cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Report(ds, cfg, nil, t.TempDir()); err == nil {
		t.Fatal("expected an invalid run index")
	}
}

func TestTerminalPanels(t *testing.T) {
	cfg := fresh(t, fixture(t))
	ds, err := db.LoadAll(context.Background(), *cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := TerminalPanels(ds, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "== left: run r0") || !strings.Contains(s, "πόλις") {
		t.Fatalf("terminal output:\n%s", s)
	}
}

func TestSummarize(t *testing.T) {
	cfg := fresh(t, fixture(t))
	ds, err := db.LoadAll(context.Background(), *cfg)
	if err != nil {
		t.Fatal(err)
	}
	Msg.SetBW(true)
	s := Summarize(ds)
	if !strings.Contains(s, "2 runs") || !strings.Contains(s, "rows dropped") {
		t.Fatalf("summary = %q", s)
	}
}

func TestComparisonTable(t *testing.T) {
	res, err := cmpr.Matched(
		[]str.RunMetric{{Metric: "m", MetricScore: 0.5}},
		[]str.RunMetric{{Metric: "m", MetricScore: 0.25}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if s := ComparisonTable(res); !strings.Contains(s, "0.2500") {
		t.Fatalf("table:\n%s", s)
	}
}

func TestCompareCommandReadsEnvironment(t *testing.T) {
	dir := fixture(t)
	fresh(t, "")
	t.Setenv("HTR_TOPICLIMIT", "2")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare", "--matched", "--datadir", dir, "--quietstart"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if Config.TopicLimit != 2 || Config.DataDir != dir {
		t.Fatalf("config = %+v", Config)
	}
}

func TestCompareCommandFails(t *testing.T) {
	dir := fixture(t)
	fresh(t, "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare", "-d", dir, "-q"})
	if err := cmd.Execute(); !errors.Is(err, ErrRunsDiffer) {
		t.Fatalf("err = %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	dir := fixture(t)
	fresh(t, "")
	cf := filepath.Join(t.TempDir(), "conf.json")
	if err := os.WriteFile(cf, []byte(`{"DataDir": "`+dir+`", "LeftRun": 1, "RightRun": 0}`), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare", "--matched", "--config", cf, "-q"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if Config.LeftRun != 1 || Config.RightRun != 0 || Config.DataDir != dir {
		t.Fatalf("config = %+v", Config)
	}
}

func TestRootCommandsDoNotShareConfig(t *testing.T) {
	dir := fixture(t)
	fresh(t, "")

	first := NewRootCmd()
	first.SetArgs([]string{"compare", "--matched", "-d", dir, "-q"})
	if err := first.Execute(); err != nil {
		t.Fatal(err)
	}
	leftflag := first.PersistentFlags().Lookup("leftrun")

	fresh(t, "")
	t.Setenv("HTR_LEFTRUN", "1")
	t.Setenv("HTR_RIGHTRUN", "0")

	second := NewRootCmd()
	second.SetArgs([]string{"compare", "--matched", "-d", dir, "-q"})
	if err := second.Execute(); err != nil {
		t.Fatal(err)
	}
	if Config.LeftRun != 1 || Config.RightRun != 0 {
		t.Fatalf("config = %+v", Config)
	}
	if got := leftflag.Value.String(); got != "0" {
		t.Fatalf("running the second command rewrote the first one's flags: leftrun = %s", got)
	}
}
