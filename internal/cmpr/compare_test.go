//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cmpr

import (
	"errors"
	"math"
	"testing"

	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
)

func metrics(run string, kv ...any) []str.RunMetric {
	var mm []str.RunMetric
	for i := 0; i+1 < len(kv); i += 2 {
		mm = append(mm, str.RunMetric{RunID: run, Metric: kv[i].(string), MetricScore: kv[i+1].(float64)})
	}
	return mm
}

func twoRuns() *str.Dataset {
	ds := str.NewDataset("test")
	ds.Runs = []string{"r0", "r1", "r2"}
	ds.MetricsByRun["r0"] = metrics("r0", "coherence", 0.5, "perplexity", 0.3, "diversity", 0.2)
	ds.MetricsByRun["r1"] = metrics("r1", "coherence", 0.4, "perplexity", 0.4, "diversity", 0.2)
	ds.MetricsByRun["r2"] = metrics("r2", "diversity", 0.2, "coherence", 0.4, "perplexity", 0.4)
	return ds
}

func TestPositionalMean(t *testing.T) {
	res, err := Runs(twoRuns(), 0, 1, Positional)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Mean-0.0667) > 1e-4 {
		t.Fatalf("mean = %v, want ~0.0667", res.Mean)
	}
	if res.LeftRun != "r0" || res.RightRun != "r1" || res.Mode != POSITIONAL {
		t.Fatalf("result = %+v", res)
	}
	if d := res.PerPair()["diversity"]; d != 0 {
		t.Fatalf("diversity diff = %v", d)
	}
}

func TestPositionalNameMismatch(t *testing.T) {
	_, err := Runs(twoRuns(), 0, 2, nil)
	if !errors.Is(err, ErrAlignment) {
		t.Fatalf("err = %v", err)
	}
	var ae *AlignmentError
	if !errors.As(err, &ae) || ae.Mode != POSITIONAL {
		t.Fatalf("err = %#v", err)
	}
}

func TestMatchedIgnoresOrder(t *testing.T) {
	res, err := Runs(twoRuns(), 0, 2, ByMode(MATCHED))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Mean-0.0667) > 1e-4 {
		t.Fatalf("mean = %v", res.Mean)
	}
	if res.Pairs[0].Metric != "coherence" {
		t.Fatalf("pairs should follow the left order: %+v", res.Pairs)
	}
}

func TestAlignmentFailures(t *testing.T) {
	cases := []struct {
		name        string
		how         Pairing
		left, right []str.RunMetric
	}{
		{"length", Positional, metrics("a", "m", 1.0), metrics("b", "m", 1.0, "n", 2.0)},
		{"empty", Positional, nil, nil},
		{"matched empty", Matched, nil, nil},
		{"matched dupe", Matched, metrics("a", "m", 1.0, "m", 2.0), metrics("b", "m", 1.0)},
		{"matched left only", Matched, metrics("a", "m", 1.0, "n", 1.0), metrics("b", "m", 1.0)},
		{"matched right only", Matched, metrics("a", "m", 1.0), metrics("b", "m", 1.0, "n", 1.0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := c.how(c.left, c.right); !errors.Is(err, ErrAlignment) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestRunsBadIndex(t *testing.T) {
	_, err := Runs(twoRuns(), 0, 7, Positional)
	if !errors.Is(err, panel.ErrInvalidRunIndex) {
		t.Fatalf("err = %v", err)
	}
	if _, err = Runs(str.NewDataset("empty"), 0, 1, Positional); !errors.Is(err, panel.ErrInvalidRunIndex) {
		t.Fatalf("empty dataset: %v", err)
	}
}

func TestSameRunIsZero(t *testing.T) {
	res, err := Runs(twoRuns(), 1, 1, Positional)
	if err != nil || res.Mean != 0 {
		t.Fatalf("mean %v err %v", res.Mean, err)
	}
}
