//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cmpr

import (
	"errors"
	"fmt"
	"math"

	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"gonum.org/v1/gonum/stat"
)

const (
	POSITIONAL = "positional"
	MATCHED    = "matched"
)

// ErrAlignment - the two metric lists cannot be paired
var ErrAlignment = errors.New("metrics not aligned")

// AlignmentError - what went wrong with the pairing
type AlignmentError struct {
	Mode   string
	Reason string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%v (%s): %s", ErrAlignment, e.Mode, e.Reason)
}

func (e *AlignmentError) Unwrap() error { return ErrAlignment }

// Pair - one metric as scored by both runs
type Pair struct {
	Metric string
	Left   float64
	Right  float64
	Diff   float64
}

// Result - the mean absolute difference and the pairs behind it
type Result struct {
	LeftRun  string
	RightRun string
	Mode     string
	Pairs    []Pair
	Mean     float64
}

// PerPair - metric name -> absolute difference
func (r Result) PerPair() map[string]float64 {
	m := make(map[string]float64, len(r.Pairs))
	for _, p := range r.Pairs {
		m[p.Metric] = p.Diff
	}
	return m
}

// Pairing - a way of lining the two lists up
type Pairing func(left, right []str.RunMetric) (Result, error)

// ByMode - the named pairing; anything unrecognised is positional
func ByMode(mode string) Pairing {
	if mode == MATCHED {
		return Matched
	}
	return Positional
}

// Positional - pairs by position; the metric names have to agree at every position
func Positional(left, right []str.RunMetric) (Result, error) {
	const (
		LEN  = "left has %d metrics, right has %d"
		NONE = "no metrics to pair"
		NAME = "position %d: left is '%s', right is '%s'"
	)

	misaligned := func(f string, a ...any) (Result, error) {
		return Result{}, &AlignmentError{Mode: POSITIONAL, Reason: fmt.Sprintf(f, a...)}
	}

	if len(left) != len(right) {
		return misaligned(LEN, len(left), len(right))
	}
	if len(left) == 0 {
		return misaligned(NONE)
	}

	pp := make([]Pair, len(left))
	for i := range left {
		if left[i].Metric != right[i].Metric {
			return misaligned(NAME, i, left[i].Metric, right[i].Metric)
		}
		pp[i] = pair(left[i].Metric, left[i].MetricScore, right[i].MetricScore)
	}
	return result(POSITIONAL, pp), nil
}

// Matched - pairs by metric name whatever the order; each name must occur once on each side
func Matched(left, right []str.RunMetric) (Result, error) {
	const (
		DUPE    = "metric '%s' appears more than once on the %s"
		NONE    = "no metrics to pair"
		MISSING = "metric '%s' is on the %s only"
	)

	misaligned := func(f string, a ...any) (Result, error) {
		return Result{}, &AlignmentError{Mode: MATCHED, Reason: fmt.Sprintf(f, a...)}
	}

	index := func(mm []str.RunMetric, side string) (map[string]float64, string) {
		m := make(map[string]float64, len(mm))
		for _, x := range mm {
			if _, dup := m[x.Metric]; dup {
				return nil, fmt.Sprintf(DUPE, x.Metric, side)
			}
			m[x.Metric] = x.MetricScore
		}
		return m, ""
	}

	lm, why := index(left, str.LEFT)
	if why != "" {
		return misaligned("%s", why)
	}
	rm, why := index(right, str.RIGHT)
	if why != "" {
		return misaligned("%s", why)
	}
	if len(lm) == 0 && len(rm) == 0 {
		return misaligned(NONE)
	}

	// left order decides the order of the pairs
	pp := make([]Pair, 0, len(left))
	for _, x := range left {
		r, ok := rm[x.Metric]
		if !ok {
			return misaligned(MISSING, x.Metric, str.LEFT)
		}
		pp = append(pp, pair(x.Metric, x.MetricScore, r))
	}
	for _, x := range right {
		if _, ok := lm[x.Metric]; !ok {
			return misaligned(MISSING, x.Metric, str.RIGHT)
		}
	}
	return result(MATCHED, pp), nil
}

// Runs - resolve both indices and compare the two runs' metrics
func Runs(ds *str.Dataset, leftidx int, rightidx int, how Pairing) (Result, error) {
	l, err := panel.Resolve(ds, leftidx)
	if err != nil {
		return Result{}, err
	}
	r, err := panel.Resolve(ds, rightidx)
	if err != nil {
		return Result{}, err
	}
	if how == nil {
		how = Positional
	}

	res, err := how(ds.MetricsByRun[l], ds.MetricsByRun[r])
	if err != nil {
		return Result{}, fmt.Errorf("comparing '%s' with '%s': %w", l, r, err)
	}
	res.LeftRun = l
	res.RightRun = r
	return res, nil
}

func pair(metric string, l float64, r float64) Pair {
	return Pair{Metric: metric, Left: l, Right: r, Diff: math.Abs(l - r)}
}

func result(mode string, pp []Pair) Result {
	dd := make([]float64, len(pp))
	for i := range pp {
		dd[i] = pp[i].Diff
	}
	return Result{Mode: mode, Pairs: pp, Mean: stat.Mean(dd, nil)}
}
