//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/e-gun/HipparchiaTopicRuns/internal/cmpr"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/rnd"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/goccy/go-json"
)

const (
	REPORTHTML = "index.html"
	REPORTJSON = "panels.json"
	REPORTSVG  = "%s-radial.svg"
)

//
// JSON EXPORT
//

type TopicExport struct {
	TopicID string          `json:"topic_id"`
	Count   int             `json:"count"`
	Rank    int             `json:"rank"`
	Color   string          `json:"color"`
	Docs    []str.TopicDoc  `json:"docs"`
	Terms   []str.TopicTerm `json:"terms"`
}

type ArcExport struct {
	TopicID string  `json:"topic_id"`
	Count   int     `json:"count"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Active  bool    `json:"active"`
}

type MatrixExport struct {
	Terms  []string    `json:"terms"`
	Topics []string    `json:"topics"`
	Probs  [][]float64 `json:"probs"`
	Max    float64     `json:"max"`
}

type PanelExport struct {
	Side         string          `json:"side"`
	RunIndex     int             `json:"run_index"`
	RunID        string          `json:"run_id"`
	TotalDocs    int             `json:"total_docs"`
	MaxTopicProb float64         `json:"max_topic_prob"`
	MaxTokenProb float64         `json:"max_token_prob"`
	Topics       []TopicExport   `json:"topics"`
	Radial       []ArcExport     `json:"radial"`
	Matrix       MatrixExport    `json:"matrix"`
	Metrics      []str.RunMetric `json:"metrics"`
}

type ReportExport struct {
	Generated  time.Time             `json:"generated"`
	Source     string                `json:"source"`
	Runs       []string              `json:"runs"`
	Dropped    int                   `json:"dropped"`
	Panels     []PanelExport         `json:"panels"`
	Comparison *str.CompareOutputJSON `json:"comparison,omitempty"`
}

// ExportPanel - flatten a panel into plain values
func ExportPanel(p panel.Panel, pal rnd.Palette) PanelExport {
	pe := PanelExport{
		Side:         p.State.Side,
		RunIndex:     p.State.RunIndex,
		RunID:        p.RunID,
		TotalDocs:    p.TotalDocs,
		MaxTopicProb: p.MaxTopicProb,
		MaxTokenProb: p.MaxTokenProb,
		Metrics:      p.Metrics,
	}

	for _, a := range p.Active {
		pe.Topics = append(pe.Topics, TopicExport{
			TopicID: a.TopicID,
			Count:   a.Count,
			Rank:    a.Rank,
			Color:   pal.Color(a.Color),
			Docs:    a.Docs,
			Terms:   a.Terms,
		})
	}

	for _, a := range p.Radial {
		pe.Radial = append(pe.Radial, ArcExport{TopicID: a.TopicID, Count: a.Count, Start: a.Start, End: a.End, Active: a.Active})
	}

	rr, cc := p.Matrix.Dims()
	pe.Matrix = MatrixExport{Terms: p.Matrix.Terms, Topics: p.Matrix.Topics, Max: p.Matrix.Max}
	for r := 0; r < rr; r++ {
		row := make([]float64, cc)
		for c := 0; c < cc; c++ {
			row[c] = p.Matrix.At(r, c)
		}
		pe.Matrix.Probs = append(pe.Matrix.Probs, row)
	}
	return pe
}

// comparejson - a failed comparison is reported inside the report rather than aborting it
func comparejson(res cmpr.Result, err error) *str.CompareOutputJSON {
	if err != nil {
		return &str.CompareOutputJSON{Error: err.Error()}
	}
	return &str.CompareOutputJSON{
		Left:    res.LeftRun,
		Right:   res.RightRun,
		Mode:    res.Mode,
		Mean:    res.Mean,
		PerPair: res.PerPair(),
	}
}

//
// THE REPORT
//

// Report - the left and right panels as html, svg and json files under dir; returns the paths written
func Report(ds *str.Dataset, cfg *str.CurrentConfiguration, how cmpr.Pairing, dir string) ([]string, error) {
	const (
		CMPOK  = "mean |Δ| between %s and %s (%s): %.4f"
		CMPBAD = "no comparison: %s"
	)

	start := time.Now()
	lim := LimitsFromConfig(cfg)
	pal := rnd.NewPalette(lim.PaletteSize, cfg.BlackAndWhite)
	hp := rnd.NewHTMLPainter()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// [a] panels

	states := []str.PanelState{
		{Side: str.LEFT, RunIndex: cfg.LeftRun},
		{Side: str.RIGHT, RunIndex: cfg.RightRun},
	}

	var (
		panels   []panel.Panel
		rendered []rnd.Rendered
	)
	for _, ps := range states {
		p, err := panel.Build(ds, ps, lim)
		if err != nil {
			return nil, fmt.Errorf("%s panel: %w", ps.Side, err)
		}
		r, err := rnd.Paint(hp, p, pal)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
		rendered = append(rendered, r)
	}
	Msg.Timer("R1", "panels built", start, start)

	// [b] comparison

	var cmptxt string
	res, cerr := cmpr.Runs(ds, cfg.LeftRun, cfg.RightRun, how)
	if cerr != nil {
		cmptxt = fmt.Sprintf(CMPBAD, cerr.Error())
		Msg.WARN(cmptxt)
	} else {
		cmptxt = fmt.Sprintf(CMPOK, res.LeftRun, res.RightRun, res.Mode, res.Mean)
	}

	// [c] files

	var written []string
	write := func(name string, data []byte) error {
		fp := filepath.Join(dir, name)
		if err := os.WriteFile(fp, data, vv.WRITEPERMS); err != nil {
			return err
		}
		written = append(written, fp)
		return nil
	}

	var page bytes.Buffer
	if err := rnd.WriteReport(&page, ds.Source, cmptxt, rendered...); err != nil {
		return nil, err
	}
	if err := write(REPORTHTML, page.Bytes()); err != nil {
		return nil, err
	}

	for _, p := range panels {
		var svg bytes.Buffer
		if err := rnd.RadialSVG(&svg, p, pal, vv.RADIALSVGSIZE); err != nil {
			return nil, err
		}
		if err := write(fmt.Sprintf(REPORTSVG, p.State.Side), svg.Bytes()); err != nil {
			return nil, err
		}
	}

	exp := ReportExport{
		Generated:  time.Now(),
		Source:     ds.Source,
		Runs:       ds.Runs,
		Dropped:    ds.Dropped,
		Comparison: comparejson(res, cerr),
	}
	for _, p := range panels {
		exp.Panels = append(exp.Panels, ExportPanel(p, pal))
	}
	js, err := json.MarshalIndent(exp, "", vv.JSONINDENT)
	if err != nil {
		return nil, err
	}
	if err = write(REPORTJSON, js); err != nil {
		return nil, err
	}

	Msg.Timer("R2", fmt.Sprintf("%d files written to %s", len(written), dir), start, start)
	return written, nil
}

// TerminalPanels - the same panels as tablewriter tables
func TerminalPanels(ds *str.Dataset, cfg *str.CurrentConfiguration) (string, error) {
	lim := LimitsFromConfig(cfg)
	pal := rnd.NewPalette(lim.PaletteSize, true)
	tp := rnd.NewTermPainter()

	var b bytes.Buffer
	for _, ps := range []str.PanelState{{Side: str.LEFT, RunIndex: cfg.LeftRun}, {Side: str.RIGHT, RunIndex: cfg.RightRun}} {
		p, err := panel.Build(ds, ps, lim)
		if err != nil {
			return "", err
		}
		r, err := rnd.Paint(tp, p, pal)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "== %s: %s ==\n", r.Side, r.Summary)
		for _, s := range []string{r.Histogram, r.Radial, r.Docs, r.Terms, r.Matrix, r.Metrics} {
			b.WriteString(s)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func runreport(ctx context.Context, matched bool) error {
	ds, err := loaddata(ctx)
	if err != nil {
		return err
	}

	ff, err := Report(ds, Config, pairing(matched), Config.OutDir)
	if err != nil {
		return err
	}
	for _, f := range ff {
		Msg.NOTE(fmt.Sprintf("wrote %s", f))
	}

	tt, err := TerminalPanels(ds, Config)
	if err != nil {
		return err
	}
	Msg.Print(tt)
	return nil
}
