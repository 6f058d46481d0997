//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"fmt"
	"math"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/gen"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/olekukonko/tablewriter"
)

// TermPainter - the same panel as plain-text tables; colour is reduced to a palette index column
type TermPainter struct {
	BarWidth int
	CellMax  int // longest document text shown in a cell
}

func NewTermPainter() TermPainter {
	return TermPainter{BarWidth: 30, CellMax: 48}
}

func (t TermPainter) table(header []string, rows [][]string) string {
	var sb strings.Builder
	tw := tablewriter.NewWriter(&sb)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.AppendBulk(rows)
	tw.Render()
	return sb.String()
}

func colorcell(idx int) string {
	if idx < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", idx)
}

func (t TermPainter) Histogram(p panel.Panel, _ Palette) (string, error) {
	if len(p.Bars) == 0 {
		return NODATA + "\n", nil
	}
	rows := make([][]string, len(p.Bars))
	for i, b := range p.Bars {
		w := int(math.Round(b.Height * float64(t.BarWidth)))
		rows[i] = []string{nf.Sprintf("%d", i+1), b.TopicID, nf.Sprintf("%d", b.Count), colorcell(b.Color), strings.Repeat("█", w)}
	}
	return t.table([]string{"rank", "topic", "docs", "colour", ""}, rows), nil
}

func (t TermPainter) Radial(p panel.Panel, _ Palette) (string, error) {
	if p.TotalDocs == 0 {
		return NODATA + "\n", nil
	}
	deg := func(r float64) string { return fmt.Sprintf("%.1f°", r*180/math.Pi) }
	rows := make([][]string, len(p.Radial))
	for i, a := range p.Radial {
		rows[i] = []string{a.TopicID, deg(a.Start), deg(a.End), fmt.Sprintf("%.1f%%", a.Fraction()*100), colorcell(a.Color)}
	}
	return t.table([]string{"topic", "from", "to", "share", "colour"}, rows), nil
}

func (t TermPainter) DocTable(p panel.Panel, _ Palette) (string, error) {
	if len(p.Active) == 0 {
		return NODATA + "\n", nil
	}
	var rows [][]string
	for _, a := range p.Active {
		for _, d := range a.Docs {
			rows = append(rows, []string{a.TopicID, fmt.Sprintf("%d", d.TopDocOrder), fmt.Sprintf("%.4f", d.TopDocProb), gen.Truncate(d.TopDoc, t.CellMax)})
		}
		if len(a.Docs) == 0 {
			rows = append(rows, []string{a.TopicID, "", "", ""})
		}
	}
	return t.table([]string{"topic", "order", "prob", "document"}, rows), nil
}

func (t TermPainter) TermTable(p panel.Panel, _ Palette) (string, error) {
	if len(p.Active) == 0 {
		return NODATA + "\n", nil
	}
	rows := make([][]string, len(p.Active))
	for i, a := range p.Active {
		ww := make([]string, len(a.Terms))
		for j, tt := range a.Terms {
			ww[j] = fmt.Sprintf("%s (%.3f)", tt.TopTerm, tt.TopProb)
		}
		rows[i] = []string{a.TopicID, strings.Join(ww, ", ")}
	}
	return t.table([]string{"topic", "terms"}, rows), nil
}

func (t TermPainter) Matrix(p panel.Panel, _ Palette) (string, error) {
	r, c := p.Matrix.Dims()
	if r == 0 || c == 0 {
		return NODATA + "\n", nil
	}
	header := append([]string{"term"}, p.Matrix.Topics...)
	rows := make([][]string, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]string, c+1)
		rows[i][0] = p.Matrix.Terms[i]
		for j := 0; j < c; j++ {
			if v := p.Matrix.At(i, j); v > 0 {
				rows[i][j+1] = fmt.Sprintf("%.3f", v)
			}
		}
	}
	return t.table(header, rows), nil
}

func (t TermPainter) Metrics(p panel.Panel) (string, error) {
	if len(p.Metrics) == 0 {
		return NODATA + "\n", nil
	}
	rows := make([][]string, len(p.Metrics))
	for i, m := range p.Metrics {
		rows[i] = []string{m.Metric, fmt.Sprintf("%.4f", m.MetricScore), m.ActionType}
	}
	return t.table([]string{"metric", "score", "action"}, rows), nil
}
