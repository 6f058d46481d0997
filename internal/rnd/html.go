//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLPainter - go-echarts for the charts, plain html tables for the tables
type HTMLPainter struct {
	Width  string
	Height string
}

func NewHTMLPainter() HTMLPainter {
	return HTMLPainter{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}
}

const (
	EMPTYPANEL = `<div class="emptypanel">%s</div>`
	NODATA     = "no data"
)

func (h HTMLPainter) init() opts.Initialization {
	return opts.Initialization{Width: h.Width, Height: h.Height}
}

// Histogram - document count per topic; the active topics in colour, the rest neutral
func (h HTMLPainter) Histogram(p panel.Panel, pal Palette) (string, error) {
	const (
		TITLE  = "Documents per topic"
		SERIES = "documents"
		YNAME  = "docs"
	)

	if len(p.Bars) == 0 {
		return fmt.Sprintf(EMPTYPANEL, NODATA), nil
	}

	x := make([]string, len(p.Bars))
	data := make([]opts.BarData, len(p.Bars))
	for i, b := range p.Bars {
		x[i] = b.TopicID
		data[i] = opts.BarData{
			Name:      b.TopicID,
			Value:     b.Count,
			ItemStyle: &opts.ItemStyle{Color: pal.Color(b.Color)},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(h.init()),
		charts.WithTitleOpts(opts.Title{Title: TITLE, Subtitle: p.RunID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: false}),
		charts.WithYAxisOpts(opts.YAxis{Name: YNAME, Max: p.CountScale.Hi}),
	)
	bar.SetXAxis(x).AddSeries(SERIES, data)

	return fragment(bar)
}

// Radial - the coxcomb: every topic's share of the documents laid around the circle
func (h HTMLPainter) Radial(p panel.Panel, pal Palette) (string, error) {
	const (
		TITLE  = "Topic proportions"
		SERIES = "topics"
		LABEL  = "{b}: {d}%"
		INNER  = "20%"
		OUTER  = "70%"
	)

	if p.TotalDocs == 0 {
		return fmt.Sprintf(EMPTYPANEL, NODATA), nil
	}

	data := make([]opts.PieData, len(p.Radial))
	for i, a := range p.Radial {
		data[i] = opts.PieData{
			Name:      a.TopicID,
			Value:     a.Count,
			ItemStyle: &opts.ItemStyle{Color: pal.Color(a.Color)},
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(h.init()),
		charts.WithTitleOpts(opts.Title{Title: TITLE, Subtitle: p.RunID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: false}),
	)
	pie.AddSeries(SERIES, data,
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: LABEL}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{INNER, OUTER}}),
	)

	return fragment(pie)
}

// Matrix - one marker per (term, topic); radius follows the marker scale and absent pairs are left blank
func (h HTMLPainter) Matrix(p panel.Panel, pal Palette) (string, error) {
	const (
		TITLE = "Shared terms"
		MINR  = 4
		MAXR  = 28
	)

	rows, cols := p.Matrix.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Sprintf(EMPTYPANEL, NODATA), nil
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(h.init()),
		charts.WithTitleOpts(opts.Title{Title: TITLE, Subtitle: p.RunID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: false}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: p.Matrix.Topics}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: p.Matrix.Terms}),
	)

	for c := 0; c < cols; c++ {
		var pts []opts.ScatterData
		for r := 0; r < rows; r++ {
			pr := p.Matrix.At(r, c)
			if pr == 0 {
				continue
			}
			sz := MINR + p.Matrix.Marker.Map(pr)*(MAXR-MINR)
			pts = append(pts, opts.ScatterData{
				Name:       fmt.Sprintf("%s: %.4f", p.Matrix.Terms[r], pr),
				Value:      []interface{}{c, r},
				SymbolSize: int(math.Round(sz)),
			})
		}
		sc.AddSeries(p.Matrix.Topics[c], pts, charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.Color(p.Active[c].Color)}))
	}

	return fragment(sc)
}

//
// TABLES
//

// DocTable - the top documents of each active topic; cell shade follows the document scale
func (h HTMLPainter) DocTable(p panel.Panel, pal Palette) (string, error) {
	const (
		NTH       = 2
		FULLTABLE = `
	<table class="topicdocs"><tbody>
	<tr class="vectorrow">
		<td class="vectorrank">Topic</td>
		<td class="vectorrank">Top %d documents</td>
	</tr>
	%s
	</tbody></table>
	`
		TABLEROW = `
	<tr class="%s">
		<td class="vectorrank" style="background:%s;color:%s;">%s</td>%s
	</tr>`
		TABLEELEM = `
		<td class="vectorsent" style="background:%s;color:%s;" title="%.4f">%s</td>`
		EMPTYCELL = `
		<td class="vectorsent"></td>`
	)

	if len(p.Active) == 0 {
		return fmt.Sprintf(EMPTYPANEL, NODATA), nil
	}

	var tablerows []string
	for i, a := range p.Active {
		var cells []string
		for _, d := range a.Docs {
			bg := pal.Shade(a.Color, p.DocScale.Map(d.TopDocProb))
			cells = append(cells, fmt.Sprintf(TABLEELEM, bg, Ink(bg), d.TopDocProb, html.EscapeString(d.TopDoc)))
		}
		// short lists are padded with empty cells
		for j := len(a.Docs); j < p.Limits.TextLimit; j++ {
			cells = append(cells, EMPTYCELL)
		}

		rn := "vectorrow"
		if i%NTH == 0 {
			rn = "nthrow"
		}
		bg := pal.Color(a.Color)
		tablerows = append(tablerows, fmt.Sprintf(TABLEROW, rn, bg, Ink(bg), html.EscapeString(a.TopicID), strings.Join(cells, "")))
	}

	return fmt.Sprintf(FULLTABLE, p.Limits.TextLimit, strings.Join(tablerows, "\n")), nil
}

// TermTable - the top terms of each active topic; cell shade follows the term scale
func (h HTMLPainter) TermTable(p panel.Panel, pal Palette) (string, error) {
	const (
		NTH       = 2
		FULLTABLE = `
	<table class="topicterms"><tbody>
	<tr class="vectorrow">
		<td class="vectorrank">Topic</td>
		<td class="vectorrank">Top %d terms</td>
	</tr>
	%s
	</tbody></table>
	`
		TABLEROW = `
	<tr class="%s">
		<td class="vectorrank" style="background:%s;color:%s;">%s</td>%s
	</tr>`
		TABLEELEM = `
		<td class="vectorterm" style="background:%s;color:%s;" title="%.4f">%s</td>`
		EMPTYCELL = `
		<td class="vectorterm"></td>`
	)

	if len(p.Active) == 0 {
		return fmt.Sprintf(EMPTYPANEL, NODATA), nil
	}

	var tablerows []string
	for i, a := range p.Active {
		var cells []string
		for _, t := range a.Terms {
			bg := pal.Shade(a.Color, p.TermScale.Map(t.TopProb))
			cells = append(cells, fmt.Sprintf(TABLEELEM, bg, Ink(bg), t.TopProb, html.EscapeString(t.TopTerm)))
		}
		for j := len(a.Terms); j < p.Limits.TokenLimit; j++ {
			cells = append(cells, EMPTYCELL)
		}

		rn := "vectorrow"
		if i%NTH == 0 {
			rn = "nthrow"
		}
		bg := pal.Color(a.Color)
		tablerows = append(tablerows, fmt.Sprintf(TABLEROW, rn, bg, Ink(bg), html.EscapeString(a.TopicID), strings.Join(cells, "")))
	}

	return fmt.Sprintf(FULLTABLE, p.Limits.TokenLimit, strings.Join(tablerows, "\n")), nil
}

// Metrics - the run's metric rows in file order
func (h HTMLPainter) Metrics(p panel.Panel) (string, error) {
	const (
		NTH       = 2
		FULLTABLE = `
	<table class="runmetrics"><tbody>
	<tr class="vectorrow">
		<td class="vectorrank">Metric</td>
		<td class="vectorrank">Score</td>
		<td class="vectorrank">Action</td>
	</tr>
	%s
	</tbody></table>
	`
		TABLEROW = `
	<tr class="%s">
		<td class="vectorsent">%s</td>
		<td class="vectorsent">%.4f</td>
		<td class="vectorsent">%s</td>
	</tr>`
	)

	if len(p.Metrics) == 0 {
		return fmt.Sprintf(EMPTYPANEL, NODATA), nil
	}

	var tablerows []string
	for i, m := range p.Metrics {
		rn := "vectorrow"
		if i%NTH == 0 {
			rn = "nthrow"
		}
		tablerows = append(tablerows, fmt.Sprintf(TABLEROW, rn, html.EscapeString(m.Metric), m.MetricScore, html.EscapeString(m.ActionType)))
	}

	return fmt.Sprintf(FULLTABLE, strings.Join(tablerows, "\n")), nil
}
