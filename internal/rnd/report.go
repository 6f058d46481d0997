//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"fmt"
	"html/template"
	"io"

	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
)

// ChartAssets - the script urls go-echarts expects the enclosing page to load
func ChartAssets() []string {
	bar := charts.NewBar()
	bar.Validate()
	return bar.GetAssets().JSAssets.Values
}

// PanelCSS - shared by the viewer and the static report
const PanelCSS = `
	body { font-family: sans-serif; font-size: 13px; margin: 1em; }
	.panels { display: flex; flex-wrap: wrap; gap: 2em; }
	.panel { flex: 1 1 540px; }
	.panel h2 { font-size: 15px; }
	.htrchart { margin-bottom: 1em; }
	table { border-collapse: collapse; margin-bottom: 1em; }
	td { padding: 3px 6px; border: 1px solid #eeeeee; }
	td.vectorrank { font-weight: bold; }
	td.vectorsent { max-width: 14em; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
	tr.nthrow { background: #f7f7f7; }
	.emptypanel { color: #999999; font-style: italic; padding: 1em; }
	.comparison { font-family: monospace; margin: 1em 0; }
`

// ReportTpl - adapted from the go-echarts page templates: header with the chart assets, then both panels
var ReportTpl = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{ .Title }}</title>
{{- range .JSAssets }}
    <script src="{{ . }}"></script>
{{- end }}
    <style>{{ .CSS }}</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<div class="comparison">{{ .Comparison }}</div>
<div class="panels">
{{- range .Panels }}
	<div class="panel" id="{{ .Side }}panel">
		<h2>{{ .Side }}: {{ .Summary }}</h2>
		{{ .Histogram }}
		{{ .Radial }}
		{{ .Docs }}
		{{ .Terms }}
		{{ .Matrix }}
		{{ .Metrics }}
	</div>
{{- end }}
</div>
<div class="comparison">{{ .Generated }}</div>
</body>
</html>
`

type reportpanel struct {
	Side      string
	Summary   string
	Histogram template.HTML
	Radial    template.HTML
	Docs      template.HTML
	Terms     template.HTML
	Matrix    template.HTML
	Metrics   template.HTML
}

// WriteReport - a self-contained html page with both panels side by side
func WriteReport(w io.Writer, source string, comparison string, panels ...Rendered) error {
	const (
		TITLE = "%s: %s"
		GENER = "%s %s"
	)

	// the fragments were built by this package; they are trusted html+js
	var pp []reportpanel
	for _, r := range panels {
		pp = append(pp, reportpanel{
			Side:      r.Side,
			Summary:   r.Summary,
			Histogram: template.HTML(r.Histogram),
			Radial:    template.HTML(r.Radial),
			Docs:      template.HTML(r.Docs),
			Terms:     template.HTML(r.Terms),
			Matrix:    template.HTML(r.Matrix),
			Metrics:   template.HTML(r.Metrics),
		})
	}

	subs := map[string]interface{}{
		"Title":      fmt.Sprintf(TITLE, vv.MYNAME, source),
		"JSAssets":   ChartAssets(),
		"CSS":        template.CSS(PanelCSS),
		"Comparison": comparison,
		"Panels":     pp,
		"Generated":  fmt.Sprintf(GENER, vv.MYNAME, vv.VERSION),
	}

	tmpl, err := template.New("report").Parse(ReportTpl)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, subs)
}
