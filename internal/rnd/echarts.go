//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/render"
)

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// go-echarts wants to emit whole pages; a panel wants html+js fragments that can be swapped into a div

// fragment - the html+js for a single chart; ChartID is left blank so that every render gets a fresh one
func fragment(ch components.Charter) (string, error) {
	// [a] we are building a page with only one chart and doing it by hand
	ch.Validate()
	p := components.NewPage()
	p.Renderer = NewFragmentRender(p, p.Validate)

	// [b] the assets are collected by the enclosing page, not by the fragment
	assets := ch.GetAssets()
	for _, v := range assets.JSAssets.Values {
		p.JSAssets.Add(v)
	}

	// [c] add the chart to the page and get the html+js for it
	p.Charts = append(p.Charts, ch)
	p.Validate()

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering chart fragment: %w", err)
	}
	return buf.String(), nil
}

// FragmentRender - render.Renderer that writes only the chart containers and their scripts
type FragmentRender struct {
	c      interface{}
	before []func()
}

// NewFragmentRender returns a render implementation for Page.
func NewFragmentRender(c interface{}, before ...func()) render.Renderer {
	return &FragmentRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *FragmentRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "chart"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	tpl := mustTemplate(TEMPLNAME, []string{FragmentBaseTpl, FragmentPageTpl})

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, TEMPLNAME, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// mustTemplate creates a new template with the given name and parsed contents.
func mustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Parse(contents[0])).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	})

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// FragmentBaseTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var FragmentBaseTpl = `
{{- define "base" }}
<div class="htrchart" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var FragmentPageTpl = `
{{- define "chart" }}
	{{- range .Charts }} {{ template "base" . }} {{- end }}
{{ end }}
`
