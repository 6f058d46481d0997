//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
)

// RadialSVG - a static rendition of the radial overview: 0 is twelve o'clock, angles run clockwise
func RadialSVG(w io.Writer, p panel.Panel, pal Palette, size int) error {
	const (
		MARGIN   = 40
		HEADER   = 28
		BACKDROP = "fill:#ffffff"
		TITLEST  = "fill:#333333;font-size:14px;font-family:sans-serif"
		LABELST  = "fill:#333333;font-size:11px;font-family:sans-serif;text-anchor:middle"
		STROKE   = "stroke:#ffffff;stroke-width:1"
		LABELMIN = 0.04 // arcs smaller than this share of the circle go unlabelled
		EMPTY    = "no data"
	)

	if size <= 0 {
		size = vv.RADIALSVGSIZE
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size, size+HEADER)
	canvas.Rect(0, 0, size, size+HEADER, BACKDROP)

	title := Summary(p)
	canvas.Text(MARGIN/2, HEADER-8, title, TITLEST)

	cx := float64(size) / 2
	cy := float64(size)/2 + HEADER
	r := float64(size)/2 - MARGIN

	if p.TotalDocs == 0 {
		canvas.Text(int(cx), int(cy), EMPTY, LABELST)
		canvas.End()
		_, err := w.Write(buf.Bytes())
		return err
	}

	at := func(a float64, rad float64) (float64, float64) {
		return cx + rad*math.Sin(a), cy - rad*math.Cos(a)
	}

	canvas.Gid("arcs")
	for _, a := range p.Radial {
		span := a.End - a.Start
		if span <= 0 {
			continue
		}
		fill := fmt.Sprintf("fill:%s;%s", pal.Color(a.Color), STROKE)

		// one topic owning the whole circle has no sector to speak of
		if span >= 2*math.Pi-1e-9 {
			canvas.Circle(int(cx), int(cy), int(r), fill)
			continue
		}

		x0, y0 := at(a.Start, r)
		x1, y1 := at(a.End, r)
		large := 0
		if span > math.Pi {
			large = 1
		}
		d := fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f Z", cx, cy, x0, y0, r, r, large, x1, y1)
		canvas.Path(d, fill)
	}
	canvas.Gend()

	canvas.Gid("labels")
	for _, a := range p.Radial {
		if a.Fraction() < LABELMIN {
			continue
		}
		lx, ly := at((a.Start+a.End)/2, r+MARGIN/2)
		canvas.Text(int(math.Round(lx)), int(math.Round(ly)), a.TopicID, LABELST)
	}
	canvas.Gend()

	canvas.End()
	_, err := w.Write(buf.Bytes())
	return err
}
