//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rnd

import (
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette - the colour lookup handed to every painter
type Palette struct {
	Colors  []string
	Neutral string
}

// NewPalette - size colours; the first ten are the categorical scheme, the rest are spread around the hue wheel.
// Black-and-white swaps in a ramp of greys.
func NewPalette(size int, bw bool) Palette {
	const (
		SAT      = 0.55
		VAL      = 0.80
		DARKGREY = 0.15
		LITEGREY = 0.65
	)

	if size <= 0 {
		size = vv.PALETTESIZE
	}

	pl := Palette{Colors: make([]string, size), Neutral: vv.NeutralColor}

	if bw {
		for i := 0; i < size; i++ {
			g := DARKGREY
			if size > 1 {
				g += (LITEGREY - DARKGREY) * float64(i) / float64(size-1)
			}
			pl.Colors[i] = colorful.Color{R: g, G: g, B: g}.Hex()
		}
		return pl
	}

	for i := 0; i < size; i++ {
		if i < len(vv.Palette) {
			pl.Colors[i] = vv.Palette[i]
			continue
		}
		pl.Colors[i] = colorful.Hsv(360*float64(i)/float64(size), SAT, VAL).Hex()
	}
	return pl
}

// Color - hex for a palette index; negative means neutral
func (pl Palette) Color(idx int) string {
	if idx < 0 || len(pl.Colors) == 0 {
		return pl.Neutral
	}
	return pl.Colors[idx%len(pl.Colors)]
}

// Shade - the palette colour washed toward white: t = 0 is near-white, t = 1 is the full colour
func (pl Palette) Shade(idx int, t float64) string {
	const (
		FLOOR = 0.08
	)
	c, err := colorful.Hex(pl.Color(idx))
	if err != nil {
		return pl.Neutral
	}
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return white.BlendLab(c, FLOOR+(1-FLOOR)*t).Clamped().Hex()
}

// Ink - black or white text, whichever reads on the background
func Ink(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l < 0.6 {
		return "#ffffff"
	}
	return "#000000"
}
