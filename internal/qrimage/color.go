package qrimage

import (
	"image/color"
	"strconv"
	"strings"
)

// MaxAlpha is the fully transparent alpha value. Alpha runs from 0 (opaque)
// to 127 (transparent).
const MaxAlpha = 127

// Color is an RGB colour with a 0 (opaque) to 127 (transparent) alpha channel.
type Color struct {
	R, G, B uint8
	A       uint8
}

var (
	Black = Color{R: 0, G: 0, B: 0}
	White = Color{R: 255, G: 255, B: 255}
)

// RGBA builds an opaque colour.
func RGBA(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// NRGBA converts c to a non-premultiplied 8-bit colour.
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a > MaxAlpha {
		a = MaxAlpha
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 - (int(a)*255+MaxAlpha/2)/MaxAlpha)}
}

// Opaque returns c with the alpha channel dropped.
func (c Color) Opaque() Color {
	c.A = 0
	return c
}

// ParseHexColor parses "#rrggbb", "rrggbb", "#rgb" or "rgb". Shorthand digits
// are doubled, so "#f0f" is (255, 0, 255).
func ParseHexColor(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return Color{}, invalidf("malformed hex color %q", s)
	}

	r, err1 := strconv.ParseUint(v[0:2], 16, 8)
	g, err2 := strconv.ParseUint(v[2:4], 16, 8)
	b, err3 := strconv.ParseUint(v[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return Color{}, invalidf("malformed hex color %q", s)
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}
