package qrimage

import (
	"image"
	"image/draw"
)

// maxCanvasPixels bounds a single allocation (roughly 1 GiB of RGBA).
const maxCanvasPixels = 1 << 28

// Canvas is a mutable RGBA pixel buffer owned by one pipeline stage at a
// time. A stage that derives a new canvas must Release the one it received.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a width×height canvas filled with bg.
func NewCanvas(width, height int, bg Color) (*Canvas, error) {
	if width < 0 || height < 0 {
		return nil, generatef("invalid canvas size %dx%d", width, height)
	}
	if width > 0 && height > maxCanvasPixels/width {
		return nil, generatef("canvas %dx%d is too large", width, height)
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Fill(bg)
	return c, nil
}

// Width returns 0 for a released canvas.
func (c *Canvas) Width() int {
	if c == nil || c.img == nil {
		return 0
	}
	return c.img.Rect.Dx()
}

// Height returns 0 for a released canvas.
func (c *Canvas) Height() int {
	if c == nil || c.img == nil {
		return 0
	}
	return c.img.Rect.Dy()
}

// Image exposes the underlying buffer. It is nil after Release.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Fill replaces every pixel with col.
func (c *Canvas) Fill(col Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// FillRect replaces the pixels of r with col.
func (c *Canvas) FillRect(r image.Rectangle, col Color) {
	draw.Draw(c.img, r.Intersect(c.img.Rect), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// Release drops the pixel buffer. It is safe to call more than once and on a
// nil canvas, so stages can defer it unconditionally.
func (c *Canvas) Release() {
	if c == nil {
		return
	}
	c.img = nil
}

// Released reports whether Release has been called.
func (c *Canvas) Released() bool { return c == nil || c.img == nil }
