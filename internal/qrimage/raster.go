package qrimage

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// oversampleBlockSize is the per-module size of the base canvas when block
// sizes are not rounded; the base canvas is then resampled down to the
// fractional inner size.
const oversampleBlockSize = 25

// Matrix is a square grid of modules indexed [row][column]; true is dark.
type Matrix [][]bool

// Size returns the matrix dimension, or an error if it is empty or not square.
func (m Matrix) Size() (int, error) {
	n := len(m)
	if n == 0 {
		return 0, invalidf("empty module matrix")
	}
	for i, row := range m {
		if len(row) != n {
			return 0, invalidf("module matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	return n, nil
}

// Rasterize draws the matrix and returns a canvas of geo.OuterWidth ×
// geo.OuterHeight pixels. The caller owns the returned canvas.
func Rasterize(m Matrix, geo Geometry, style Style) (*Canvas, error) {
	blockCount, err := m.Size()
	if err != nil {
		return nil, err
	}

	baseSize := oversampleBlockSize
	if style.RoundBlockSize {
		baseSize = int(geo.BlockSize)
	}

	base, err := NewCanvas(blockCount*baseSize, blockCount*baseSize, style.Background)
	if err != nil {
		return nil, err
	}
	defer base.Release()

	if style.Gradient != nil {
		if err := paintGradient(base, m, baseSize, geo, *style.Gradient); err != nil {
			return nil, err
		}
	} else {
		paintSolid(base, m, baseSize, style.Foreground)
	}

	out, err := NewCanvas(geo.OuterWidth, geo.OuterHeight, style.Background)
	if err != nil {
		return nil, err
	}

	offset := int(geo.MarginLeft)
	dst := image.Rect(offset, offset, offset+int(geo.InnerWidth), offset+int(geo.InnerHeight))
	resample(out, dst, base)
	return out, nil
}

func paintSolid(c *Canvas, m Matrix, baseSize int, fg Color) {
	for row, values := range m {
		for col, set := range values {
			if !set {
				continue
			}
			c.FillRect(image.Rect(col*baseSize, row*baseSize, (col+1)*baseSize, (row+1)*baseSize), fg)
		}
	}
}

func paintGradient(c *Canvas, m Matrix, baseSize int, geo Geometry, g Gradient) error {
	colors, err := GradientColors(g.Start, g.End, geo.InnerHeight, geo.BlockSize)
	if err != nil {
		return err
	}

	switch g.Type {
	case GradientVertical:
		for row, values := range m {
			for col, set := range values {
				if !set {
					continue
				}
				c.FillRect(image.Rect(col*baseSize, row*baseSize, (col+1)*baseSize, (row+1)*baseSize), colorAt(colors, row))
			}
		}
	case GradientHorizontal:
		// Row and column swap places here; the row still picks the colour.
		for row, values := range m {
			for col, set := range values {
				if !set {
					continue
				}
				c.FillRect(image.Rect(row*baseSize, col*baseSize, (row+1)*baseSize, (col+1)*baseSize), colorAt(colors, row))
			}
		}
	default:
		return invalidf("gradient type %v is not supported", g.Type)
	}
	return nil
}

// resample composites src over dst scaled into r.
func resample(dst *Canvas, r image.Rectangle, src *Canvas) {
	sr := src.img.Rect
	if r.Empty() || sr.Empty() {
		return
	}
	if r.Size() == sr.Size() {
		xdraw.Draw(dst.img, r, src.img, sr.Min, xdraw.Over)
		return
	}
	xdraw.BiLinear.Scale(dst.img, r, src.img, sr, xdraw.Over, nil)
}
