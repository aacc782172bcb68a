package qrimage

import "math"

// Geometry holds the pixel layout of a rendered symbol. Values are fractional
// unless block size rounding is enabled.
//
// There is no top margin: the inner canvas is placed at
// (MarginLeft, MarginLeft).
type Geometry struct {
	BlockCount  int
	BlockSize   float64
	InnerWidth  float64
	InnerHeight float64
	OuterWidth  int
	OuterHeight int
	MarginLeft  float64
	MarginRight float64
}

// CalculateGeometry derives the layout of a blockCount×blockCount matrix drawn
// at size pixels with margin pixels on each side. blockCount must be positive.
// A zero block size is returned as is when size < blockCount and round is set.
func CalculateGeometry(blockCount, size, margin int, round bool) Geometry {
	g := Geometry{BlockCount: blockCount}

	g.BlockSize = float64(size) / float64(blockCount)
	if round {
		g.BlockSize = math.Max(0, math.Floor(g.BlockSize))
	}
	g.InnerWidth = g.BlockSize * float64(blockCount)
	g.InnerHeight = g.InnerWidth
	g.OuterWidth = size + 2*margin
	g.OuterHeight = g.OuterWidth

	g.MarginLeft = (float64(g.OuterWidth) - g.InnerWidth) / 2
	if round {
		g.MarginLeft = math.Floor(g.MarginLeft)
	}
	g.MarginRight = float64(g.OuterWidth) - g.InnerWidth - g.MarginLeft
	return g
}
