package qrimage

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestCalculateGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		blockCount int
		size       int
		margin     int
		round      bool
		want       Geometry
	}{
		{
			name: "exact fit", blockCount: 25, size: 300, margin: 10, round: true,
			want: Geometry{BlockCount: 25, BlockSize: 12, InnerWidth: 300, InnerHeight: 300, OuterWidth: 320, OuterHeight: 320, MarginLeft: 10, MarginRight: 10},
		},
		{
			name: "rounded down", blockCount: 29, size: 300, margin: 10, round: true,
			want: Geometry{BlockCount: 29, BlockSize: 10, InnerWidth: 290, InnerHeight: 290, OuterWidth: 320, OuterHeight: 320, MarginLeft: 15, MarginRight: 15},
		},
		{
			name: "odd remainder goes right", blockCount: 33, size: 300, margin: 10, round: true,
			want: Geometry{BlockCount: 33, BlockSize: 9, InnerWidth: 297, InnerHeight: 297, OuterWidth: 320, OuterHeight: 320, MarginLeft: 11, MarginRight: 12},
		},
		{
			name: "fractional", blockCount: 33, size: 300, margin: 10, round: false,
			want: Geometry{BlockCount: 33, BlockSize: 300.0 / 33, InnerWidth: 300, InnerHeight: 300, OuterWidth: 320, OuterHeight: 320, MarginLeft: 10, MarginRight: 10},
		},
		{
			name: "degenerate zero block", blockCount: 50, size: 30, margin: 10, round: true,
			want: Geometry{BlockCount: 50, BlockSize: 0, InnerWidth: 0, InnerHeight: 0, OuterWidth: 50, OuterHeight: 50, MarginLeft: 25, MarginRight: 25},
		},
		{
			name: "no margin", blockCount: 21, size: 100, margin: 0, round: true,
			want: Geometry{BlockCount: 21, BlockSize: 4, InnerWidth: 84, InnerHeight: 84, OuterWidth: 100, OuterHeight: 100, MarginLeft: 8, MarginRight: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CalculateGeometry(tt.blockCount, tt.size, tt.margin, tt.round)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("CalculateGeometry() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateGeometry_Invariants(t *testing.T) {
	t.Parallel()

	for blockCount := 1; blockCount <= 57; blockCount += 4 {
		for _, size := range []int{1, 21, 100, 299, 300, 1000} {
			for _, margin := range []int{0, 1, 10, 33} {
				for _, round := range []bool{true, false} {
					g := CalculateGeometry(blockCount, size, margin, round)

					assert.Equal(t, size+2*margin, g.OuterWidth)
					assert.Equal(t, g.OuterWidth, g.OuterHeight)
					assert.InDelta(t, g.BlockSize*float64(blockCount), g.InnerWidth, 1e-9)
					assert.InDelta(t, float64(g.OuterWidth), g.InnerWidth+g.MarginLeft+g.MarginRight, 1e-9)

					if round {
						assert.Equal(t, math.Floor(float64(size)/float64(blockCount)), g.BlockSize)
						assert.Equal(t, math.Floor(g.MarginLeft), g.MarginLeft)
					} else {
						assert.Equal(t, float64(size)/float64(blockCount), g.BlockSize)
					}
				}
			}
		}
	}
}
