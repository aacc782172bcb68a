package qrimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Color
	}{
		{"#f0f", Color{R: 255, G: 0, B: 255}},
		{"f0f", Color{R: 255, G: 0, B: 255}},
		{"#ff00ff", Color{R: 255, G: 0, B: 255}},
		{"#FFF", White},
		{"  123456 ", Color{R: 0x12, G: 0x34, B: 0x56}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#", "12345", "#ff00ff00", "#gg0000", "red"} {
		_, err := ParseHexColor(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestGradientColors_Count(t *testing.T) {
	t.Parallel()

	colors, err := GradientColors("#000", "#fff", 300, 12)
	require.NoError(t, err)
	assert.Len(t, colors, 25)

	colors, err = GradientColors("#000", "#fff", 297, 9)
	require.NoError(t, err)
	assert.Len(t, colors, 33)
}

func TestGradientColors_Endpoints(t *testing.T) {
	t.Parallel()

	colors, err := GradientColors("#102030", "#f0e0d0", 300, 1)
	require.NoError(t, err)
	require.Len(t, colors, 300)

	assert.Equal(t, Color{R: 0x10, G: 0x20, B: 0x30}, colors[0])

	last := colors[len(colors)-1]
	assert.InDelta(t, 0xf0, int(last.R), 1)
	assert.InDelta(t, 0xe0, int(last.G), 1)
	assert.InDelta(t, 0xd0, int(last.B), 1)
}

func TestGradientColors_Interpolates(t *testing.T) {
	t.Parallel()

	colors, err := GradientColors("#000000", "#c8c8c8", 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []Color{
		{R: 0, G: 0, B: 0},
		{R: 50, G: 50, B: 50},
		{R: 100, G: 100, B: 100},
		{R: 150, G: 150, B: 150},
	}, colors)
}

func TestGradientColors_Degenerate(t *testing.T) {
	t.Parallel()

	colors, err := GradientColors("#f00", "#00f", 300, 0)
	require.NoError(t, err)
	assert.Equal(t, []Color{{R: 255}}, colors)

	colors, err = GradientColors("#f00", "#00f", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []Color{{R: 255}}, colors)

	_, err = GradientColors("#f00", "blue", 10, 1)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestColorAt_Clamps(t *testing.T) {
	t.Parallel()

	colors := []Color{{R: 1}, {R: 2}, {R: 3}}
	assert.Equal(t, Color{R: 1}, colorAt(colors, -1))
	assert.Equal(t, Color{R: 2}, colorAt(colors, 1))
	assert.Equal(t, Color{R: 3}, colorAt(colors, 3))
	assert.Equal(t, Color{R: 3}, colorAt(colors, 100))
}

func TestParseGradientType(t *testing.T) {
	t.Parallel()

	typ, err := ParseGradientType("vertical")
	require.NoError(t, err)
	assert.Equal(t, GradientVertical, typ)

	typ, err = ParseGradientType("Horizontal")
	require.NoError(t, err)
	assert.Equal(t, GradientHorizontal, typ)

	for _, name := range []string{"ellipse", "circle2", "diamond", "square", "radial"} {
		_, err := ParseGradientType(name)
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestColor_NRGBA(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 255, Color{}.NRGBA().A)
	assert.EqualValues(t, 0, Color{A: MaxAlpha}.NRGBA().A)
	assert.EqualValues(t, 129, Color{A: 63}.NRGBA().A)
	assert.Equal(t, Color{R: 9}, Color{R: 9, A: 100}.Opaque())
}
