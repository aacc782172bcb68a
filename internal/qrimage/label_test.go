package qrimage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLabelX(t *testing.T) {
	t.Parallel()

	m := Margins{Top: 0, Right: 7, Bottom: 10, Left: 13}
	const canvasWidth, boxWidth = 320, 100

	assert.Equal(t, m.Left, labelX(AlignLeft, canvasWidth, boxWidth, m))

	x := labelX(AlignRight, canvasWidth, boxWidth, m)
	assert.Equal(t, canvasWidth, x+boxWidth+m.Right)

	assert.Equal(t, 110, labelX(AlignCenter, canvasWidth, boxWidth, m))
	assert.Equal(t, 110, labelX(AlignCenter, canvasWidth+1, boxWidth, m))
}

func TestParseLabelAlignment(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]LabelAlignment{"": AlignCenter, "center": AlignCenter, "LEFT": AlignLeft, "right": AlignRight} {
		got, err := ParseLabelAlignment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLabelAlignment("justify")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadFace(t *testing.T) {
	t.Parallel()

	face, err := LoadFace("", 16)
	require.NoError(t, err)
	w, h := measureText(face, "HELLO")
	assert.Positive(t, w)
	assert.Positive(t, h)
	require.NoError(t, face.Close())

	path := writeTemp(t, "regular.ttf", goregular.TTF)
	face, err = LoadFace(path, 32)
	require.NoError(t, err)
	w2, h2 := measureText(face, "HELLO")
	assert.Greater(t, w2, w)
	assert.Greater(t, h2, h)
	require.NoError(t, face.Close())

	_, err = LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 16)
	assert.ErrorIs(t, err, ErrInvalid)

	garbage := writeTemp(t, "garbage.ttf", []byte("not a font"))
	_, err = LoadFace(garbage, 16)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseFace_FallsBack(t *testing.T) {
	t.Parallel()

	rejectAll := func([]byte, float64) (font.Face, error) { return nil, errors.New("unsupported table") }

	face, err := parseFace("regular.ttf", goregular.TTF, 16, rejectAll, trueTypeFace)
	require.NoError(t, err)
	w, h := measureText(face, "HELLO")
	assert.Positive(t, w)
	assert.Positive(t, h)
	require.NoError(t, face.Close())

	_, err = parseFace("regular.ttf", goregular.TTF, 16, rejectAll)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "unsupported table")
}

func TestResolveFontPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o600))
	link := filepath.Join(dir, "link.ttf")
	require.NoError(t, os.Symlink(path, link))

	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)

	got, err := ResolveFontPath(link)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ResolveFontPath(dir)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ResolveFontPath(filepath.Join(dir, "nope.ttf"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLabelCompositor_Apply(t *testing.T) {
	t.Parallel()

	face, err := LoadFace("", DefaultLabelFontSize)
	require.NoError(t, err)
	_, boxHeight := measureText(face, "HELLO")
	require.NoError(t, face.Close())

	src, err := NewCanvas(100, 100, White)
	require.NoError(t, err)
	src.FillRect(src.Image().Rect, Black)

	label := Label{Text: "HELLO", Margin: DefaultLabelMargins}
	out, err := NewLabelCompositor().Apply(src, label, Black, White)
	require.NoError(t, err)

	assert.True(t, src.Released())
	assert.Equal(t, 100, out.Width())
	assert.Equal(t, 100+boxHeight+DefaultLabelMargins.Top+DefaultLabelMargins.Bottom, out.Height())
	assert.Equal(t, opaqueBlack, rgbaAt(out, 0, 0))
	assert.Equal(t, opaqueBlack, rgbaAt(out, 99, 99))
	assert.Equal(t, opaqueWhite, rgbaAt(out, 0, out.Height()-1), "bottom margin")

	inked := false
	for y := 100; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if rgbaAt(out, x, y) != opaqueWhite {
				inked = true
			}
		}
	}
	assert.True(t, inked, "label text was drawn")
}

func TestLabelCompositor_OpaqueBand(t *testing.T) {
	t.Parallel()

	src, err := NewCanvas(60, 60, White)
	require.NoError(t, err)

	bg := Color{R: 255, G: 255, B: 255, A: MaxAlpha}
	out, err := NewLabelCompositor().Apply(src, Label{Text: "x", Margin: DefaultLabelMargins}, Black, bg)
	require.NoError(t, err)
	assert.EqualValues(t, 255, rgbaAt(out, 0, out.Height()-1).A)
}

func TestLabelCompositor_Errors(t *testing.T) {
	t.Parallel()

	c := whiteCanvas(t, 20)
	_, err := (&LabelCompositor{}).Apply(c, Label{Text: "x"}, Black, White)
	assert.ErrorIs(t, err, ErrMissing)
	assert.True(t, c.Released())

	c = whiteCanvas(t, 20)
	failing := &LabelCompositor{LoadFace: func(string, float64) (font.Face, error) {
		return nil, invalidf("no such font")
	}}
	_, err = failing.Apply(c, Label{Text: "x"}, Black, White)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.True(t, c.Released())
}
