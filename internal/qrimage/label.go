package qrimage

import (
	"image"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labelDPI matches the resolution font sizes are specified in.
const labelDPI = 96

// FaceLoader opens a font face at size points. An empty path selects the
// bundled Go Regular font.
type FaceLoader func(path string, size float64) (font.Face, error)

// LabelCompositor extends a canvas with a text band below the symbol.
type LabelCompositor struct {
	LoadFace FaceLoader
}

// NewLabelCompositor uses LoadFace.
func NewLabelCompositor() *LabelCompositor {
	return &LabelCompositor{LoadFace: LoadFace}
}

// ResolveFontPath returns the absolute, symlink-free path of a font file.
func ResolveFontPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", invalidf("invalid label font path: %s", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", invalidf("invalid label font path: %s", path)
	}
	fi, err := os.Stat(resolved)
	if err != nil || !fi.Mode().IsRegular() {
		return "", invalidf("invalid label font path: %s", path)
	}
	return resolved, nil
}

// LoadFace reads an OpenType or TrueType font from path.
func LoadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		resolved, err := ResolveFontPath(path)
		if err != nil {
			return nil, err
		}
		if data, err = os.ReadFile(resolved); err != nil {
			return nil, invalidf("read label font %s: %v", path, err)
		}
	}

	return parseFace(path, data, size, faceParsers...)
}

type faceParser func(data []byte, size float64) (font.Face, error)

// Some legacy TrueType files are rejected by the sfnt parser, so truetype is
// tried second.
var faceParsers = []faceParser{openTypeFace, trueTypeFace}

func parseFace(path string, data []byte, size float64, parsers ...faceParser) (font.Face, error) {
	var last error
	for _, parse := range parsers {
		face, err := parse(data, size)
		if err == nil {
			return face, nil
		}
		last = err
	}
	return nil, invalidf("parse label font %s: %v", path, last)
}

func openTypeFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: labelDPI, Hinting: font.HintingFull})
}

func trueTypeFace(data []byte, size float64) (font.Face, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: labelDPI, Hinting: font.HintingFull}), nil
}

// measureText returns the ink width and the ink height above the baseline.
func measureText(face font.Face, text string) (width, height int) {
	bounds, _ := font.BoundString(face, text)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (-bounds.Min.Y).Ceil()
}

// labelX returns the left edge of the text for the given alignment.
func labelX(align LabelAlignment, canvasWidth, boxWidth int, m Margins) int {
	switch align {
	case AlignLeft:
		return m.Left
	case AlignRight:
		return canvasWidth - boxWidth - m.Right
	default:
		return (canvasWidth - boxWidth) / 2
	}
}

// Apply returns a taller canvas with label drawn under the content of c. c is
// always released; fg and bg are drawn without alpha.
func (lc *LabelCompositor) Apply(c *Canvas, label Label, fg, bg Color) (*Canvas, error) {
	defer c.Release()

	if lc == nil || lc.LoadFace == nil {
		return nil, missingf("no font loader configured to measure label text")
	}
	size := label.FontSize
	if size <= 0 {
		size = DefaultLabelFontSize
	}
	face, err := lc.LoadFace(label.FontPath, size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	boxWidth, boxHeight := measureText(face, label.Text)

	width := c.Width()
	height := c.Height() + boxHeight + label.Margin.Top + label.Margin.Bottom
	out, err := NewCanvas(width, height, bg.Opaque())
	if err != nil {
		return nil, err
	}
	resample(out, image.Rect(0, 0, c.Width(), c.Height()), c)

	d := &font.Drawer{
		Dst:  out.img,
		Src:  image.NewUniform(fg.Opaque().NRGBA()),
		Face: face,
		Dot:  fixed.P(labelX(label.Alignment, width, boxWidth, label.Margin), height-label.Margin.Bottom),
	}
	d.DrawString(label.Text)
	return out, nil
}
