package qrimage

import "strings"

// Style configures how a module matrix is turned into an image.
type Style struct {
	// Size is the outer pixel width of the symbol, margin excluded.
	Size   int
	Margin int

	Foreground Color
	Background Color
	// Gradient replaces Foreground when set.
	Gradient *Gradient

	RoundBlockSize bool

	Logo  *Logo
	Label *Label

	ValidateResult bool
}

// DefaultStyle returns a 300px black-on-white style with a 10px margin.
func DefaultStyle() Style {
	return Style{
		Size:           300,
		Margin:         10,
		Foreground:     Black,
		Background:     White,
		RoundBlockSize: true,
	}
}

// Logo is an image overlaid at the centre of the symbol. Path is a local file
// or an http(s) URL. Zero Width or Height means "derive from the source".
type Logo struct {
	Path   string
	Width  int
	Height int
}

// LabelAlignment positions the label horizontally.
type LabelAlignment int

const (
	AlignCenter LabelAlignment = iota
	AlignLeft
	AlignRight
)

func (a LabelAlignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseLabelAlignment accepts "left", "center" and "right".
func ParseLabelAlignment(s string) (LabelAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return AlignCenter, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	default:
		return 0, invalidf("unknown label alignment %q", s)
	}
}

// Margins are label paddings in pixels.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Label is a line of text drawn in a band below the symbol. An empty FontPath
// selects the bundled font.
type Label struct {
	Text      string
	FontPath  string
	FontSize  float64
	Alignment LabelAlignment
	Margin    Margins
}

const DefaultLabelFontSize = 16

// DefaultLabelMargins leaves no gap above the text and 10px elsewhere.
var DefaultLabelMargins = Margins{Top: 0, Right: 10, Bottom: 10, Left: 10}
