package qrimage

import (
	"math"
	"strings"
)

// GradientType selects the axis of a linear foreground gradient.
type GradientType int

const (
	GradientVertical GradientType = iota
	GradientHorizontal
)

func (t GradientType) String() string {
	switch t {
	case GradientVertical:
		return "vertical"
	case GradientHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Shapes accepted by older configurations but never rendered.
var unsupportedGradients = map[string]bool{
	"ellipse":   true,
	"ellipse2":  true,
	"circle":    true,
	"circle2":   true,
	"square":    true,
	"rectangle": true,
	"diamond":   true,
}

// ParseGradientType maps a configuration name onto a GradientType. Shapes
// other than vertical and horizontal are rejected with ErrInvalid.
func ParseGradientType(s string) (GradientType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "vertical":
		return GradientVertical, nil
	case "horizontal":
		return GradientHorizontal, nil
	}
	if unsupportedGradients[name] {
		return 0, invalidf("gradient type %q is not supported", s)
	}
	return 0, invalidf("unknown gradient type %q", s)
}

// Gradient is a linear two-stop foreground fill. Start and End are hex colours.
type Gradient struct {
	Start string
	End   string
	Type  GradientType
}

// GradientColors interpolates one colour per step along lineCount pixels:
// entry k is start + (end-start) * (k*step/lineCount), truncated per channel.
// It returns ceil(lineCount/step) entries, or only the start colour when
// lineCount or step is not positive.
func GradientColors(start, end string, lineCount, step float64) ([]Color, error) {
	c1, err := ParseHexColor(start)
	if err != nil {
		return nil, err
	}
	c2, err := ParseHexColor(end)
	if err != nil {
		return nil, err
	}
	if lineCount <= 0 || step <= 0 {
		return []Color{c1}, nil
	}

	colors := make([]Color, 0, int(math.Ceil(lineCount/step)))
	for k := 0; float64(k)*step < lineCount; k++ {
		t := float64(k) * step / lineCount
		colors = append(colors, Color{
			R: lerpChannel(c1.R, c2.R, t),
			G: lerpChannel(c1.G, c2.G, t),
			B: lerpChannel(c1.B, c2.B, t),
		})
	}
	return colors, nil
}

func lerpChannel(a, b uint8, t float64) uint8 {
	if a == b {
		return a
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// colorAt clamps row into the generated range.
func colorAt(colors []Color, row int) Color {
	if row >= len(colors) {
		row = len(colors) - 1
	}
	if row < 0 {
		row = 0
	}
	return colors[row]
}
