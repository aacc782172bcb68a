package qrimage

import (
	"context"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// ErrorCorrectionLevel is the share of the symbol that may be damaged and
// still decode.
type ErrorCorrectionLevel int

const (
	LevelLow ErrorCorrectionLevel = iota
	LevelMedium
	LevelQuartile
	LevelHigh
)

func (l ErrorCorrectionLevel) String() string {
	switch l {
	case LevelMedium:
		return "medium"
	case LevelQuartile:
		return "quartile"
	case LevelHigh:
		return "high"
	default:
		return "low"
	}
}

// ParseErrorCorrectionLevel accepts the level names and their initials.
func ParseErrorCorrectionLevel(s string) (ErrorCorrectionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "low", "l":
		return LevelLow, nil
	case "medium", "m":
		return LevelMedium, nil
	case "quartile", "q":
		return LevelQuartile, nil
	case "high", "h":
		return LevelHigh, nil
	default:
		return 0, invalidf("unknown error correction level %q", s)
	}
}

func (l ErrorCorrectionLevel) encoderLevel() qrcode.EncodeOption {
	switch l {
	case LevelMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case LevelQuartile:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelHigh:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	}
}

// QRCode is a text payload together with its rendering style and writer.
type QRCode struct {
	text     string
	level    ErrorCorrectionLevel
	style    Style
	registry *Registry
	writer   Writer
}

// Option configures a QRCode.
type Option func(*QRCode) error

// New returns a QR code for text with DefaultStyle, low error correction and
// the PNG writer.
func New(text string, opts ...Option) (*QRCode, error) {
	q := &QRCode{
		text:     text,
		level:    LevelLow,
		style:    DefaultStyle(),
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// WithSize sets the symbol size in pixels, margin excluded.
func WithSize(size int) Option {
	return func(q *QRCode) error {
		if size <= 0 {
			return invalidf("size must be positive, got %d", size)
		}
		q.style.Size = size
		return nil
	}
}

// WithMargin sets the margin around the symbol.
func WithMargin(margin int) Option {
	return func(q *QRCode) error {
		if margin < 0 {
			return invalidf("margin must not be negative, got %d", margin)
		}
		q.style.Margin = margin
		return nil
	}
}

// WithForeground sets the module colour.
func WithForeground(c Color) Option {
	return func(q *QRCode) error {
		if c.A > MaxAlpha {
			return invalidf("foreground alpha %d out of range 0-%d", c.A, MaxAlpha)
		}
		q.style.Foreground = c
		return nil
	}
}

// WithBackground sets the background colour.
func WithBackground(c Color) Option {
	return func(q *QRCode) error {
		if c.A > MaxAlpha {
			return invalidf("background alpha %d out of range 0-%d", c.A, MaxAlpha)
		}
		q.style.Background = c
		return nil
	}
}

// WithGradient fills modules with a linear gradient from start to end (hex
// colours). kind is "vertical" or "horizontal".
func WithGradient(start, end, kind string) Option {
	return func(q *QRCode) error {
		typ, err := ParseGradientType(kind)
		if err != nil {
			return err
		}
		if _, err := ParseHexColor(start); err != nil {
			return err
		}
		if _, err := ParseHexColor(end); err != nil {
			return err
		}
		q.style.Gradient = &Gradient{Start: start, End: end, Type: typ}
		return nil
	}
}

// WithRoundBlockSize toggles integer block sizes.
func WithRoundBlockSize(round bool) Option {
	return func(q *QRCode) error {
		q.style.RoundBlockSize = round
		return nil
	}
}

// WithErrorCorrectionLevel sets the encoder's error correction level.
func WithErrorCorrectionLevel(l ErrorCorrectionLevel) Option {
	return func(q *QRCode) error {
		if l < LevelLow || l > LevelHigh {
			return invalidf("unknown error correction level %d", int(l))
		}
		q.level = l
		return nil
	}
}

// WithLogo overlays the image at path (file or URL). Zero width or height
// derives the dimension from the image.
func WithLogo(path string, width, height int) Option {
	return func(q *QRCode) error {
		if path == "" {
			return invalidf("logo path is empty")
		}
		if width < 0 || height < 0 {
			return invalidf("logo size %dx%d is invalid", width, height)
		}
		q.style.Logo = &Logo{Path: path, Width: width, Height: height}
		return nil
	}
}

// LabelOption adjusts a label added with WithLabel.
type LabelOption func(*Label) error

// LabelFont sets the label font. The path must resolve to a file.
func LabelFont(path string) LabelOption {
	return func(l *Label) error {
		resolved, err := ResolveFontPath(path)
		if err != nil {
			return err
		}
		l.FontPath = resolved
		return nil
	}
}

// LabelFontSize sets the font size in points.
func LabelFontSize(size float64) LabelOption {
	return func(l *Label) error {
		if size <= 0 {
			return invalidf("label font size must be positive, got %v", size)
		}
		l.FontSize = size
		return nil
	}
}

// LabelAlign sets the horizontal alignment.
func LabelAlign(a LabelAlignment) LabelOption {
	return func(l *Label) error {
		if a < AlignCenter || a > AlignRight {
			return invalidf("unknown label alignment %d", int(a))
		}
		l.Alignment = a
		return nil
	}
}

// LabelMargin sets the space around the label text.
func LabelMargin(m Margins) LabelOption {
	return func(l *Label) error {
		if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
			return invalidf("label margins must not be negative")
		}
		l.Margin = m
		return nil
	}
}

// WithLabel draws text below the symbol, centred in the bundled font at 16pt
// unless overridden.
func WithLabel(text string, opts ...LabelOption) Option {
	return func(q *QRCode) error {
		l := &Label{
			Text:      text,
			FontSize:  DefaultLabelFontSize,
			Alignment: AlignCenter,
			Margin:    DefaultLabelMargins,
		}
		for _, opt := range opts {
			if err := opt(l); err != nil {
				return err
			}
		}
		q.style.Label = l
		return nil
	}
}

// WithValidation decodes every rendered image and fails if it does not read
// back as the source text.
func WithValidation(validate bool) Option {
	return func(q *QRCode) error {
		q.style.ValidateResult = validate
		return nil
	}
}

// WithRegistry replaces the writer registry.
func WithRegistry(r *Registry) Option {
	return func(q *QRCode) error {
		if r == nil {
			return invalidf("nil writer registry")
		}
		q.registry = r
		return nil
	}
}

// WithWriter selects w regardless of the registry.
func WithWriter(w Writer) Option {
	return func(q *QRCode) error {
		q.writer = w
		return nil
	}
}

func (q *QRCode) Text() string                { return q.text }
func (q *QRCode) Style() Style                { return q.style }
func (q *QRCode) Level() ErrorCorrectionLevel { return q.level }

// Matrix encodes the text into a module matrix without a quiet zone.
func (q *QRCode) Matrix() (Matrix, error) {
	enc, err := qrcode.NewWith(q.text, q.level.encoderLevel())
	if err != nil {
		return nil, invalidf("encode %q: %v", q.text, err)
	}
	var capture matrixCapture
	if err := enc.Save(&capture); err != nil {
		return nil, invalidf("encode %q: %v", q.text, err)
	}
	return capture.m, nil
}

// matrixCapture is a qrcode.Writer that keeps the matrix instead of drawing it.
type matrixCapture struct {
	m Matrix
}

func (mc *matrixCapture) Write(mat qrcode.Matrix) error {
	m := make(Matrix, mat.Height())
	for y := range m {
		m[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		m[y][x] = v.IsSet()
	})
	mc.m = m
	return nil
}

func (mc *matrixCapture) Close() error { return nil }

// SetWriterByName selects a registered writer by name.
func (q *QRCode) SetWriterByName(name string) error {
	w, err := q.registry.ByName(name)
	if err != nil {
		return err
	}
	q.writer = w
	return nil
}

// SetWriterByExtension selects the first registered writer handling ext.
func (q *QRCode) SetWriterByExtension(ext string) error {
	w, err := q.registry.ByExtension(ext)
	if err != nil {
		return err
	}
	q.writer = w
	return nil
}

// SetWriterByPath selects a writer from the extension of path.
func (q *QRCode) SetWriterByPath(path string) error {
	w, err := q.registry.ByPath(path)
	if err != nil {
		return err
	}
	q.writer = w
	return nil
}

// Writer returns the selected writer, falling back to the registry default.
func (q *QRCode) Writer() (Writer, error) {
	if q.writer != nil {
		return q.writer, nil
	}
	return q.registry.Default()
}

// Bytes renders the code with its writer.
func (q *QRCode) Bytes(ctx context.Context) ([]byte, error) {
	w, err := q.Writer()
	if err != nil {
		return nil, err
	}
	return w.Render(ctx, q)
}

// DataURI renders the code as a data: URI.
func (q *QRCode) DataURI(ctx context.Context) (string, error) {
	w, err := q.Writer()
	if err != nil {
		return "", err
	}
	return RenderDataURI(ctx, w, q)
}

// WriteFile renders the code into path.
func (q *QRCode) WriteFile(ctx context.Context, path string) error {
	w, err := q.Writer()
	if err != nil {
		return err
	}
	return WriteFile(ctx, w, q, path)
}

// ContentType is the media type produced by the selected writer.
func (q *QRCode) ContentType() (string, error) {
	w, err := q.Writer()
	if err != nil {
		return "", err
	}
	return w.ContentType(), nil
}
