package qrimage

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cristianadrielbraun/qrpainter/internal/logger"
)

// Writer turns a QR code into an encoded image.
type Writer interface {
	Name() string
	ContentType() string
	SupportedExtensions() []string
	Render(ctx context.Context, code *QRCode) ([]byte, error)
}

// SupportsExtension reports whether w handles files with extension ext
// (with or without the leading dot).
func SupportsExtension(w Writer, ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(w.SupportedExtensions(), ext)
}

// PngWriter renders QR codes to PNG.
type PngWriter struct {
	logos  *LogoCompositor
	labels *LabelCompositor
	log    *slog.Logger
}

// PngOption configures a PngWriter.
type PngOption func(*PngWriter)

// WithLogger sets the logger used for render tracing.
func WithLogger(l *slog.Logger) PngOption {
	return func(w *PngWriter) {
		if l != nil {
			w.log = l
		}
	}
}

// WithLogoCompositor replaces the default logo loader.
func WithLogoCompositor(lc *LogoCompositor) PngOption {
	return func(w *PngWriter) { w.logos = lc }
}

// WithLabelCompositor replaces the default label renderer.
func WithLabelCompositor(lc *LabelCompositor) PngOption {
	return func(w *PngWriter) { w.labels = lc }
}

// NewPngWriter returns a PNG writer with the default logo and label
// compositors and a discarding logger.
func NewPngWriter(opts ...PngOption) *PngWriter {
	w := &PngWriter{
		logos:  NewLogoCompositor(),
		labels: NewLabelCompositor(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *PngWriter) Name() string                  { return "png" }
func (w *PngWriter) ContentType() string           { return ContentType }
func (w *PngWriter) SupportedExtensions() []string { return []string{"png"} }

// Render encodes code and draws it.
func (w *PngWriter) Render(ctx context.Context, code *QRCode) ([]byte, error) {
	m, err := code.Matrix()
	if err != nil {
		return nil, err
	}
	return w.RenderMatrix(ctx, code.Text(), m, code.Style())
}

// RenderMatrix draws an already encoded matrix. text is only used when
// style.ValidateResult is set.
func (w *PngWriter) RenderMatrix(ctx context.Context, text string, m Matrix, style Style) ([]byte, error) {
	start := time.Now()

	blockCount, err := m.Size()
	if err != nil {
		return nil, err
	}
	geo := CalculateGeometry(blockCount, style.Size, style.Margin, style.RoundBlockSize)
	w.log.DebugContext(ctx, "qr geometry",
		slog.Int("block_count", geo.BlockCount),
		slog.Float64("block_size", geo.BlockSize),
		slog.Int("outer_width", geo.OuterWidth),
		slog.Float64("margin_left", geo.MarginLeft),
	)

	c, err := Rasterize(m, geo, style)
	if err != nil {
		return nil, err
	}

	if style.Logo != nil {
		if c, err = w.logos.Apply(ctx, c, *style.Logo); err != nil {
			w.log.DebugContext(ctx, "qr logo failed", slog.String("logo", style.Logo.Path), logger.Error(err))
			return nil, err
		}
	}

	if style.Label != nil {
		if c, err = w.labels.Apply(c, *style.Label, style.Foreground, style.Background); err != nil {
			w.log.DebugContext(ctx, "qr label failed", logger.Error(err))
			return nil, err
		}
	}

	data, err := encodePNG(c)
	if err != nil {
		return nil, err
	}

	if style.ValidateResult {
		if err := Validate(data, text); err != nil {
			w.log.DebugContext(ctx, "qr validation failed", logger.Error(err))
			return nil, err
		}
	}

	w.log.DebugContext(ctx, "qr rendered", slog.Int("bytes", len(data)), logger.Duration(time.Since(start)))
	return data, nil
}

// RenderDataURI renders code as a base64 data URI.
func RenderDataURI(ctx context.Context, w Writer, code *QRCode) (string, error) {
	data, err := w.Render(ctx, code)
	if err != nil {
		return "", err
	}
	return "data:" + w.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// WriteFile renders code into path. Write failures are returned as the
// underlying os error.
func WriteFile(ctx context.Context, w Writer, code *QRCode, path string) error {
	data, err := w.Render(ctx, code)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
