package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrpainter/internal/logger"
	"github.com/cristianadrielbraun/qrpainter/internal/qrimage"
	"github.com/gin-gonic/gin"
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

// payloadText returns the normalized url parameter, or the raw text parameter.
func payloadText(c *gin.Context) (string, error) {
	if raw := strings.TrimSpace(c.Query("url")); raw != "" {
		return normalizeHTTPURL(raw)
	}
	text := c.Query("text")
	if text == "" {
		return "", fmt.Errorf("url or text parameter is required")
	}
	if len(text) > 4096 {
		return "", fmt.Errorf("text is too long")
	}
	return text, nil
}

// QRCodeHandler streams a rendered PNG.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	code, w, err := h.buildCode(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx, cancel := h.renderContext(c)
	defer cancel()

	data, err := w.Render(ctx, code)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	c.Data(http.StatusOK, w.ContentType(), data)
}

// QRDataURIHandler answers {"dataUri": "data:image/png;base64,..."}.
func (h *Handler) QRDataURIHandler(c *gin.Context) {
	code, w, err := h.buildCode(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx, cancel := h.renderContext(c)
	defer cancel()

	uri, err := qrimage.RenderDataURI(ctx, w, code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataUri": uri, "contentType": w.ContentType()})
}

// renderContext bounds a render by the configured timeout.
func (h *Handler) renderContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.cfg.RenderTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.cfg.RenderTimeout)
}

// buildCode turns query parameters into a QR code and the writer for the
// requested format.
func (h *Handler) buildCode(c *gin.Context) (*qrimage.QRCode, qrimage.Writer, error) {
	text, err := payloadText(c)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", qrimage.ErrInvalid, err)
	}

	// Parse format parameter (default to PNG)
	format := strings.ToLower(c.DefaultQuery("format", "png"))
	w, err := h.registry.ByExtension(format)
	if err != nil {
		return nil, nil, err
	}

	q := queryParams{c: c}
	size := q.intParam("size", 300)
	if size > h.cfg.MaxSize {
		return nil, nil, fmt.Errorf("%w: size %d exceeds the maximum of %d", qrimage.ErrInvalid, size, h.cfg.MaxSize)
	}
	margin := q.intParam("margin", 10)
	if margin > h.cfg.MaxSize {
		return nil, nil, fmt.Errorf("%w: margin %d exceeds the maximum of %d", qrimage.ErrInvalid, margin, h.cfg.MaxSize)
	}

	opts := []qrimage.Option{
		qrimage.WithRegistry(h.registry),
		qrimage.WithWriter(w),
		qrimage.WithSize(size),
		qrimage.WithMargin(margin),
		qrimage.WithRoundBlockSize(q.boolParam("roundBlockSize", true)),
		qrimage.WithValidation(q.boolParam("validate", h.cfg.Validate)),
	}

	level, err := qrimage.ParseErrorCorrectionLevel(c.DefaultQuery("ecLevel", "low"))
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, qrimage.WithErrorCorrectionLevel(level))

	fg, err := parseColorParam(c.Query("fg"), qrimage.Black)
	if err != nil {
		return nil, nil, err
	}
	if a := q.intParam("fgAlpha", -1); a >= 0 {
		fg.A = uint8(min(a, 255))
	}
	bg, err := parseColorParam(c.Query("bg"), qrimage.White)
	if err != nil {
		return nil, nil, err
	}
	if a := q.intParam("bgAlpha", -1); a >= 0 {
		bg.A = uint8(min(a, 255))
	}
	opts = append(opts, qrimage.WithForeground(fg), qrimage.WithBackground(bg))

	if c.DefaultQuery("colorMode", "flat") == "gradient" {
		opts = append(opts, qrimage.WithGradient(
			c.DefaultQuery("gradientStart", "#000000"),
			c.DefaultQuery("gradientEnd", "#ff0000"),
			c.DefaultQuery("gradientType", "vertical"),
		))
	}

	logo, ok, err := h.logoPath(c)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		logoWidth, logoHeight := q.intParam("logoWidth", 0), q.intParam("logoHeight", 0)
		if logoWidth > h.cfg.MaxSize || logoHeight > h.cfg.MaxSize {
			return nil, nil, fmt.Errorf("%w: logo %dx%d exceeds the maximum of %d", qrimage.ErrInvalid, logoWidth, logoHeight, h.cfg.MaxSize)
		}
		opts = append(opts, qrimage.WithLogo(logo, logoWidth, logoHeight))
	}

	if label := c.Query("label"); label != "" {
		align, err := qrimage.ParseLabelAlignment(c.DefaultQuery("labelAlign", "center"))
		if err != nil {
			return nil, nil, err
		}
		labelOpts := []qrimage.LabelOption{
			qrimage.LabelAlign(align),
			qrimage.LabelFontSize(float64(q.intParam("labelSize", qrimage.DefaultLabelFontSize))),
		}
		if h.cfg.FontPath != "" {
			labelOpts = append(labelOpts, qrimage.LabelFont(h.cfg.FontPath))
		}
		opts = append(opts, qrimage.WithLabel(label, labelOpts...))
	}

	if err := q.err(); err != nil {
		return nil, nil, err
	}
	code, err := qrimage.New(text, opts...)
	if err != nil {
		return nil, nil, err
	}
	return code, w, nil
}

// logoPath resolves logoUrl, or logoFile inside the upload directory.
// logoUrl is refused unless remote logos are enabled.
func (h *Handler) logoPath(c *gin.Context) (string, bool, error) {
	if u := c.Query("logoUrl"); u != "" {
		if !h.cfg.RemoteLogos {
			return "", false, fmt.Errorf("%w: remote logos are disabled", qrimage.ErrInvalid)
		}
		return u, true, nil
	}
	if c.DefaultQuery("centerLogo", "false") != "true" {
		return "", false, nil
	}
	name := c.Query("logoFile")
	if name == "" {
		name = "temp_logo.png"
	}
	return filepath.Join(h.cfg.LogoDir, filepath.Base(name)), true, nil
}

// parseColorParam parses a hex colour; "transparent" is a fully transparent
// black.
func parseColorParam(param string, defaultColor qrimage.Color) (qrimage.Color, error) {
	if param == "" {
		return defaultColor, nil
	}
	if strings.EqualFold(param, "transparent") {
		return qrimage.Color{A: qrimage.MaxAlpha}, nil
	}
	return qrimage.ParseHexColor(param)
}

// queryParams collects the first numeric parse failure.
type queryParams struct {
	c     *gin.Context
	first error
}

func (q *queryParams) intParam(key string, def int) int {
	v := q.c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if q.first == nil {
			q.first = fmt.Errorf("%w: %s must be an integer, got %q", qrimage.ErrInvalid, key, v)
		}
		return def
	}
	return n
}

func (q *queryParams) boolParam(key string, def bool) bool {
	v := q.c.Query(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		if q.first == nil {
			q.first = fmt.Errorf("%w: %s must be a boolean, got %q", qrimage.ErrInvalid, key, v)
		}
		return def
	}
	return b
}

func (q *queryParams) err() error { return q.first }

// statusFor maps a render error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, qrimage.ErrInvalid), errors.Is(err, qrimage.ErrUnsupportedExtension):
		return http.StatusBadRequest
	case errors.Is(err, qrimage.ErrMissing), errors.Is(err, qrimage.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "qr render failed", logger.Error(err))
	} else {
		h.log.InfoContext(c.Request.Context(), "qr request rejected", slog.Int("status", status), logger.Error(err))
	}

	body := gin.H{"error": err.Error()}
	var verr *qrimage.ValidationError
	if errors.As(err, &verr) {
		body["expected"] = verr.Expected
		body["actual"] = verr.Actual
	}
	c.JSON(status, body)
}
