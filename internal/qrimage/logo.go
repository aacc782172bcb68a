package qrimage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	mimeSVG      = "image/svg+xml"
	maxLogoBytes = 20 << 20
)

// Sniffer reports the media type of a file's content.
type Sniffer func(data []byte) string

// DetectMIME sniffs content with github.com/gabriel-vasile/mimetype.
func DetectMIME(data []byte) string { return mimetype.Detect(data).String() }

// LogoCompositor loads logos from disk or over HTTP and stamps them onto the
// centre of a canvas.
type LogoCompositor struct {
	Client *http.Client
	Sniff  Sniffer
}

// NewLogoCompositor uses http.DefaultClient and DetectMIME.
func NewLogoCompositor() *LogoCompositor {
	return &LogoCompositor{Client: http.DefaultClient, Sniff: DetectMIME}
}

type logoSource struct {
	data     []byte
	mimeType string
}

// Apply draws logo onto c and returns c. It takes ownership of c: on error the
// canvas is released.
func (lc *LogoCompositor) Apply(ctx context.Context, c *Canvas, logo Logo) (_ *Canvas, err error) {
	defer func() {
		if err != nil {
			c.Release()
		}
	}()

	if lc == nil {
		return nil, missingf("no logo compositor configured")
	}
	src, err := lc.load(ctx, logo.Path)
	if err != nil {
		return nil, err
	}

	if src.mimeType == mimeSVG {
		if logo.Width <= 0 || logo.Height <= 0 {
			return nil, missingf("SVG logos require an explicit width and height")
		}
		if err := checkLogoSize(logo.Width, logo.Height); err != nil {
			return nil, err
		}
	}

	img, err := decodeLogo(src, logo.Width, logo.Height)
	if err != nil {
		return nil, err
	}

	w, h := logoSize(img.Bounds().Dx(), img.Bounds().Dy(), logo.Width, logo.Height)
	if w <= 0 || h <= 0 {
		return c, nil
	}
	if err := checkLogoSize(w, h); err != nil {
		return nil, err
	}
	if w != img.Bounds().Dx() || h != img.Bounds().Dy() {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	x, y := logoOrigin(c.Width(), c.Height(), w, h)
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), img, img.Bounds().Min, draw.Over)
	return c, nil
}

// logoSize keeps the source size for unset dimensions; a width without a
// height scales the height by the same factor.
func logoSize(srcW, srcH, width, height int) (int, int) {
	if width <= 0 {
		width = srcW
	}
	if height <= 0 {
		if srcW == 0 {
			return width, 0
		}
		height = int(float64(srcH) * (float64(width) / float64(srcW)))
	}
	return width, height
}

// checkLogoSize rejects logos that would not fit in a single canvas
// allocation.
func checkLogoSize(w, h int) error {
	if w > 0 && h > 0 && w > maxCanvasPixels/h {
		return generatef("logo %dx%d is too large", w, h)
	}
	return nil
}

// logoOrigin centres a w×h logo on a canvasW×canvasH canvas.
func logoOrigin(canvasW, canvasH, w, h int) (int, int) {
	x := float64(canvasW)/2 - float64(w)/2
	y := float64(canvasH)/2 - float64(h)/2
	return int(x), int(y)
}

func (lc *LogoCompositor) load(ctx context.Context, path string) (logoSource, error) {
	if isURL(path) {
		return lc.fetch(ctx, path)
	}
	return lc.read(path)
}

func (lc *LogoCompositor) read(path string) (logoSource, error) {
	if lc.Sniff == nil {
		return logoSource{}, missingf("no content sniffer configured to determine the logo mime type")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return logoSource{}, invalidf("could not determine mime type of logo %q: %v", path, err)
	}
	mt := baseMediaType(lc.Sniff(data))
	if mt == "" {
		return logoSource{}, invalidf("could not determine mime type of logo %q", path)
	}
	if !strings.HasPrefix(mt, "image/") {
		return logoSource{}, generatef("logo path %q is not an image (%s)", path, mt)
	}
	return logoSource{data: data, mimeType: normalizeImageType(mt)}, nil
}

func (lc *LogoCompositor) fetch(ctx context.Context, rawURL string) (logoSource, error) {
	client := lc.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return logoSource{}, invalidf("invalid logo URL %q: %v", rawURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return logoSource{}, fmt.Errorf("%w: content type could not be determined for logo URL %q: %w", ErrInvalid, rawURL, err)
	}
	defer resp.Body.Close()

	mt := baseMediaType(resp.Header.Get("Content-Type"))
	if resp.StatusCode/100 != 2 || mt == "" {
		return logoSource{}, invalidf("content type could not be determined for logo URL %q", rawURL)
	}
	if !strings.HasPrefix(mt, "image/") {
		return logoSource{}, generatef("logo URL %q is not an image (%s)", rawURL, mt)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return logoSource{}, generatef("read logo %q: %v", rawURL, err)
	}
	return logoSource{data: data, mimeType: normalizeImageType(mt)}, nil
}

func decodeLogo(src logoSource, width, height int) (image.Image, error) {
	if src.mimeType == mimeSVG {
		return rasterizeSVG(src.data, width, height)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src.data))
	if err != nil {
		return nil, generatef("decode logo (%s): %v", src.mimeType, err)
	}
	if err := checkLogoSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(src.data))
	if err != nil {
		return nil, generatef("decode logo (%s): %v", src.mimeType, err)
	}
	return img, nil
}

func rasterizeSVG(data []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, generatef("decode SVG logo: %v", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func baseMediaType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(v, ";", 2)[0]))
	}
	return mt
}

// "image/svg" yields invisible images downstream.
func normalizeImageType(mt string) string {
	if mt == "image/svg" {
		return mimeSVG
	}
	return mt
}
