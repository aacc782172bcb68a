package qrimage

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ContentType is the media type of every image produced by this package.
const ContentType = "image/png"

// encodePNG serializes c and releases it.
func encodePNG(c *Canvas) ([]byte, error) {
	defer c.Release()

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, c.img); err != nil {
		return nil, generatef("encode png: %v", err)
	}
	return buf.Bytes(), nil
}

// Validate decodes a rendered PNG and checks that it carries text.
func Validate(data []byte, text string) error {
	decoded, err := Decode(data)
	if err != nil {
		return &ValidationError{Expected: text, Err: err}
	}
	if decoded != text {
		return &ValidationError{Expected: text, Actual: decoded}
	}
	return nil
}

// Decode reads the QR symbol in a PNG image.
func Decode(data []byte) (string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	// Transparent pixels would read as black.
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Rect, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Rect, img, img.Bounds().Min, draw.Over)

	bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(gozxing.NewLuminanceSourceFromImage(flat)))
	if err != nil {
		return "", err
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER:    true,
		gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}
