// Package qrimage renders QR module matrices to PNG.
//
// A render is a straight pipeline: the geometry is derived from the matrix
// size, the modules are rasterized (solid or with a linear gradient), an
// optional logo is stamped in the centre, an optional label band is appended
// below, and the result is PNG encoded and optionally decoded again to check
// it still carries the source text.
//
//	code, err := qrimage.New("https://qrcreator.link",
//		qrimage.WithSize(300),
//		qrimage.WithGradient("#000", "#f00", "vertical"),
//		qrimage.WithLabel("qrcreator.link", qrimage.LabelAlign(qrimage.AlignLeft)),
//	)
//	if err != nil {
//		return err
//	}
//	png, err := code.Bytes(ctx)
//
// Each stage owns the canvas it is handed and releases it before returning,
// on success and on error.
package qrimage
