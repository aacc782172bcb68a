package components

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// PreviewProps feeds the preview page.
type PreviewProps struct {
	Text    string
	DataURI string
	Size    int
	Error   string
	// Class is merged over the default image classes.
	Class string
}

const previewImageClass = "mx-auto rounded-lg border border-gray-200 p-2 shadow-sm"

// Preview renders a page showing a rendered QR code inline.
func Preview(p PreviewProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := twmerge.Merge(previewImageClass, p.Class)
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>qrcreator.link</title></head><body class="bg-gray-50 text-gray-900"><main class="mx-auto max-w-xl p-8 text-center">`); err != nil {
			return err
		}
		if p.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="text-red-600" role="alert">%s</p>`, templ.EscapeString(p.Error)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, `<img class="%s" src="%s" width="%d" alt="QR code for %s">`,
				templ.EscapeString(class), templ.EscapeString(p.DataURI), p.Size, templ.EscapeString(p.Text)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<p class="mt-4 break-all font-mono text-sm">%s</p></main></body></html>`, templ.EscapeString(p.Text))
		return err
	})
}
