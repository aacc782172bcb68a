package handlers

import (
	"net/http"

	"github.com/cristianadrielbraun/qrpainter/internal/logger"
	"github.com/cristianadrielbraun/qrpainter/internal/qrimage"
	"github.com/cristianadrielbraun/qrpainter/web/components"
	"github.com/gin-gonic/gin"
)

// PreviewPage renders an HTML page with the QR code for the query inlined as a
// data URI. Without a url or text parameter the site URL is shown.
func (h *Handler) PreviewPage(c *gin.Context) {
	// gin caches the parsed query on first use, so rewrite it before any c.Query.
	if q := c.Request.URL.Query(); q.Get("url") == "" && q.Get("text") == "" {
		q.Set("url", components.LinkData{Domain: c.Request.Host}.URL())
		c.Request.URL.RawQuery = q.Encode()
	}

	props := components.PreviewProps{Class: c.Query("class")}
	status := http.StatusOK

	code, w, err := h.buildCode(c)
	if err == nil {
		props.Text = code.Text()
		props.Size = code.Style().Size
		ctx, cancel := h.renderContext(c)
		defer cancel()
		props.DataURI, err = qrimage.RenderDataURI(ctx, w, code)
	}
	if err != nil {
		status = statusFor(err)
		props.Error = err.Error()
		h.log.InfoContext(c.Request.Context(), "preview render failed", logger.Error(err))
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := components.Preview(props).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.ErrorContext(c.Request.Context(), "preview write failed", logger.Error(err))
	}
}
