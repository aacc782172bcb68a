package handlers

import (
	"log/slog"
	"time"

	"github.com/cristianadrielbraun/qrpainter/internal/config"
	"github.com/cristianadrielbraun/qrpainter/internal/logger"
	"github.com/cristianadrielbraun/qrpainter/internal/qrimage"
	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by the HTTP handlers.
type Handler struct {
	cfg      config.Config
	log      *slog.Logger
	registry *qrimage.Registry
}

// New returns a Handler whose PNG writer logs through log.
func New(cfg config.Config, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("handlers"))
	png := qrimage.NewPngWriter(qrimage.WithLogger(log.With(logger.Component("qrimage"))))
	return &Handler{
		cfg:      cfg,
		log:      log,
		registry: qrimage.NewRegistry(png),
	}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.PreviewPage)

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/qr/datauri", h.QRDataURIHandler)
	}
}

// RequestLogger logs one record per request through log.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.InfoContext(c.Request.Context(), "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			logger.Duration(time.Since(start)),
		)
	}
}
