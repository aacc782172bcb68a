package main

import (
	"log"
	"os"

	"github.com/cristianadrielbraun/qrpainter/internal/config"
	"github.com/cristianadrielbraun/qrpainter/internal/handlers"
	"github.com/cristianadrielbraun/qrpainter/internal/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(os.Stdout, cfg.LogLevel)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(handlers.RequestLogger(lg))
	r.Use(gin.Recovery())

	handlers.New(cfg, lg).Register(r)

	lg.Info("qrcreator.link listening", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		lg.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
