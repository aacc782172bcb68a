// Package config loads service settings from the environment, reading an
// optional .env file first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the service settings.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogoDir is where uploaded logos referenced by name are looked up.
	LogoDir string `env:"QR_LOGO_DIR" envDefault:"uploads"`
	// FontPath is the label font; empty selects the bundled font.
	FontPath      string        `env:"QR_FONT_PATH"`
	RenderTimeout time.Duration `env:"QR_RENDER_TIMEOUT" envDefault:"10s"`
	Validate      bool          `env:"QR_VALIDATE" envDefault:"false"`
	MaxSize       int           `env:"QR_MAX_SIZE" envDefault:"2000"`
	// RemoteLogos allows logoUrl to make the server fetch arbitrary URLs.
	RemoteLogos bool `env:"QR_REMOTE_LOGOS" envDefault:"false"`
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }

// Load reads the given .env files (default ".env"; missing files are
// ignored) and parses the environment into a Config.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.MaxSize <= 0 {
		return Config{}, fmt.Errorf("QR_MAX_SIZE must be positive, got %d", cfg.MaxSize)
	}
	return cfg, nil
}
