// Package config provides configuration loading and management.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MaxUploadBytes is the fixed upload size limit (1 MiB).
const MaxUploadBytes = 1 << 20

// Capture backend names.
const (
	BackendWebKit = "webkit"
	BackendChrome = "chrome"
)

// Config represents the full configuration for codeshot.
type Config struct {
	// HTTP listen address, e.g. ":8080"
	Address string `yaml:"address" env:"ADDRESS"`

	// SecretKey signs the session cookie. When empty, a random key is
	// generated at startup, which invalidates sessions across restarts.
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`

	// Backend selects the capture engine: webkit (playwright) or chrome
	// (chromedp).
	Backend string `yaml:"backend" env:"CAPTURE_BACKEND"`

	// ChromePath overrides Chrome executable resolution for the chrome
	// backend.
	ChromePath string `yaml:"chrome_path" env:"CHROME_PATH"`

	// Style is the chroma style name used for highlighting.
	Style string `yaml:"style" env:"HIGHLIGHT_STYLE"`

	// Caption appends a filename caption bar under each screenshot.
	Caption bool `yaml:"caption" env:"CAPTION"`

	// RenderTimeoutMs bounds a single capture call.
	RenderTimeoutMs int `yaml:"render_timeout_ms" env:"RENDER_TIMEOUT_MS"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Address:         ":8080",
		Backend:         BackendWebKit,
		Style:           "monokai",
		RenderTimeoutMs: 60000,
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file at path, then environment variables. A .env file in the working
// directory is loaded first if present.
func Load(path string) (Config, error) {
	// Ignore error if no .env file exists
	_ = godotenv.Load()

	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SecretKey == "" {
		key, err := randomKey()
		if err != nil {
			return Config{}, err
		}
		cfg.SecretKey = key
	}

	if cfg.Backend != BackendWebKit && cfg.Backend != BackendChrome {
		return Config{}, fmt.Errorf("unknown capture backend %q (want %s or %s)",
			cfg.Backend, BackendWebKit, BackendChrome)
	}
	if cfg.RenderTimeoutMs <= 0 {
		return Config{}, fmt.Errorf("render_timeout_ms must be positive, got %d", cfg.RenderTimeoutMs)
	}

	return cfg, nil
}

// RenderTimeout returns the capture timeout as a duration.
func (c Config) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutMs) * time.Millisecond
}

// randomKey generates a 32-char hex key (16 random bytes).
func randomKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
