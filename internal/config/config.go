package config

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Backends accepted in THUMBNAIL_BACKEND.
const (
	BackendGo         = "go"
	BackendMagickWand = "magickwand"
)

// Config holds settings read from the environment. Thumbnail geometry is not
// configurable.
type Config struct {
	LogLevel    string
	Backend     string
	Background  color.Color
	JPEGQuality int
}

// Load reads the configuration. Unset or unparsable values fall back to their
// defaults.
func Load() *Config {
	return &Config{
		LogLevel:    getEnv("THUMBNAIL_LOG_LEVEL", "info"),
		Backend:     strings.ToLower(getEnv("THUMBNAIL_BACKEND", BackendGo)),
		Background:  getEnvColor("THUMBNAIL_BACKGROUND", color.White),
		JPEGQuality: getEnvInt("THUMBNAIL_JPEG_QUALITY", 92),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvColor parses a "#rrggbb" hex colour.
func getEnvColor(key string, fallback color.Color) color.Color {
	if v := os.Getenv(key); v != "" {
		if !strings.HasPrefix(v, "#") {
			v = "#" + v
		}
		if c, err := colorful.Hex(v); err == nil {
			return c
		}
	}
	return fallback
}
