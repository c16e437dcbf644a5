package config

import (
	"log"
	"os"
	"strconv"
)

// ExportConfig carries the tunable constants of the export pipeline. The
// threshold and scale have no derivation beyond calibration, so they stay
// configurable rather than hard-coded in the crop code.
type ExportConfig struct {
	// NearWhiteThreshold is the per-channel brightness (0..255) at or above
	// which a pixel counts as blank background during crop detection.
	NearWhiteThreshold uint8
	// CaptureScale is the oversampling factor applied when rasterizing the
	// preview for print sharpness.
	CaptureScale float64
	// OutputDir is where server-side exports are written.
	OutputDir string
}

type Config struct {
	Port         string
	Env          string
	TemplatesDir string
	Export       ExportConfig
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.TemplatesDir = getEnv("TEMPLATES_DIR", "templates")
	cfg.Export.NearWhiteThreshold = uint8(parseInt("EXPORT_WHITE_THRESHOLD", 250))
	cfg.Export.CaptureScale = parseFloat("EXPORT_CAPTURE_SCALE", 1.5)
	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "exports")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func parseFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid float for %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
