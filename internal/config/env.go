package config

// Env overrides are applied between defaults and CLI flags, so a flag
// always beats an env var, and an env var beats the built-in default.

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a .env file from the working directory when present.
// A missing file is not an error; a malformed one is.
func LoadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// ApplyEnv overlays SQUEEZE_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("SQUEEZE_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SQUEEZE_JOBS: invalid value %q", v)
		}
		cfg.Jobs = n
	}
	if v := os.Getenv("SQUEEZE_PRESET"); v != "" {
		cfg.Preset = VideoPreset(v)
	}
	if v := os.Getenv("SQUEEZE_IMAGE_QUALITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SQUEEZE_IMAGE_QUALITY: invalid value %q", v)
		}
		cfg.ImageQuality = n
	}
	if v := os.Getenv("SQUEEZE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = NormalizeDirArg(v)
	}
	if v := os.Getenv("SQUEEZE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SQUEEZE_COLOR"); v != "" {
		cfg.ColorMode = ColorMode(v)
	}
	return nil
}
