// Package config holds runtime configuration: defaults, CLI flag parsing,
// env overrides, and validation. Validation covers every batch-setup error
// class so that nothing past it can abort an admitted batch.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// VideoPreset selects one of the built-in encode presets.
type VideoPreset string

const (
	PresetUltrafast VideoPreset = "ultrafast"
	PresetFast      VideoPreset = "fast"
	PresetMedium    VideoPreset = "medium" // Default.
	PresetSlow      VideoPreset = "slow"
	PresetVeryslow  VideoPreset = "veryslow"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then mutated by [ApplyEnv] and [ParseFlags] before being passed (by
// pointer) to packages that need it. Per-job option snapshots are cloned
// from it at admission time; nothing mutates it afterwards.
type Config struct {
	// Paths (directory from positional arg).
	InputDir  string
	OutputDir string // Empty: outputs land next to their inputs.

	// Selection.
	Pattern   string // Basename glob, default "*".
	Videos    bool   // Default: true.
	Images    bool   // Default: true.
	Recursive bool

	// Scheduling.
	Jobs int // Concurrency limit N. Default: 4.

	// Video encoding.
	Preset     VideoPreset
	CRF        int     // -1: use preset CRF.
	Bitrate    string  // Empty: CRF mode. Required for two-pass.
	Resolution string  // "WxH" scale target, empty: keep.
	FPS        float64 // 0: keep source rate.
	NoAudio    bool
	TwoPass    bool

	// Image encoding.
	ImageQuality int    // JPEG quality 1-100. Default: 85.
	ImageFormat  string // Output format override (jpg, png, ...). Empty: keep input format.
	MaxWidth     int    // 0: no bound.
	MaxHeight    int    // 0: no bound.

	// Behavior.
	Overwrite bool
	DryRun    bool
	CheckOnly bool // Run dependency diagnostics and exit.

	// Display and logging.
	Verbose   bool
	LogLevel  string // logrus level name. Default: "info".
	ColorMode ColorMode
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ApplyEnv] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Pattern:      "*",
		Videos:       true,
		Images:       true,
		Jobs:         4,
		Preset:       PresetMedium,
		CRF:          -1,
		ImageQuality: 85,
		LogLevel:     "info",
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks every setup-error class: concurrency limit, category
// selection, selection pattern, preset, and numeric bounds. A Config that
// passes Validate cannot cause a batch-level abort later.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("invalid job count %d (must be >= 1)", c.Jobs)
	}
	if !c.Videos && !c.Images {
		return errors.New("nothing selected: enable at least one of videos or images")
	}
	if c.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	if _, err := filepath.Match(c.Pattern, "probe"); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}
	if _, ok := presets[c.Preset]; !ok {
		return fmt.Errorf("unknown preset %q (use ultrafast, fast, medium, slow, or veryslow)", c.Preset)
	}
	if c.CRF != -1 && (c.CRF < 0 || c.CRF > 51) {
		return fmt.Errorf("invalid crf %d (must be 0-51)", c.CRF)
	}
	if c.Bitrate != "" {
		normalized, err := normalizeBitrate(c.Bitrate)
		if err != nil {
			return err
		}
		c.Bitrate = normalized
	}
	if c.FPS != 0 && (c.FPS < 0 || c.FPS > 120) {
		return fmt.Errorf("invalid fps %g (must be in (0, 120])", c.FPS)
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("invalid image quality %d (must be 1-100)", c.ImageQuality)
	}
	if c.ImageFormat != "" {
		normalized := strings.ToLower(strings.TrimPrefix(c.ImageFormat, "."))
		if !encodableImageFormats[normalized] {
			return fmt.Errorf("unsupported image format %q (use jpg, png, gif, tif, or bmp)", c.ImageFormat)
		}
		c.ImageFormat = normalized
	}
	if c.Resolution != "" {
		if _, _, err := ParseResolution(c.Resolution); err != nil {
			return err
		}
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always', or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need an input directory")
	}
	return nil
}

// encodableImageFormats lists the extensions the image encoder can write.
var encodableImageFormats = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"tif": true, "tiff": true, "bmp": true,
}

// standardWidths maps the common "<height>p" shorthand heights to their
// standard widths.
var standardWidths = map[int]int{
	240:  320,
	360:  480,
	480:  640,
	720:  1280,
	1080: 1920,
	1440: 2560,
	2160: 3840,
}

// ParseResolution accepts either "WxH" or a "<height>p" shorthand (720p,
// 1080p, ...) and returns positive integer dimensions.
func ParseResolution(s string) (width, height int, err error) {
	lower := strings.ToLower(s)

	if body, ok := strings.CutSuffix(lower, "p"); ok {
		h, convErr := strconv.Atoi(body)
		if convErr == nil {
			if w, known := standardWidths[h]; known {
				return w, h, nil
			}
			return 0, 0, fmt.Errorf("unknown resolution shorthand %q (use e.g. 720p, 1080p, or WIDTHxHEIGHT)", s)
		}
	}

	var w, h int
	if _, err := fmt.Sscanf(lower, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution %q (use WIDTHxHEIGHT, e.g. 1280x720, or a shorthand like 720p)", s)
	}
	return w, h, nil
}

// normalizeBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "2500", "2500k", "2500K", "2.5M". A bare number gets a
// "k" suffix; an existing unit suffix is kept as given.
func normalizeBitrate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errors.New("bitrate must not be empty")
	}
	body := s
	switch s[len(s)-1] {
	case 'k', 'K', 'm', 'M':
		body = s[:len(s)-1]
	default:
		s += "k"
	}
	var n float64
	if _, err := fmt.Sscanf(body, "%g", &n); err != nil || n <= 0 {
		return "", fmt.Errorf("invalid bitrate %q (use e.g. 2500k or 2.5M)", raw)
	}
	return s, nil
}
