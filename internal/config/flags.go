package config

// This file implements CLI flag parsing and help text. Negated flags
// (e.g. --no-videos) are applied after Parse so Config defaults hold
// unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// Version returns the build version string.
func Version() string { return version }

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (unknown flag,
// missing positional arg).
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("squeeze", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var negated negatedFlags

	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for compressed outputs (default: next to input)")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "basename glob to select files")
	fs.BoolVar(&cfg.Recursive, "recursive", cfg.Recursive, "descend into subdirectories")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "maximum number of files compressed concurrently")

	fs.BoolVar(&negated.noVideos, "no-videos", false, "skip video files")
	fs.BoolVar(&negated.noImages, "no-images", false, "skip image files")

	preset := fs.String("preset", string(cfg.Preset), "video preset: ultrafast, fast, medium, slow, veryslow")
	fs.IntVar(&cfg.CRF, "crf", cfg.CRF, "override preset CRF (0-51)")
	fs.StringVar(&cfg.Bitrate, "bitrate", cfg.Bitrate, "target video bitrate (e.g. 2500k); required for two-pass")
	fs.StringVar(&cfg.Resolution, "resolution", cfg.Resolution, "scale output to WIDTHxHEIGHT")
	fs.Float64Var(&cfg.FPS, "fps", cfg.FPS, "override output frame rate")
	fs.BoolVar(&cfg.NoAudio, "no-audio", cfg.NoAudio, "drop audio streams")
	fs.BoolVar(&cfg.TwoPass, "two-pass", cfg.TwoPass, "two-pass encode (needs --bitrate)")

	fs.IntVar(&cfg.ImageQuality, "quality", cfg.ImageQuality, "image quality (1-100)")
	fs.StringVar(&cfg.ImageFormat, "image-format", cfg.ImageFormat, "image output format: jpg, png, gif, tif, bmp (default: keep)")
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "bound image width, keeping aspect")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "bound image height, keeping aspect")

	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "replace existing output files")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "report planned work without compressing")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "check external tool availability and exit")

	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "debug logging")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	color := fs.String("color", string(cfg.ColorMode), "color output: auto, always, never")

	fs.BoolVar(&negated.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Preset = VideoPreset(*preset)
	cfg.ColorMode = ColorMode(*color)
	if negated.noVideos {
		cfg.Videos = false
	}
	if negated.noImages {
		cfg.Images = false
	}
	if cfg.Verbose && cfg.LogLevel == "info" {
		cfg.LogLevel = "debug"
	}

	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "squeeze v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags applied after Parse. These either invert
// a default (noVideos -> Videos=false) or trigger exit (showVersion).
type negatedFlags struct {
	noVideos    bool
	noImages    bool
	showVersion bool
}

// parsePositionalArgs takes the single required positional argument, the
// input directory. --check runs without one.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	rest := fs.Args()
	switch {
	case len(rest) == 0 && cfg.CheckOnly:
		return nil
	case len(rest) == 1:
		cfg.InputDir = NormalizeDirArg(rest[0])
		return nil
	case len(rest) == 0:
		return fmt.Errorf("missing input directory (see --help)")
	default:
		return fmt.Errorf("unexpected extra arguments: %v", rest[1:])
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `squeeze v%s - batch media compressor

Usage:
  squeeze [options] <directory>

Compresses every matching video and image under <directory>. Videos are
encoded with ffmpeg; images are re-encoded in-process. Up to --jobs files
are processed at once; one failure never stops the rest of the batch.

Options:
`, version)
	fs.PrintDefaults()
}
