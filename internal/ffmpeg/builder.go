package ffmpeg

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pressline/squeeze/internal/config"
)

// Plan holds everything needed to build the ffmpeg argument vector for one
// job. It is part of the job's immutable option snapshot.
type Plan struct {
	Input       string
	Output      string
	Preset      config.PresetConfig
	Resolution  string  // "WxH", empty keeps source dimensions.
	FPS         float64 // 0 keeps source rate.
	NoAudio     bool
	PassLogFile string // Stats file prefix for two-pass; unique per job.
}

// TwoPass reports whether this plan requires the two-pass pipeline. Pass 1
// analysis is only meaningful when targeting a bitrate.
func (p *Plan) TwoPass() bool {
	return p.Preset.TwoPass && p.Preset.Bitrate != ""
}

// BuildArgs constructs the argument vector for a single-pass encode.
func BuildArgs(p *Plan) []string {
	return build(p, 0)
}

// BuildPassArgs constructs the argument vector for one pass of a two-pass
// encode. Pass 1 discards output into the null muxer and drops audio (it
// only gathers rate statistics); pass 2 writes the real output.
func BuildPassArgs(p *Plan, pass int) []string {
	return build(p, pass)
}

func build(p *Plan, pass int) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-progress", "pipe:1",
	)

	// --- Input ---
	args = append(args, "-i", p.Input)

	// --- Video ---
	args = append(args, "-c:v", p.Preset.Codec)
	if p.Preset.Speed != "" {
		args = append(args, "-preset", p.Preset.Speed)
	}
	if p.Preset.Bitrate != "" {
		args = append(args, "-b:v", p.Preset.Bitrate)
	} else {
		args = append(args, "-crf", strconv.Itoa(p.Preset.CRF))
	}
	if p.Resolution != "" {
		w, h, err := config.ParseResolution(p.Resolution)
		if err == nil {
			args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", w, h))
		}
	}
	if p.FPS > 0 {
		args = append(args, "-r", strconv.FormatFloat(p.FPS, 'g', -1, 64))
	}

	// --- Pass selection ---
	if pass > 0 {
		args = append(args, "-pass", strconv.Itoa(pass), "-passlogfile", p.PassLogFile)
	}

	// --- Audio ---
	if p.NoAudio || pass == 1 {
		args = append(args, "-an")
	} else {
		args = append(args, "-c:a", p.Preset.AudioCodec)
		if p.Preset.AudioBitrate != "" {
			args = append(args, "-b:a", p.Preset.AudioBitrate)
		}
	}

	// --- Output ---
	if pass == 1 {
		args = append(args, "-f", "null", os.DevNull)
	} else {
		args = append(args, p.Output)
	}
	return args
}
