// Package check validates external tool availability before a batch starts
// and implements the --check diagnostics flow.
package check

import (
	"errors"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// CheckDeps fails fast when video jobs are selected but the external
// encoder tooling is missing. Image jobs run in-process and need nothing.
func CheckDeps(videos bool) error {
	if !videos {
		return nil
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive --check flow: prints availability of the
// external tools. Informational only; it does not stop on failure.
func RunCheck(log *logrus.Logger) {
	log.Info("=== System Check ===")

	if path, err := exec.LookPath("ffmpeg"); err == nil {
		log.Infof("ffmpeg:  %s", path)
	} else {
		log.Error("ffmpeg:  not found (video compression unavailable)")
	}

	if path, err := exec.LookPath("ffprobe"); err == nil {
		log.Infof("ffprobe: %s", path)
	} else {
		log.Error("ffprobe: not found (progress will be indeterminate)")
	}

	log.Info("images:  compressed in-process, no external tools needed")
}
