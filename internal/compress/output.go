// Package compress implements the per-category Compressor capability:
// videos through an external ffmpeg process, images in-process.
package compress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError reports an input file that cannot be processed: missing,
// unreadable, or not a regular file. It is a per-job failure.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
}

// OutputExistsError reports a refusal to clobber an existing output when
// overwrite is disabled.
type OutputExistsError struct {
	Path string
}

func (e *OutputExistsError) Error() string {
	return fmt.Sprintf("output already exists: %s (use --overwrite)", e.Path)
}

// validateInput checks the input exists and is a readable regular file.
func validateInput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Path: path, Reason: err.Error()}
	}
	if !fi.Mode().IsRegular() {
		return &ValidationError{Path: path, Reason: "not a regular file"}
	}
	f, err := os.Open(path)
	if err != nil {
		return &ValidationError{Path: path, Reason: err.Error()}
	}
	f.Close()
	return nil
}

// outputPath builds "<stem><suffix>.<ext>" in outputDir (or next to the
// input when outputDir is empty). An empty ext keeps the input's extension.
func outputPath(input, outputDir, suffix, ext string) string {
	base := filepath.Base(input)
	inExt := filepath.Ext(base)
	stem := strings.TrimSuffix(base, inExt)

	if ext == "" {
		ext = strings.TrimPrefix(inExt, ".")
	}
	if ext == "" {
		ext = "out"
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, stem+suffix+"."+ext)
}

// prepareOutput enforces the overwrite guard and creates the parent
// directory of path.
func prepareOutput(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return &OutputExistsError{Path: path}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
