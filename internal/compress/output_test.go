package compress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input, outputDir, suffix, ext string
		want                          string
	}{
		{"/in/movie.mkv", "", "_compressed_medium", "mp4", "/in/movie_compressed_medium.mp4"},
		{"/in/movie.mkv", "/out", "_compressed_medium", "mp4", "/out/movie_compressed_medium.mp4"},
		{"/in/photo.jpg", "", "_compressed", "", "/in/photo_compressed.jpg"},
		{"/in/noext", "", "_compressed", "", "/in/noext_compressed.out"},
	}
	for _, c := range cases {
		got := outputPath(c.input, c.outputDir, c.suffix, c.ext)
		if got != c.want {
			t.Errorf("outputPath(%q, %q, %q, %q) = %q, want %q",
				c.input, c.outputDir, c.suffix, c.ext, got, c.want)
		}
	}
}

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "in.mp4")
	if err := os.WriteFile(good, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := validateInput(good); err != nil {
		t.Errorf("valid file rejected: %v", err)
	}

	var valErr *ValidationError
	if err := validateInput(filepath.Join(dir, "missing.mp4")); !errors.As(err, &valErr) {
		t.Errorf("missing file: got %v, want *ValidationError", err)
	}
	if err := validateInput(dir); !errors.As(err, &valErr) {
		t.Errorf("directory: got %v, want *ValidationError", err)
	}
}

func TestPrepareOutput_OverwriteGuard(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	var existsErr *OutputExistsError
	if err := prepareOutput(existing, false); !errors.As(err, &existsErr) {
		t.Errorf("got %v, want *OutputExistsError", err)
	}
	if err := prepareOutput(existing, true); err != nil {
		t.Errorf("overwrite allowed but got %v", err)
	}
}

func TestPrepareOutput_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "deeper", "out.mp4")

	if err := prepareOutput(out, false); err != nil {
		t.Fatalf("prepareOutput: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}
