package compress

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/pressline/squeeze/internal/batch"
	"github.com/pressline/squeeze/internal/config"
	"github.com/pressline/squeeze/internal/ffmpeg"
	"github.com/pressline/squeeze/internal/scan"
)

type recordingExecutor struct {
	calls [][]string
	err   error
}

func (r *recordingExecutor) Run(_ context.Context, argv []string, _ ffmpeg.LineSink) error {
	r.calls = append(r.calls, argv)
	return r.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testVideo(exec ffmpeg.Executor) *Video {
	return &Video{
		exec:  exec,
		probe: func(context.Context, string) (float64, bool) { return 120, true },
		log:   testLogger(),
	}
}

func videoJob(t *testing.T, dir string, mutate func(*batch.Options)) *batch.Job {
	t.Helper()
	input := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(input, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.InputDir = dir
	job := batch.NewJob(scan.File{Path: input, Category: scan.Video}, &cfg)
	if mutate != nil {
		mutate(&job.Options)
	}
	return &job
}

func TestVideoCompress_SinglePass(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{}
	job := videoJob(t, dir, nil)

	out, err := testVideo(exec).Compress(context.Background(), job)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !strings.HasSuffix(out, "movie_compressed_medium.mp4") {
		t.Errorf("output path = %q", out)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(exec.calls))
	}
	argv := exec.calls[0]
	if argv[0] != "ffmpeg" || argv[len(argv)-1] != out {
		t.Errorf("unexpected argv: %v", argv)
	}
}

func TestVideoCompress_TwoPassRunsTwoProcesses(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{}
	job := videoJob(t, dir, func(o *batch.Options) {
		o.Preset.Bitrate = "2500k"
		o.Preset.TwoPass = true
	})

	if _, err := testVideo(exec).Compress(context.Background(), job); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("got %d invocations, want 2", len(exec.calls))
	}
	if !argvHas(exec.calls[0], "-pass", "1") || !argvHas(exec.calls[1], "-pass", "2") {
		t.Errorf("pass ordering wrong: %v", exec.calls)
	}
}

func TestVideoCompress_MissingInput(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{}
	job := videoJob(t, dir, nil)
	os.Remove(job.Input)

	_, err := testVideo(exec).Compress(context.Background(), job)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if len(exec.calls) != 0 {
		t.Error("no process may be spawned for an invalid input")
	}
}

func TestVideoCompress_DryRunSpawnsNothing(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{}
	job := videoJob(t, dir, func(o *batch.Options) { o.DryRun = true })

	out, err := testVideo(exec).Compress(context.Background(), job)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if out == "" {
		t.Error("dry run must still resolve the output path")
	}
	if len(exec.calls) != 0 {
		t.Errorf("dry run spawned %d processes", len(exec.calls))
	}
}

func TestVideoCompress_OverwriteGuard(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{}
	job := videoJob(t, dir, nil)

	// Pre-create the output the job would produce.
	existing := filepath.Join(dir, "movie_compressed_medium.mp4")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := testVideo(exec).Compress(context.Background(), job)
	var existsErr *OutputExistsError
	if !errors.As(err, &existsErr) {
		t.Fatalf("got %v, want *OutputExistsError", err)
	}
	if len(exec.calls) != 0 {
		t.Error("no process may be spawned when the output exists")
	}
}

func TestVideoCompress_ProcessFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{err: &ffmpeg.ExitError{Name: "ffmpeg", Code: 1}}
	job := videoJob(t, dir, nil)

	// Simulate a partial output left behind by the failed encode.
	partial := filepath.Join(dir, "movie_compressed_medium.mp4")
	if err := os.WriteFile(partial, []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}
	job.Options.Overwrite = true

	_, err := testVideo(exec).Compress(context.Background(), job)
	var exitErr *ffmpeg.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("got %v, want *ffmpeg.ExitError", err)
	}
	if _, statErr := os.Stat(partial); !os.IsNotExist(statErr) {
		t.Error("partial output not removed after failure")
	}
}

func TestVideoCompress_UnknownDurationStillEncodes(t *testing.T) {
	dir := t.TempDir()
	exec := &recordingExecutor{}
	v := &Video{
		exec:  exec,
		probe: func(context.Context, string) (float64, bool) { return 0, false },
		log:   testLogger(),
	}
	job := videoJob(t, dir, nil)

	if _, err := v.Compress(context.Background(), job); err != nil {
		t.Fatalf("probe failure must not fail the job: %v", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("got %d invocations, want 1", len(exec.calls))
	}
}

func argvHas(argv []string, flag, value string) bool {
	for i := 0; i < len(argv)-1; i++ {
		if argv[i] == flag && argv[i+1] == value {
			return true
		}
	}
	return false
}
