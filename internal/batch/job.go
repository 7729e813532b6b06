package batch

import (
	"context"

	"github.com/google/uuid"

	"github.com/pressline/squeeze/internal/config"
	"github.com/pressline/squeeze/internal/scan"
)

// Options is the per-job option snapshot. It is copied by value at
// admission time and never mutated afterwards, so tasks read it without
// synchronization.
type Options struct {
	OutputDir string // Empty: output next to input.
	Overwrite bool
	DryRun    bool

	// Video.
	Preset     config.PresetConfig
	Resolution string
	FPS        float64
	NoAudio    bool

	// Image.
	ImageQuality int
	ImageFormat  string // Empty: keep the input's format.
	MaxWidth     int
	MaxHeight    int
}

// Job is the unit of work: one input file with its resolved options and
// category. It is owned exclusively by the task executing it.
type Job struct {
	ID       uuid.UUID
	Input    string
	Category scan.Category
	Options  Options
}

// NewJob snapshots the batch-level settings into an admitted job.
func NewJob(file scan.File, cfg *config.Config) Job {
	return Job{
		ID:       uuid.New(),
		Input:    file.Path,
		Category: file.Category,
		Options: Options{
			OutputDir:    cfg.OutputDir,
			Overwrite:    cfg.Overwrite,
			DryRun:       cfg.DryRun,
			Preset:       cfg.ResolvePreset(),
			Resolution:   cfg.Resolution,
			FPS:          cfg.FPS,
			NoAudio:      cfg.NoAudio,
			ImageQuality: cfg.ImageQuality,
			ImageFormat:  cfg.ImageFormat,
			MaxWidth:     cfg.MaxWidth,
			MaxHeight:    cfg.MaxHeight,
		},
	}
}

// Outcome is the terminal result of one job: an output path on success or
// a typed error on failure. Immutable once produced.
type Outcome struct {
	Input    string
	Category scan.Category
	Output   string
	InBytes  int64
	OutBytes int64
	Err      error
}

// Failed reports whether the job ended in failure.
func (o Outcome) Failed() bool { return o.Err != nil }

// Compressor is the per-category execution capability. The scheduler is
// agnostic to categories: adding one means adding an implementation, not
// changing dispatch.
type Compressor interface {
	Category() scan.Category
	// Compress runs one job to completion and returns the output path.
	// Implementations must recover all per-job failures into the returned
	// error; they never abort the batch.
	Compress(ctx context.Context, job *Job) (string, error)
}
