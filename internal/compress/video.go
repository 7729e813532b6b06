package compress

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pressline/squeeze/internal/batch"
	"github.com/pressline/squeeze/internal/ffmpeg"
	"github.com/pressline/squeeze/internal/scan"
)

// Video compresses video files by delegating to an external ffmpeg process,
// single- or two-pass depending on the job's preset. One instance serves
// the whole batch; all per-job state lives in the invocation.
type Video struct {
	exec  ffmpeg.Executor
	probe func(ctx context.Context, path string) (float64, bool)
	log   *logrus.Logger
}

// NewVideo returns the production video compressor.
func NewVideo(log *logrus.Logger) *Video {
	return &Video{
		exec:  ffmpeg.ExecRunner{},
		probe: ffmpeg.ProbeDuration,
		log:   log,
	}
}

// Category implements batch.Compressor.
func (v *Video) Category() scan.Category { return scan.Video }

// Compress runs one video job: validate input, probe duration, build the
// plan, then run the encode. Every failure comes back as an error for the
// scheduler to record; the partially written output is removed on failure.
func (v *Video) Compress(ctx context.Context, job *batch.Job) (string, error) {
	if err := validateInput(job.Input); err != nil {
		return "", err
	}

	opts := job.Options
	out := outputPath(job.Input, opts.OutputDir, "_compressed_"+string(opts.Preset.Name), "mp4")
	if err := prepareOutput(out, opts.Overwrite); err != nil {
		return "", err
	}

	log := v.log.WithFields(logrus.Fields{"job": job.ID, "file": filepath.Base(job.Input)})

	if opts.DryRun {
		log.Infof("[DRY] Would encode -> %s", out)
		return out, nil
	}

	// A failed probe degrades progress to indeterminate; it never fails
	// the job.
	total, known := v.probe(ctx, job.Input)
	if !known {
		log.Debug("Duration unknown, progress will be indeterminate")
	}

	plan := &ffmpeg.Plan{
		Input:       job.Input,
		Output:      out,
		Preset:      opts.Preset,
		Resolution:  opts.Resolution,
		FPS:         opts.FPS,
		NoAudio:     opts.NoAudio,
		PassLogFile: filepath.Join(os.TempDir(), "squeeze-"+job.ID.String()),
	}

	newSink := func() ffmpeg.LineSink {
		p := ffmpeg.NewProgress(total)
		p.OnUpdate(func(s ffmpeg.Snapshot) {
			if s.Known {
				log.Debugf("Encoding %.0f%%", s.Percent)
			} else {
				log.Debugf("Encoding %.0fs", s.Elapsed)
			}
		})
		return p
	}

	var err error
	if plan.TwoPass() {
		defer removePassLogs(plan.PassLogFile)
		err = ffmpeg.NewTwoPass(v.exec, plan, newSink).Run(ctx)
	} else {
		err = v.exec.Run(ctx, ffmpeg.BuildArgs(plan), newSink())
	}
	if err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

// removePassLogs cleans up the per-job two-pass stats files. Best effort:
// the encode already finished either way.
func removePassLogs(prefix string) {
	os.Remove(prefix + "-0.log")
	os.Remove(prefix + "-0.log.mbtree")
}
