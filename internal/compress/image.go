package compress

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/pressline/squeeze/internal/batch"
	"github.com/pressline/squeeze/internal/scan"
)

// Image compresses image files in-process: decode, optional bounding-box
// downscale, re-encode at the configured quality. No external process is
// involved, but each job still runs under a scheduler permit like any
// other; the permit bounds resource use, not process count.
type Image struct {
	log *logrus.Logger
}

// NewImage returns the production image compressor.
func NewImage(log *logrus.Logger) *Image {
	return &Image{log: log}
}

// Category implements batch.Compressor.
func (im *Image) Category() scan.Category { return scan.Image }

// Compress runs one image job. The output keeps the input's format unless
// an override is configured; the encoder is chosen by extension.
func (im *Image) Compress(ctx context.Context, job *batch.Job) (string, error) {
	if err := validateInput(job.Input); err != nil {
		return "", err
	}

	opts := job.Options
	out := outputPath(job.Input, opts.OutputDir, "_compressed", opts.ImageFormat)
	if err := prepareOutput(out, opts.Overwrite); err != nil {
		return "", err
	}

	log := im.log.WithFields(logrus.Fields{"job": job.ID, "file": filepath.Base(job.Input)})

	if opts.DryRun {
		log.Infof("[DRY] Would compress -> %s", out)
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := imaging.Open(job.Input, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", job.Input, err)
	}

	bounds := src.Bounds()
	switch {
	case opts.MaxWidth > 0 && opts.MaxHeight > 0:
		src = imaging.Fit(src, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	case opts.MaxWidth > 0 && bounds.Dx() > opts.MaxWidth:
		src = imaging.Resize(src, opts.MaxWidth, 0, imaging.Lanczos)
	case opts.MaxHeight > 0 && bounds.Dy() > opts.MaxHeight:
		src = imaging.Resize(src, 0, opts.MaxHeight, imaging.Lanczos)
	}

	err = imaging.Save(src, out,
		imaging.JPEGQuality(opts.ImageQuality),
		imaging.PNGCompressionLevel(png.BestCompression),
	)
	if err != nil {
		os.Remove(out)
		return "", fmt.Errorf("encode %s: %w", out, err)
	}
	return out, nil
}
