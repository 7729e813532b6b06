package display

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pressline/squeeze/internal/batch"
)

// PrintSummary logs the batch-level report: per-category counts, each
// failure with its reason, and the space accounting. Partial failures are
// informational here; they never change the process exit code.
func PrintSummary(log *logrus.Logger, res *batch.Result, dryRun bool) {
	log.Info("==============================")
	log.Infof("Done: %d succeeded, %d failed (of %d)", res.Succeeded(), res.Failed(), res.Total())

	if n := len(res.Videos.Succeeded); n > 0 {
		log.Infof("  Videos compressed: %d", n)
	}
	if n := len(res.Images.Succeeded); n > 0 {
		log.Infof("  Images compressed: %d", n)
	}

	for _, f := range res.Videos.Failed {
		log.Warnf("  Failed video %s: %v", filepath.Base(f.Input), f.Err)
	}
	for _, f := range res.Images.Failed {
		log.Warnf("  Failed image %s: %v", filepath.Base(f.Input), f.Err)
	}

	if dryRun {
		log.Info("  Space saved: n/a (dry run)")
		return
	}

	saved := res.SpaceSaved()
	if saved >= 0 {
		log.Infof("  Space saved: %s (input %s -> output %s)",
			FormatBytes(saved),
			FormatBytes(res.TotalInputBytes),
			FormatBytes(res.TotalOutputBytes))
	} else {
		log.Warnf("  Space saved: %s (overall output is larger)", FormatBytes(saved))
	}
}
