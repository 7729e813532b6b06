package ffmpeg

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeDuration asks ffprobe for the container duration of path in seconds.
// Any failure (probe missing, non-zero exit, unparsable output) returns
// ok=false: the job proceeds with indeterminate progress rather than
// failing.
func ProbeDuration(ctx context.Context, path string) (seconds float64, ok bool) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, false
	}

	seconds, err = strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || seconds <= 0 {
		return 0, false
	}
	return seconds, true
}
