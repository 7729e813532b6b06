// Package display formats byte counts and prints the banner and batch
// summary.
package display

import (
	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable binary size (KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// CompressionRatio returns the output size as a percentage of the input
// size, 100 when the input size is unknown.
func CompressionRatio(inBytes, outBytes int64) int64 {
	if inBytes <= 0 {
		return 100
	}
	return outBytes * 100 / inBytes
}
