// Package ffmpeg builds and executes external encoder commands.
//
// It owns the four pieces of the process boundary: argument construction
// (builder.go), process lifecycle with streamed stdout consumption
// (runner.go), the -progress pipe:1 protocol parser (progress.go), and the
// two-pass sequencing state machine (twopass.go). The duration probe
// (probe.go) is the only other external tool invocation.
//
// Nothing in this package knows about jobs, permits, or batches; it is
// driven one invocation at a time by the compressors.
package ffmpeg
