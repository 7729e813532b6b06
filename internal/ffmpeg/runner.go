package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LineSink consumes one line of process stdout. A non-nil error aborts the
// invocation; [Progress] is the production implementation.
type LineSink interface {
	ParseLine(line string) error
}

// SpawnError reports that the external process could not be started at all.
// It signals an environment problem (missing binary, permissions), not an
// input problem.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports a process that started but exited non-zero. The exit
// code and a tail of stderr are retained for diagnostics.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// Executor runs one external process to completion, streaming its stdout
// lines into sink. Abstracted so the two-pass pipeline and the compressors
// can be tested without real encoder binaries.
type Executor interface {
	Run(ctx context.Context, argv []string, sink LineSink) error
}

// ExecRunner is the production Executor backed by os/exec. Each Run owns
// its process and pipe exclusively; invocations share no state.
type ExecRunner struct{}

// Run spawns argv with stdout piped, forwards each line to sink, then waits
// for exit. Failure modes, in order of detection:
//   - *SpawnError: the process never started.
//   - sink error (e.g. *ParseError): the stream carried a malformed
//     recognized marker; the process is killed and reaped before returning.
//   - *ExitError: the process exited non-zero.
func (ExecRunner) Run(ctx context.Context, argv []string, sink LineSink) error {
	if len(argv) == 0 {
		return errors.New("empty argument vector")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SpawnError{Name: argv[0], Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Name: argv[0], Err: err}
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if err := sink.ParseLine(scanner.Text()); err != nil {
			// The stream is unusable; kill and reap the direct child.
			// The pipe is not drained: a descendant may hold its write
			// end open long after the kill, while Wait closes the read
			// end as soon as the child itself is reaped.
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return err
		}
	}
	// A broken pipe read surfaces here; treat it like an exit failure since
	// Wait will report the real status below.
	streamErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Name:   argv[0],
				Code:   exitErr.ExitCode(),
				Stderr: stderrTail(stderr.String()),
			}
		}
		return fmt.Errorf("wait for %s: %w", argv[0], err)
	}
	if streamErr != nil {
		return fmt.Errorf("read %s output: %w", argv[0], streamErr)
	}
	return nil
}

// stderrTail keeps the last lines of captured stderr so ExitError stays
// readable when the encoder dumps pages of diagnostics.
func stderrTail(s string) string {
	const keep = 20
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "\n")
}
