package ffmpeg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// progressTimeKey is the only -progress pipe:1 line the tracker reads. Its
// value is elapsed encode time in microseconds. Every other key=value line
// on the stream is protocol-compatible noise and is ignored.
const progressTimeKey = "out_time_ms="

// ParseError reports a recognized progress marker with a malformed value.
// It terminates the owning job, never the batch.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed progress line %q", e.Line)
}

// Snapshot is a read-only view of tracker state. Known is false when no
// total duration was available, in which case Percent is meaningless and
// callers should display an indeterminate state.
type Snapshot struct {
	Elapsed float64 // Seconds of media encoded so far.
	Percent float64 // 0-100, only valid when Known.
	Known   bool
}

// Progress parses the encoder's machine-readable stdout stream and derives
// a completion fraction against an optional total duration. One Progress
// instance is bound to exactly one process invocation and is owned by it;
// no synchronization is needed.
type Progress struct {
	total    float64 // Seconds; 0 means unknown.
	elapsed  float64
	percent  float64
	lastTick int // Last whole percent (known) or whole second (unknown) reported.
	onUpdate func(Snapshot)
}

// NewProgress returns a tracker for a stream with the given total duration
// in seconds. Pass 0 when the duration could not be probed; the tracker
// then reports indeterminate snapshots.
func NewProgress(totalSeconds float64) *Progress {
	return &Progress{total: totalSeconds, lastTick: -1}
}

// OnUpdate registers a callback invoked on whole-percent changes (or
// whole-second changes when the total is unknown). Used for live display.
func (p *Progress) OnUpdate(fn func(Snapshot)) { p.onUpdate = fn }

// ParseLine consumes one stdout line. Unrecognized lines return nil. A
// recognized marker with a non-numeric value returns *ParseError, which the
// runner surfaces as the job failure.
func (p *Progress) ParseLine(line string) error {
	value, ok := strings.CutPrefix(line, progressTimeKey)
	if !ok {
		return nil
	}

	micros, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return &ParseError{Line: line}
	}

	p.elapsed = micros / 1e6
	if p.total > 0 {
		// Encoders can overshoot the probed total slightly; clamp rather
		// than report >100%.
		p.percent = math.Min(100, math.Max(0, p.elapsed/p.total*100))
	}
	p.tick()
	return nil
}

// Snapshot returns the current derived state.
func (p *Progress) Snapshot() Snapshot {
	return Snapshot{Elapsed: p.elapsed, Percent: p.percent, Known: p.total > 0}
}

func (p *Progress) tick() {
	if p.onUpdate == nil {
		return
	}
	step := int(p.elapsed)
	if p.total > 0 {
		step = int(p.percent)
	}
	if step == p.lastTick {
		return
	}
	p.lastTick = step
	p.onUpdate(p.Snapshot())
}
