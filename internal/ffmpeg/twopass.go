package ffmpeg

import (
	"context"
	"fmt"
)

// PassState is the two-pass pipeline position. Transitions are linear
// (NotStarted → Pass1Running → Pass1Done → Pass2Running → Done) with
// Failed absorbing from either running state.
type PassState int

const (
	StateNotStarted PassState = iota
	StatePass1Running
	StatePass1Done
	StatePass2Running
	StateDone
	StateFailed
)

var passStateNames = map[PassState]string{
	StateNotStarted:   "not-started",
	StatePass1Running: "pass1-running",
	StatePass1Done:    "pass1-done",
	StatePass2Running: "pass2-running",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s PassState) String() string { return passStateNames[s] }

// TwoPass sequences a two-pass encode: pass 1 analyzes into the null sink,
// pass 2 produces the real output. Both passes run strictly sequentially
// inside the owning job, under that job's single concurrency permit. A
// pass-1 failure is terminal; pass 2 is never attempted after it.
type TwoPass struct {
	exec    Executor
	plan    *Plan
	newSink func() LineSink // Fresh tracker per pass; trackers are single-use.
	state   PassState
}

// NewTwoPass builds a pipeline for plan. newSink is called once per pass.
func NewTwoPass(exec Executor, plan *Plan, newSink func() LineSink) *TwoPass {
	return &TwoPass{exec: exec, plan: plan, newSink: newSink}
}

// State returns the current pipeline position.
func (t *TwoPass) State() PassState { return t.state }

// Run drives the pipeline to Done or Failed. It is single-use: calling it
// again after any terminal state is an error.
func (t *TwoPass) Run(ctx context.Context) error {
	if t.state != StateNotStarted {
		return fmt.Errorf("two-pass pipeline already ran (state %s)", t.state)
	}

	t.state = StatePass1Running
	if err := t.exec.Run(ctx, BuildPassArgs(t.plan, 1), t.newSink()); err != nil {
		t.state = StateFailed
		return fmt.Errorf("pass 1: %w", err)
	}
	t.state = StatePass1Done

	t.state = StatePass2Running
	if err := t.exec.Run(ctx, BuildPassArgs(t.plan, 2), t.newSink()); err != nil {
		t.state = StateFailed
		return fmt.Errorf("pass 2: %w", err)
	}
	t.state = StateDone
	return nil
}
