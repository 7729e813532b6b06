package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pressline/squeeze/internal/scan"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func makeJobs(t *testing.T, n int, cat scan.Category) []Job {
	t.Helper()
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{
			ID:       uuid.New(),
			Input:    fmt.Sprintf("/in/file%02d.%s", i, cat),
			Category: cat,
		}
	}
	return jobs
}

// gaugeCompressor tracks how many Compress calls run simultaneously and
// fails inputs matched by failSubstr.
type gaugeCompressor struct {
	cat        scan.Category
	delay      time.Duration
	failSubstr string

	mu         sync.Mutex
	running    int
	maxRunning int
}

func (g *gaugeCompressor) Category() scan.Category { return g.cat }

func (g *gaugeCompressor) Compress(_ context.Context, job *Job) (string, error) {
	g.mu.Lock()
	g.running++
	if g.running > g.maxRunning {
		g.maxRunning = g.running
	}
	g.mu.Unlock()

	time.Sleep(g.delay)

	g.mu.Lock()
	g.running--
	g.mu.Unlock()

	if g.failSubstr != "" && strings.Contains(job.Input, g.failSubstr) {
		return "", errors.New("deliberate failure")
	}
	return job.Input + ".out", nil
}

func (g *gaugeCompressor) observedMax() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.maxRunning
}

func TestScheduler_ConcurrencyNeverExceedsLimit(t *testing.T) {
	comp := &gaugeCompressor{cat: scan.Video, delay: 20 * time.Millisecond}
	sched := NewScheduler(3, testLogger(), comp)

	res, err := sched.Run(context.Background(), makeJobs(t, 12, scan.Video))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Total() != 12 {
		t.Errorf("got %d outcomes, want 12", res.Total())
	}
	if max := comp.observedMax(); max > 3 {
		t.Errorf("observed %d concurrent jobs, limit is 3", max)
	}
}

func TestScheduler_SerializesWhenLimitIsOne(t *testing.T) {
	comp := &gaugeCompressor{cat: scan.Video, delay: 10 * time.Millisecond}
	sched := NewScheduler(1, testLogger(), comp)

	if _, err := sched.Run(context.Background(), makeJobs(t, 3, scan.Video)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if max := comp.observedMax(); max != 1 {
		t.Errorf("observed %d overlapping jobs, want strictly serial execution", max)
	}
}

// barrierCompressor blocks every job until all expected jobs are running at
// once, proving full overlap is possible when N >= M.
type barrierCompressor struct {
	cat     scan.Category
	arrived chan struct{}
	release chan struct{}
}

func newBarrierCompressor(cat scan.Category, expect int) *barrierCompressor {
	return &barrierCompressor{
		cat:     cat,
		arrived: make(chan struct{}, expect),
		release: make(chan struct{}),
	}
}

func (b *barrierCompressor) Category() scan.Category { return b.cat }

func (b *barrierCompressor) Compress(ctx context.Context, job *Job) (string, error) {
	b.arrived <- struct{}{}
	select {
	case <-b.release:
		return job.Input + ".out", nil
	case <-time.After(5 * time.Second):
		return "", errors.New("barrier timeout: jobs did not overlap")
	}
}

func TestScheduler_FullOverlapWhenLimitCoversAllJobs(t *testing.T) {
	comp := newBarrierCompressor(scan.Video, 3)
	sched := NewScheduler(3, testLogger(), comp)

	done := make(chan *Result, 1)
	go func() {
		res, err := sched.Run(context.Background(), makeJobs(t, 3, scan.Video))
		if err != nil {
			t.Errorf("Run: %v", err)
		}
		done <- res
	}()

	// All three jobs must be running at once before any is released.
	for i := 0; i < 3; i++ {
		select {
		case <-comp.arrived:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d of 3 jobs started; no full overlap", i)
		}
	}
	close(comp.release)

	res := <-done
	if res.Succeeded() != 3 {
		t.Errorf("got %d successes, want 3", res.Succeeded())
	}
}

func TestScheduler_FailuresAreOutcomesNotAborts(t *testing.T) {
	for _, n := range []int{1, 2, 8} {
		comp := &gaugeCompressor{cat: scan.Video, failSubstr: "file01"}
		sched := NewScheduler(n, testLogger(), comp)

		res, err := sched.Run(context.Background(), makeJobs(t, 6, scan.Video))
		if err != nil {
			t.Fatalf("N=%d: Run: %v", n, err)
		}
		if got := res.Succeeded() + res.Failed(); got != 6 {
			t.Errorf("N=%d: succeeded+failed = %d, want 6", n, got)
		}
		if res.Failed() != 1 {
			t.Errorf("N=%d: got %d failures, want 1", n, res.Failed())
		}
	}
}

func TestScheduler_EmptyBatchReturnsImmediately(t *testing.T) {
	sched := NewScheduler(4, testLogger(), &gaugeCompressor{cat: scan.Video})

	start := time.Now()
	res, err := sched.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Total() != 0 {
		t.Errorf("got %d outcomes, want 0", res.Total())
	}
	if time.Since(start) > time.Second {
		t.Error("empty batch did not return immediately")
	}
}

// panicCompressor panics on a chosen input to exercise the task-failure
// isolation path.
type panicCompressor struct {
	gaugeCompressor
	panicSubstr string
}

func (p *panicCompressor) Compress(ctx context.Context, job *Job) (string, error) {
	if strings.Contains(job.Input, p.panicSubstr) {
		panic("compressor bug")
	}
	return p.gaugeCompressor.Compress(ctx, job)
}

func TestScheduler_PanicBecomesJobFailure(t *testing.T) {
	comp := &panicCompressor{
		gaugeCompressor: gaugeCompressor{cat: scan.Video},
		panicSubstr:     "file02",
	}
	sched := NewScheduler(2, testLogger(), comp)

	res, err := sched.Run(context.Background(), makeJobs(t, 4, scan.Video))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed() != 1 || res.Succeeded() != 3 {
		t.Errorf("got %d failed / %d succeeded, want 1 / 3", res.Failed(), res.Succeeded())
	}
}

func TestScheduler_MissingCompressorIsJobFailure(t *testing.T) {
	// Only a video compressor registered, but an image job admitted.
	sched := NewScheduler(2, testLogger(), &gaugeCompressor{cat: scan.Video})

	res, err := sched.Run(context.Background(), makeJobs(t, 1, scan.Image))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed() != 1 {
		t.Fatalf("got %d failures, want 1", res.Failed())
	}
}

func TestScheduler_CancelledContextFailsSlotAcquisition(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sched := NewScheduler(2, testLogger(), &gaugeCompressor{cat: scan.Video})
	res, err := sched.Run(ctx, makeJobs(t, 3, scan.Video))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Every job still reports exactly one outcome.
	if res.Total() != 3 || res.Failed() != 3 {
		t.Errorf("got %d outcomes / %d failed, want 3 / 3", res.Total(), res.Failed())
	}
}
