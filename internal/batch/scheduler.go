package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/pressline/squeeze/internal/scan"
)

// Scheduler executes admitted jobs with at most N running concurrently.
// Every job reports exactly one outcome, success or failure; a failing job
// never cancels its siblings.
type Scheduler struct {
	limit       int64
	compressors map[scan.Category]Compressor
	log         *logrus.Logger
}

// NewScheduler builds a scheduler with concurrency limit n (validated to be
// >= 1 by config) and one compressor per category.
func NewScheduler(n int, log *logrus.Logger, comps ...Compressor) *Scheduler {
	m := make(map[scan.Category]Compressor, len(comps))
	for _, c := range comps {
		m[c.Category()] = c
	}
	return &Scheduler{limit: int64(n), compressors: m, log: log}
}

// Run executes every job exactly once and returns when all of them have
// reported. An empty job list returns an empty result immediately without
// touching the permit pool. The returned error only reflects an internal
// accounting shortfall, never a job failure.
func (s *Scheduler) Run(ctx context.Context, jobs []Job) (*Result, error) {
	agg := NewAggregator(len(jobs))
	if len(jobs) == 0 {
		return agg.Finalize()
	}

	sem := semaphore.NewWeighted(s.limit)
	var grp errgroup.Group

	for i := range jobs {
		job := &jobs[i]

		// Admission suspends here until a slot frees; running jobs are
		// unaffected. Acquire only fails when ctx is done, which counts as
		// that job's failure, not the batch's.
		if err := sem.Acquire(ctx, 1); err != nil {
			s.log.WithField("file", job.Input).Warnf("No slot acquired: %v", err)
			agg.Record(Outcome{
				Input:    job.Input,
				Category: job.Category,
				Err:      fmt.Errorf("acquire concurrency slot: %w", err),
			})
			continue
		}

		grp.Go(func() error {
			defer sem.Release(1)
			agg.Record(s.runJob(ctx, job))
			return nil
		})
	}

	// Tasks never return errors; failures arrive as outcomes.
	_ = grp.Wait()
	return agg.Finalize()
}

// runJob executes one job under its held permit and converts every failure
// mode, panics included, into an outcome.
func (s *Scheduler) runJob(ctx context.Context, job *Job) (out Outcome) {
	out = Outcome{Input: job.Input, Category: job.Category}

	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("file", job.Input).Errorf("Job panicked: %v", r)
			out.Err = fmt.Errorf("job panicked: %v", r)
			out.Output = ""
		}
	}()

	comp, ok := s.compressors[job.Category]
	if !ok {
		out.Err = fmt.Errorf("no compressor for category %q", job.Category)
		return out
	}

	log := s.log.WithFields(logrus.Fields{"job": job.ID, "file": job.Input})
	log.Debugf("Starting %s job", job.Category)

	output, err := comp.Compress(ctx, job)
	if err != nil {
		log.Warnf("Compression failed: %v", err)
		out.Err = err
		return out
	}

	out.Output = output
	out.InBytes, out.OutBytes = fileSizes(job.Input, output)
	log.Debugf("Finished: %s", output)
	return out
}

// fileSizes stats both ends of a succeeded job for the space accounting.
// Stat errors degrade to zero rather than failing a job that already
// produced its output.
func fileSizes(input, output string) (in, out int64) {
	if fi, err := os.Stat(input); err == nil {
		in = fi.Size()
	}
	if fi, err := os.Stat(output); err == nil {
		out = fi.Size()
	}
	return in, out
}
