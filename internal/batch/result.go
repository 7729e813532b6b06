package batch

import "github.com/pressline/squeeze/internal/scan"

// Failure pairs a failed input with its reason.
type Failure struct {
	Input string
	Err   error
}

// CategoryResult holds one category's lists, in completion order.
type CategoryResult struct {
	Succeeded []string // Output paths.
	Failed    []Failure
}

// Result is the batch-level summary, built incrementally by the aggregator
// and finalized once every admitted job has reported.
type Result struct {
	Videos CategoryResult
	Images CategoryResult

	TotalInputBytes  int64
	TotalOutputBytes int64
}

// ForCategory returns the list pair for cat.
func (r *Result) ForCategory(cat scan.Category) *CategoryResult {
	if cat == scan.Video {
		return &r.Videos
	}
	return &r.Images
}

// Succeeded is the total success count across categories.
func (r *Result) Succeeded() int {
	return len(r.Videos.Succeeded) + len(r.Images.Succeeded)
}

// Failed is the total failure count across categories.
func (r *Result) Failed() int {
	return len(r.Videos.Failed) + len(r.Images.Failed)
}

// Total is the number of jobs that reported an outcome.
func (r *Result) Total() int { return r.Succeeded() + r.Failed() }

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs of succeeded jobs. Positive means outputs are smaller.
func (r *Result) SpaceSaved() int64 {
	return r.TotalInputBytes - r.TotalOutputBytes
}
