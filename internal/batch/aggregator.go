package batch

import (
	"fmt"
	"sync"
)

// Aggregator collects outcomes from concurrently completing jobs in arrival
// order. Record only appends under a mutex, so producers are never blocked
// beyond the enqueue itself.
type Aggregator struct {
	mu       sync.Mutex
	expected int
	received int
	result   Result
}

// NewAggregator returns an aggregator expecting exactly n outcomes.
func NewAggregator(n int) *Aggregator {
	return &Aggregator{expected: n}
}

// Record classifies one outcome into its category's success or failure
// list. Safe for concurrent use.
func (a *Aggregator) Record(o Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.received++
	bucket := a.result.ForCategory(o.Category)
	if o.Failed() {
		bucket.Failed = append(bucket.Failed, Failure{Input: o.Input, Err: o.Err})
		return
	}
	bucket.Succeeded = append(bucket.Succeeded, o.Output)
	a.result.TotalInputBytes += o.InBytes
	a.result.TotalOutputBytes += o.OutBytes
}

// Finalize returns the batch result once the expected count of outcomes has
// been received, and an error before that.
func (a *Aggregator) Finalize() (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.received != a.expected {
		return nil, fmt.Errorf("batch incomplete: %d of %d outcomes received", a.received, a.expected)
	}
	r := a.result
	return &r, nil
}
