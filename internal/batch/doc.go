// Package batch dispatches compression jobs under a bounded concurrency
// limit and aggregates their outcomes.
//
// The permit pool is a weighted semaphore of size N: a permit is acquired
// before a job's goroutine is launched and held for the job's entire
// lifetime, including both passes of a two-pass encode. Job failures are
// converted into outcomes at the job boundary; nothing below the scheduler
// can abort the batch. Completion order is not related to submission order,
// and the result lists reflect completion order.
package batch
