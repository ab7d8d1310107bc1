package estimation

import (
	"time"

	"github.com/thomas-vilte/commitcost/internal/models"
)

// PageSize is the number of commits requested per listing call.
const PageSize = 100

// ProgressFunc is called once per finished commit. Calls are serialized.
type ProgressFunc func(p models.EstimationProgress)

// ResolvedFunc is called once the branch of a branch estimate is known, before any commit is listed.
type ResolvedFunc func(r Resolution)

type options struct {
	concurrency int
	progress    ProgressFunc
	resolved    ResolvedFunc
	now         func() time.Time
}

type Option func(*options)

// WithConcurrency sets how many commit details are fetched at once. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func WithResolved(fn ResolvedFunc) Option {
	return func(o *options) {
		o.resolved = fn
	}
}

// WithClock overrides the clock used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func defaultOptions() options {
	return options{
		concurrency: 1,
		now:         time.Now,
	}
}
