// Package reports derives budget status and period reports from a user's
// ledger. Aggregation is read-only: every report is a pure function of the
// user, the clock and the ledger contents at query time.
package reports

import (
	"time"

	"github.com/Asshabanu/finance-tracker/internal/ledger"
)

// DefaultMaxConcurrency bounds the per-month ledger queries a single
// multi-month report issues at once.
const DefaultMaxConcurrency = 4

const (
	comparisonMonths = 6
	trendMonths      = 12
)

// Engine evaluates budgets and builds reports over a Ledger.
type Engine struct {
	ledger         ledger.Ledger
	now            func() time.Time
	loc            *time.Location
	maxConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the source of "current month".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the time zone month boundaries are computed in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithMaxConcurrency bounds concurrent ledger queries. Values below 1 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrency = n
		}
	}
}

// NewEngine creates an Engine reading from l.
func NewEngine(l ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		ledger:         l,
		now:            time.Now,
		loc:            time.UTC,
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// today returns the current instant in the engine's location.
func (e *Engine) today() time.Time {
	return e.now().In(e.loc)
}
