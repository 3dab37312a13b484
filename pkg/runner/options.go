package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/cyoa/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the RunStore used to archive finished runs.
func WithStore(store ports.RunStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.RunID = id
	}
}

// WithDocument records the document name on the run.
func WithDocument(name string) Option {
	return func(r *Runner) {
		r.Document = name
	}
}

// WithSeed records the random seed on the run.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.Seed = seed
	}
}

// WithClock overrides the time source used to stamp runs.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}
