package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/google/uuid"
)

// Evaluator walks a document tree and returns the collected results.
// *cyoa.Engine and the internal runtime both satisfy it.
type Evaluator interface {
	Evaluate(ctx context.Context, root *domain.Node) (*domain.Results, error)
}

// Runner drives one evaluation end to end: load the document, evaluate it,
// stamp the run and archive it.
type Runner struct {
	// Evaluator performs the tree walk. Required.
	Evaluator Evaluator

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store archives finished runs.
	// If nil, runs are ephemeral.
	Store ports.RunStore

	// Document names the source of the tree (usually its path).
	Document string

	// RunID overrides the generated run identifier.
	RunID string

	// Seed is recorded on the run for reproducibility.
	Seed uint64

	now func() time.Time
}

// NewRunner creates a Runner around an evaluator.
func NewRunner(evaluator Evaluator, opts ...Option) *Runner {
	r := &Runner{
		Evaluator: evaluator,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads a document through the loader and runs it.
func (r *Runner) Load(ctx context.Context, loader ports.DocumentLoader) (*domain.Run, error) {
	root, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return r.Run(ctx, root)
}

// Run evaluates root and returns the finished run.
// A cancelled evaluation still yields the partial run alongside the error, and the
// partial run is archived. Persistence failures are reported but never hide results.
func (r *Runner) Run(ctx context.Context, root *domain.Node) (*domain.Run, error) {
	if r.Evaluator == nil {
		return nil, errors.New("runner: evaluator is required")
	}

	run := domain.NewRun(r.resolveRunID(), r.Document)
	run.Seed = r.Seed
	run.StartedAt = r.now()

	r.Logger.Debug("run started", "run_id", run.ID, "document", run.Document)
	results, evalErr := r.Evaluator.Evaluate(ctx, root)
	run.FinishedAt = r.now()
	if results != nil {
		run.Results = results
	}

	if evalErr != nil && !interrupted(evalErr) {
		r.Logger.Debug("run failed", "run_id", run.ID, "err", evalErr)
		return run, evalErr
	}

	if err := r.save(run); err != nil {
		return run, errors.Join(evalErr, err)
	}
	r.Logger.Debug("run finished",
		"run_id", run.ID,
		"results", run.Results.Len(),
		"duration", run.FinishedAt.Sub(run.StartedAt),
	)
	return run, evalErr
}

func (r *Runner) save(run *domain.Run) error {
	if r.Store == nil {
		return nil
	}
	// The run context may already be cancelled; archiving must still happen.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Store.Save(ctx, run); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	r.Logger.Debug("run saved", "run_id", run.ID)
	return nil
}

func (r *Runner) resolveRunID() string {
	if r.RunID != "" {
		return r.RunID
	}
	return uuid.NewString()
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
