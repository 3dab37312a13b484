package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
)

// DefaultMaxDepth bounds the recursion of a single evaluation.
const DefaultMaxDepth = 10000

// Engine is the tree-walking evaluator.
// It holds no per-run state: every call to Evaluate gets a fresh result store and macro registry.
type Engine struct {
	port     ports.InteractionPort
	random   ports.RandomSource
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	maxDepth int
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMaxDepth limits how deep evaluation may recurse before failing with domain.ErrDepthExceeded.
func WithMaxDepth(depth int) EngineOption {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// NewEngine creates a new engine with its external collaborators.
func NewEngine(port ports.InteractionPort, random ports.RandomSource, opts ...EngineOption) *Engine {
	e := &Engine{
		port:     port,
		random:   random,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate walks the children of root in document order and returns the collected results.
// Any fatal error aborts the run and discards partial results, except context
// cancellation, which returns what was collected so far alongside the error.
func (e *Engine) Evaluate(ctx context.Context, root *domain.Node) (*domain.Results, error) {
	s := newScope()
	if root == nil {
		return s.results, nil
	}
	if err := e.evalChildren(ctx, s, root); err != nil {
		e.logger.DebugContext(ctx, "evaluation aborted", "err", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.results, err
		}
		return nil, err
	}
	e.logger.DebugContext(ctx, "evaluation finished", "entries", s.results.Len())
	return s.results, nil
}

// scope carries the mutable state of one run through every recursive call.
type scope struct {
	results *domain.Results
	macros  *Registry
	path    []string
	depth   int
}

func newScope() *scope {
	return &scope{
		results: domain.NewResults(),
		macros:  NewRegistry(),
	}
}

func (s *scope) enter(e *Engine, label string) error {
	if s.depth >= e.maxDepth {
		return domain.ErrDepthExceeded
	}
	s.depth++
	s.path = append(s.path, label)
	return nil
}

func (s *scope) leave() {
	s.depth--
	s.path = s.path[:len(s.path)-1]
}

// locate wraps err with the current document path, once.
func (s *scope) locate(err error) error {
	var located *domain.EvalError
	if errors.As(err, &located) {
		return err
	}
	path := make([]string, len(s.path))
	copy(path, s.path)
	return &domain.EvalError{Path: path, Err: err}
}
