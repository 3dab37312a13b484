package cyoa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/cyoa/internal/runtime"
	"github.com/aretw0/cyoa/pkg/adapters/xmldoc"
	"github.com/aretw0/cyoa/pkg/adapters/yamldoc"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/aretw0/cyoa/pkg/runner"
)

// Engine is the high-level entry point for the CYOA library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	port     ports.InteractionPort
	random   ports.RandomSource
	seed     uint64
	seeded   bool
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxDepth int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated calls chain the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithInteraction sets where questions are asked. Default: a TextHandler on stdin/stdout.
func WithInteraction(port ports.InteractionPort) Option {
	return func(e *Engine) {
		e.port = port
	}
}

// WithRandom injects a custom random source. It takes precedence over WithSeed.
func WithRandom(source ports.RandomSource) Option {
	return func(e *Engine) {
		e.random = source
	}
}

// WithSeed makes every draw reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithMaxDepth bounds evaluation recursion (default runtime.DefaultMaxDepth).
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.port == nil {
		eng.port = runner.NewTextHandler(os.Stdin, os.Stdout)
	}
	if eng.random == nil {
		src := random.New()
		if eng.seeded {
			src = random.NewSeeded(eng.seed)
		}
		eng.seed = src.Seed()
		eng.seeded = true
		eng.random = src
	}

	eng.runtime = runtime.NewEngine(eng.port, eng.random,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithMaxDepth(eng.maxDepth),
	)
	return eng
}

// Seed returns the seed of the built-in random source.
// It reports false when a custom source was injected with WithRandom.
func (e *Engine) Seed() (uint64, bool) {
	return e.seed, e.seeded
}

// Evaluate walks the children of root and returns the collected results.
func (e *Engine) Evaluate(ctx context.Context, root *domain.Node) (*domain.Results, error) {
	return e.runtime.Evaluate(ctx, root)
}

// EvaluateFile loads the document at path and evaluates it.
func (e *Engine) EvaluateFile(ctx context.Context, path string) (*domain.Results, error) {
	root, err := LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, root)
}

// LoaderFor picks a document loader by file extension: .yaml and .yml are YAML,
// everything else is XML.
func LoaderFor(path string) ports.DocumentLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamldoc.NewFileLoader(path)
	default:
		return xmldoc.NewFileLoader(path)
	}
}

// LoadFile reads the document at path.
func LoadFile(ctx context.Context, path string) (*domain.Node, error) {
	root, err := LoaderFor(path).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return root, nil
}
