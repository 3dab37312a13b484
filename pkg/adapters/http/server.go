package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/pkg/adapters/xmldoc"
	"github.com/aretw0/cyoa/pkg/adapters/yamldoc"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/observability"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/aretw0/cyoa/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxDocumentSize bounds the request body of POST /runs.
const MaxDocumentSize = 1 << 20

// EvaluatorFactory builds an evaluator for one request.
type EvaluatorFactory func(port ports.InteractionPort, seed uint64) runner.Evaluator

// RunRequest is the body of POST /runs.
type RunRequest struct {
	Document string   `json:"document"`
	Format   string   `json:"format,omitempty"` // "xml" (default) or "yaml"
	Answers  []string `json:"answers,omitempty"`
	Seed     *uint64  `json:"seed,omitempty"`
}

// RunResponse is returned by POST /runs.
type RunResponse struct {
	Run *domain.Run `json:"run"`
	// Prompts lists every question presented, repeats included.
	Prompts []string `json:"prompts"`
	// Unused counts answers left in the queue.
	Unused int `json:"unused"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server evaluates documents non-interactively and serves the run archive.
type Server struct {
	NewEvaluator EvaluatorFactory
	Store        ports.RunStore
	Metrics      *observability.Metrics
	Logger       *slog.Logger
	// Timeout bounds a single evaluation. Zero means no limit beyond the request context.
	Timeout time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records runs and evaluator events on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithEvaluatorFactory overrides how evaluators are built.
func WithEvaluatorFactory(f EvaluatorFactory) Option {
	return func(s *Server) {
		s.NewEvaluator = f
	}
}

// WithTimeout bounds each evaluation.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.Timeout = d
	}
}

// NewServer creates a server archiving runs in store.
func NewServer(store ports.RunStore, opts ...Option) *Server {
	s := &Server{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.NewEvaluator == nil {
		s.NewEvaluator = s.defaultEvaluator
	}
	return s
}

func (s *Server) defaultEvaluator(port ports.InteractionPort, seed uint64) runner.Evaluator {
	opts := []cyoa.Option{
		cyoa.WithInteraction(port),
		cyoa.WithSeed(seed),
		cyoa.WithLogger(s.Logger),
	}
	if s.Metrics != nil {
		opts = append(opts, cyoa.WithLifecycleHooks(s.Metrics.Hooks()))
	}
	return cyoa.New(opts...)
}

// NewHandler creates the HTTP handler. gatherer may be nil to disable /metrics.
func NewHandler(s *Server, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.CreateRun)
		r.Get("/", s.ListRuns)
		r.Get("/{id}", s.GetRun)
		r.Delete("/{id}", s.DeleteRun)
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateRun evaluates the posted document with the queued answers.
// An exhausted answer queue cancels the remaining questions.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxDocumentSize)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	root, err := parseDocument(body.Document, body.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var seed uint64
	if body.Seed != nil {
		seed = *body.Seed
	} else {
		seed = random.New().Seed()
	}

	ctx := r.Context()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	port := runner.NewScriptedPort(body.Answers...)
	rn := runner.NewRunner(s.NewEvaluator(port, seed),
		runner.WithStore(s.Store),
		runner.WithSeed(seed),
		runner.WithDocument("inline:"+documentFormat(body.Format)),
		runner.WithLogger(s.Logger),
	)

	start := time.Now()
	run, err := rn.Run(ctx, root)
	s.observe(err, time.Since(start))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			status = http.StatusGatewayTimeout
		}
		s.Logger.Warn("evaluation failed", "err", err)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, RunResponse{
		Run:     run,
		Prompts: port.Prompts(),
		Unused:  port.Remaining(),
	})
}

// GetRun returns an archived run.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Load error: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ListRuns returns the IDs of archived runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("List error: %v", err))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// DeleteRun removes an archived run.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Delete error: %v", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth reports liveness.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) observe(err error, d time.Duration) {
	if s.Metrics == nil {
		return
	}
	outcome := observability.OutcomeCompleted
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = observability.OutcomeCancelled
	case err != nil:
		outcome = observability.OutcomeFailed
	}
	s.Metrics.ObserveRun(outcome, d)
}

func documentFormat(format string) string {
	if strings.EqualFold(format, "yaml") || strings.EqualFold(format, "yml") {
		return "yaml"
	}
	return "xml"
}

func parseDocument(doc, format string) (*domain.Node, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, domain.ErrEmptyDocument
	}
	switch f := strings.ToLower(format); f {
	case "", "xml":
		return xmldoc.Parse([]byte(doc))
	case "yaml", "yml":
		return yamldoc.Parse([]byte(doc))
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
