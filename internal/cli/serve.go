package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/cyoa/pkg/adapters/http"
	"github.com/aretw0/cyoa/pkg/observability"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the evaluator over HTTP on cfg.Addr until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, out io.Writer) error {
	logger, closer, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, storeCloser, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer storeCloser.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newServeHandler(cfg, store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "Starting CYOA server on %s (store: %s)\n", srv.Addr, cfg.Store)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("kill server: %w", err)
			}
		}
		fmt.Fprintln(out, "CYOA server stopped gracefully")
		return nil
	}
}

// newServeHandler wires the HTTP adapter with a private metrics registry.
func newServeHandler(cfg Config, store ports.RunStore, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := httpAdapter.NewServer(store,
		httpAdapter.WithMetrics(observability.NewMetrics(reg)),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithTimeout(cfg.RequestTimeout),
	)
	return httpAdapter.NewHandler(s, reg)
}
