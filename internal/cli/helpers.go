package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/cyoa/internal/logging"
	"github.com/aretw0/cyoa/internal/presentation/tui"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// createLogger configures the application logger.
// Without debug or a log file nothing is logged; a log file always receives JSON records.
func createLogger(cfg Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	if cfg.LogFile != "" {
		return logging.NewWithFile(level, cfg.LogFile)
	}
	if cfg.Debug {
		return logging.New(level), nopCloser{}, nil
	}
	return logging.NewNop(), nopCloser{}, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, styled bool, format string, args ...any) {
	msg := fmt.Sprintf(">>> %s", fmt.Sprintf(format, args...))
	if styled {
		msg = tui.SystemMessage(msg)
	}
	fmt.Fprintln(w, msg)
}

// terminal returns w as a file when it is an interactive terminal.
func terminal(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok || !tui.IsTerminal(f) {
		return nil, false
	}
	return f, true
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
