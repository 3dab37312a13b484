package ports

import (
	"context"
	"errors"
)

// InteractionPort presents prompts to a user and collects answers.
// Implementations block until an answer is available.
type InteractionPort interface {
	// Ask presents the prompt and returns one raw line, verbatim.
	Ask(ctx context.Context, prompt string) (string, error)

	// GetAnswer presents the prompt and returns a zero-based index into options.
	// def is returned on empty input when it is >= 0.
	// A negative index signals cancellation; the caller skips the question.
	GetAnswer(ctx context.Context, prompt string, options []string, def int) (int, error)
}

// NoAnswer is the index GetAnswer returns when the interaction was cancelled.
const NoAnswer = -1

// ErrNoAnswer is returned by Ask when the interaction was cancelled.
// The evaluator treats it like NoAnswer and skips the question.
var ErrNoAnswer = errors.New("no answer")
