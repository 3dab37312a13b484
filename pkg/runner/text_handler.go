package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// TextHandler implements ports.InteractionPort on a console.
// Prompts go to Writer; answers are read line by line from the source.
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer

	source *lineSource
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// ContentRenderer transforms a prompt before it is written (e.g. terminal styling).
type ContentRenderer func(string) (string, error)

// WithTextHandlerRenderer configures the prompt renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		source: newLineSource(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Ask prints the prompt and returns the next line verbatim.
func (h *TextHandler) Ask(ctx context.Context, prompt string) (string, error) {
	h.present(prompt)
	line, err := h.source.next(ctx, h.Writer)
	if errors.Is(err, io.EOF) {
		return "", ErrNoAnswer
	}
	return line, err
}

// GetAnswer prints the prompt until a line resolves to an option.
// End of input cancels the question.
func (h *TextHandler) GetAnswer(ctx context.Context, prompt string, options []string, def int) (int, error) {
	for {
		h.present(prompt)
		line, err := h.source.next(ctx, h.Writer)
		if errors.Is(err, io.EOF) {
			return NoAnswer, nil
		}
		if err != nil {
			return NoAnswer, err
		}
		if idx := Match(line, options, def); idx >= 0 {
			return idx, nil
		}
		fmt.Fprintln(h.Writer, InvalidInputMessage)
	}
}

func (h *TextHandler) present(prompt string) {
	output := prompt
	if h.Renderer != nil {
		if rendered, err := h.Renderer(prompt); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(h.Writer, output)
}
