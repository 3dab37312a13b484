package runner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
)

// Prompt is one structured message emitted by JSONHandler.
type Prompt struct {
	Type    string   `json:"type"` // "ask", "choice" or "invalid"
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
	Default *int     `json:"default,omitempty"`
}

// JSONHandler implements ports.InteractionPort over JSON-Lines.
// Each prompt is one JSON object on Writer; each answer is one line on the reader,
// either a JSON string or plain text.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder

	source *lineSource
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
		source:  newLineSource(r),
	}
}

func (h *JSONHandler) Ask(ctx context.Context, prompt string) (string, error) {
	if err := h.Encoder.Encode(Prompt{Type: "ask", Text: prompt}); err != nil {
		return "", err
	}
	line, err := h.read(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrNoAnswer
	}
	return line, err
}

func (h *JSONHandler) GetAnswer(ctx context.Context, prompt string, options []string, def int) (int, error) {
	msg := Prompt{Type: "choice", Text: prompt, Options: options}
	if def >= 0 {
		msg.Default = &def
	}
	for {
		if err := h.Encoder.Encode(msg); err != nil {
			return NoAnswer, err
		}
		line, err := h.read(ctx)
		if errors.Is(err, io.EOF) {
			return NoAnswer, nil
		}
		if err != nil {
			return NoAnswer, err
		}
		if idx := Match(line, options, def); idx >= 0 {
			return idx, nil
		}
		if err := h.Encoder.Encode(Prompt{Type: "invalid", Text: InvalidInputMessage}); err != nil {
			return NoAnswer, err
		}
	}
}

func (h *JSONHandler) read(ctx context.Context) (string, error) {
	text, err := h.source.next(ctx, io.Discard)
	if err != nil {
		return "", err
	}

	// Try to unquote if it's a JSON string
	var val string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &val); err == nil {
		return val, nil
	}

	// Fallback: return raw text (e.g. if they just sent plain text)
	return text, nil
}
