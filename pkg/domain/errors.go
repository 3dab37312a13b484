package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnboundField is returned when a field reference names an entry missing from the results.
	ErrUnboundField = errors.New("unbound field")

	// ErrUnboundMacro is returned when a macro load names an identifier never saved.
	ErrUnboundMacro = errors.New("unbound macro")

	// ErrMalformedNumber is returned when an attribute or stored value must be an integer but is not.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrInvalidWeight is returned when a weighted pool has a non-positive weight.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrInvalidRange is returned when a range has max < min.
	ErrInvalidRange = errors.New("invalid range")

	// ErrDepthExceeded is returned when evaluation recurses deeper than the configured limit.
	ErrDepthExceeded = errors.New("maximum evaluation depth exceeded")

	// ErrRunNotFound is returned when a run ID cannot be found in the store.
	ErrRunNotFound = errors.New("run not found")

	// ErrEmptyDocument is returned by loaders when the source holds no root element.
	ErrEmptyDocument = errors.New("empty document")
)

// LookupError reports a reference to something that does not exist yet.
type LookupError struct {
	Kind string // "field" or "macro"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s '%s' is not defined", e.Kind, e.Name)
}

func (e *LookupError) Unwrap() error {
	if e.Kind == TagMacro {
		return ErrUnboundMacro
	}
	return ErrUnboundField
}

// NumberError reports a value that could not be parsed as an integer.
type NumberError struct {
	Attr  string
	Value string
	Err   error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%s: cannot parse '%s' as integer", e.Attr, e.Value)
}

func (e *NumberError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedNumber}
	}
	return []error{ErrMalformedNumber, e.Err}
}

// EvalError locates a fatal error inside the document.
type EvalError struct {
	Path []string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("at /%s: %v", strings.Join(e.Path, "/"), e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
