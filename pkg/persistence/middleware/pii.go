package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
)

// Mask replaces masked result values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.RunStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks results whose name matches a pattern.
// Masking happens on save only; the caller's run is left untouched.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.RunStore) ports.RunStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, run *domain.Run) error {
	if run.Results == nil {
		return m.next.Save(ctx, run)
	}
	masked := run.Clone()
	masked.Results = domain.NewResults()
	run.Results.Each(func(name string, value any) {
		if m.matches(name) {
			value = maskValue(value)
		}
		masked.Results.Set(name, value)
	})
	return m.next.Save(ctx, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, runID string) (*domain.Run, error) {
	return m.next.Load(ctx, runID)
}

func (m *piiMiddleware) Delete(ctx context.Context, runID string) error {
	return m.next.Delete(ctx, runID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// maskValue keeps the shape of a value: lists keep their length.
func maskValue(v any) any {
	if list, ok := v.([]string); ok {
		out := make([]string, len(list))
		for i := range out {
			out[i] = Mask
		}
		return out
	}
	return Mask
}
