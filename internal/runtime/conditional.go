package runtime

import (
	"context"

	"github.com/aretw0/cyoa/pkg/domain"
)

// evalEqual takes the do branch when every operand equals the first one.
// Operands are all constants first, then all fields, regardless of interleaving.
func (e *Engine) evalEqual(ctx context.Context, s *scope, node *domain.Node) error {
	constants, err := e.resolveFragments(s, node, domain.KindConstant)
	if err != nil {
		return err
	}
	fields, err := e.resolveFragments(s, node, domain.KindField)
	if err != nil {
		return err
	}

	values := make([]string, 0, len(constants)+len(fields))
	for _, c := range constants {
		values = append(values, c.AttrOr(domain.AttrValue, domain.MissingValue))
	}
	for _, f := range fields {
		v, err := s.results.Lookup(f.AttrOr(domain.AttrName, ""))
		if err != nil {
			return err
		}
		values = append(values, domain.Stringify(v))
	}

	return e.branch(ctx, s, node, AllEqual(values))
}

// AllEqual reports whether every value equals the first. Fewer than two values are equal.
func AllEqual(values []string) bool {
	for _, v := range values[min(1, len(values)):] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// evalGreater takes the do branch when the first operand is strictly greater than every other.
// Operands are read in document order and the walk stops at the first failure.
func (e *Engine) evalGreater(ctx context.Context, s *scope, node *domain.Node) error {
	operands, err := e.resolveFragments(s, node, domain.KindConstant, domain.KindField)
	if err != nil {
		return err
	}

	ok := true
	var first int
	for i, op := range operands {
		v, err := e.operandInt(s, op)
		if err != nil {
			return err
		}
		if i == 0 {
			first = v
			continue
		}
		if first <= v {
			ok = false
			break
		}
	}

	return e.branch(ctx, s, node, ok)
}

func (e *Engine) operandInt(s *scope, op *domain.Node) (int, error) {
	if op.Kind() == domain.KindField {
		v, err := s.results.Lookup(op.AttrOr(domain.AttrName, ""))
		if err != nil {
			return 0, err
		}
		return domain.ParseInt(domain.TagField, v)
	}
	return domain.ParseInt(domain.TagConstant, op.AttrOr(domain.AttrValue, domain.MissingValue))
}

// branch evaluates the children of every do (or else) child. A missing branch is a no-op.
func (e *Engine) branch(ctx context.Context, s *scope, node *domain.Node, taken bool) error {
	want := domain.KindElse
	if taken {
		want = domain.KindDo
	}
	e.logger.DebugContext(ctx, "condition", "tag", node.Tag, "taken", taken)

	branches, err := e.resolveFragments(s, node, want)
	if err != nil {
		return err
	}
	for _, b := range branches {
		if err := e.evalChildren(ctx, s, b); err != nil {
			return err
		}
	}
	return nil
}
