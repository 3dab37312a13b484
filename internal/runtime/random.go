package runtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/cyoa/pkg/domain"
)

func (e *Engine) evalRandom(ctx context.Context, s *scope, node *domain.Node) error {
	attrs := randomAttrs{
		Type: domain.DefaultRandomType,
		Min:  number(strconv.Itoa(domain.DefaultRangeMin)),
		Max:  number(strconv.Itoa(domain.DefaultRangeMax)),
	}
	if err := decodeAttrs(node, &attrs); err != nil {
		return err
	}

	switch strings.ToLower(attrs.Type) {
	case domain.RandomList:
		return e.evalWeighted(ctx, s, node)
	case domain.RandomRange:
		return e.evalRange(ctx, s, node, attrs)
	default:
		e.logger.DebugContext(ctx, "unknown random type", "type", attrs.Type)
		return nil
	}
}

// evalWeighted picks one option by weighted roulette, stores its value and evaluates its children.
func (e *Engine) evalWeighted(ctx context.Context, s *scope, node *domain.Node) error {
	pool, err := e.resolveFragments(s, node, domain.KindOption)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return nil
	}

	weights := make([]int, len(pool))
	values := make([]string, len(pool))
	total := 0
	for i, opt := range pool {
		attrs := optionAttrs{Value: domain.MissingValue, Weight: number(strconv.Itoa(domain.DefaultWeight))}
		if err := decodeAttrs(opt, &attrs); err != nil {
			return err
		}
		w, err := attrs.Weight.Int(domain.AttrWeight)
		if err != nil {
			return err
		}
		if w < 0 {
			return fmt.Errorf("%w: option '%s' has weight %d", domain.ErrInvalidWeight, attrs.Value, w)
		}
		weights[i], values[i] = w, attrs.Value
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: weights sum to %d", domain.ErrInvalidWeight, total)
	}

	draw := e.random.IntRange(0, total)
	e.emitDraw(ctx, domain.RandomList, draw)

	chosen := Pick(weights, draw)
	e.logger.DebugContext(ctx, "weighted pick", "draw", draw, "total", total, "value", values[chosen])

	if err := e.write(ctx, s, node, values[chosen]); err != nil {
		return err
	}
	return e.evalChildren(ctx, s, pool[chosen])
}

// Pick returns the index of the first weight whose cumulative sum exceeds draw.
// draw must lie in [0, sum(weights)).
func Pick(weights []int, draw int) int {
	acc := 0
	for i, w := range weights {
		acc += w
		if acc > draw {
			return i
		}
	}
	return len(weights) - 1
}

// evalRange stores a uniform integer in [min, max] directly, bypassing the conflict policy.
func (e *Engine) evalRange(ctx context.Context, s *scope, node *domain.Node, attrs randomAttrs) error {
	name, ok := node.Attr(domain.AttrName)
	if !ok {
		return nil
	}
	lo, err := attrs.Min.Int(domain.AttrMin)
	if err != nil {
		return err
	}
	hi, err := attrs.Max.Int(domain.AttrMax)
	if err != nil {
		return err
	}
	if hi < lo {
		return fmt.Errorf("%w: min %d > max %d", domain.ErrInvalidRange, lo, hi)
	}

	v := e.random.IntBetween(lo, hi)
	e.emitDraw(ctx, domain.RandomRange, v)
	s.results.Set(name, v)
	e.logger.DebugContext(ctx, "range draw", "name", name, "value", v)
	return nil
}
