package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/cyoa/pkg/domain"
)

// evalChildren visits the direct children of node in document order.
func (e *Engine) evalChildren(ctx context.Context, s *scope, node *domain.Node) error {
	for i, child := range node.Children {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.enter(e, fmt.Sprintf("%s[%d]", child.Tag, i)); err != nil {
			return s.locate(err)
		}
		err := e.dispatch(ctx, s, child)
		if err != nil {
			err = s.locate(err)
		}
		s.leave()
		if err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler of a single node.
func (e *Engine) dispatch(ctx context.Context, s *scope, node *domain.Node) error {
	kind := node.Kind()
	switch kind {
	case domain.KindQuestion, domain.KindRandom, domain.KindConstant, domain.KindRepeat,
		domain.KindEqual, domain.KindGreater, domain.KindMacro:
	default:
		e.logger.DebugContext(ctx, "ignoring node", "tag", node.Tag)
		return nil
	}

	e.emitNodeEnter(ctx, s, node, kind)
	defer e.emitNodeLeave(ctx, s, node, kind)

	switch kind {
	case domain.KindQuestion:
		return e.evalQuestion(ctx, s, node)
	case domain.KindRandom:
		return e.evalRandom(ctx, s, node)
	case domain.KindConstant:
		return e.evalConstant(ctx, s, node)
	case domain.KindRepeat:
		return e.evalRepeat(ctx, s, node)
	case domain.KindEqual:
		return e.evalEqual(ctx, s, node)
	case domain.KindGreater:
		return e.evalGreater(ctx, s, node)
	default:
		return e.evalMacro(ctx, s, node)
	}
}

func (e *Engine) evalConstant(ctx context.Context, s *scope, node *domain.Node) error {
	attrs := writeAttrs{Value: domain.MissingValue}
	if err := decodeAttrs(node, &attrs); err != nil {
		return err
	}
	return e.write(ctx, s, node, attrs.Value)
}

func (e *Engine) evalRepeat(ctx context.Context, s *scope, node *domain.Node) error {
	attrs := repeatAttrs{Number: number(fmt.Sprint(domain.DefaultRepeat))}
	if err := decodeAttrs(node, &attrs); err != nil {
		return err
	}
	times, err := attrs.Number.Int(domain.AttrNumber)
	if err != nil {
		return err
	}
	for i := 0; i < times; i++ {
		e.logger.DebugContext(ctx, "repeat pass", "pass", i+1, "of", times)
		if err := e.evalChildren(ctx, s, node); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) evalMacro(ctx context.Context, s *scope, node *domain.Node) error {
	fragment, err := s.macros.RegisterOrResolve(node)
	if err != nil {
		return err
	}
	if fragment == nil {
		return nil
	}
	return e.evalChildren(ctx, s, fragment)
}

// write stores value under the node's name attribute using the node's conflict policy.
// Nodes without a name do not write.
func (e *Engine) write(ctx context.Context, s *scope, node *domain.Node, value any) error {
	name, ok := node.Attr(domain.AttrName)
	if !ok {
		return nil
	}
	policy := domain.ParseConflictPolicy(node.AttrOr(domain.AttrConflict, ""))
	if err := s.results.Write(name, value, policy); err != nil {
		return err
	}
	e.logger.DebugContext(ctx, "write", "name", name, "policy", string(policy))
	e.emitWrite(ctx, name, value, policy)
	return nil
}

func (e *Engine) emitNodeEnter(ctx context.Context, s *scope, node *domain.Node, kind domain.Kind) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeEnter},
		Kind:      kind,
		Tag:       node.Tag,
		Depth:     s.depth,
	})
}

func (e *Engine) emitNodeLeave(ctx context.Context, s *scope, node *domain.Node, kind domain.Kind) {
	if e.hooks.OnNodeLeave == nil {
		return
	}
	e.hooks.OnNodeLeave(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeLeave},
		Kind:      kind,
		Tag:       node.Tag,
		Depth:     s.depth,
	})
}

func (e *Engine) emitWrite(ctx context.Context, name string, value any, policy domain.ConflictPolicy) {
	if e.hooks.OnWrite == nil {
		return
	}
	e.hooks.OnWrite(ctx, &domain.WriteEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventWrite},
		Name:      name,
		Value:     value,
		Policy:    policy,
	})
}

func (e *Engine) emitDraw(ctx context.Context, mode string, result int) {
	if e.hooks.OnDraw == nil {
		return
	}
	e.hooks.OnDraw(ctx, &domain.DrawEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDraw},
		Mode:      mode,
		Result:    result,
	})
}
