package runtime

import (
	"slices"

	"github.com/aretw0/cyoa/pkg/domain"
)

// Registry maps macro identifiers to the fragment currently bound to them.
// Bindings are resolved at the moment of use, never cached.
type Registry struct {
	fragments map[string]*domain.Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fragments: make(map[string]*domain.Node)}
}

// RegisterOrResolve binds node under its save identifier, then resolves its load identifier.
// It returns nil when the node only saves.
func (r *Registry) RegisterOrResolve(node *domain.Node) (*domain.Node, error) {
	if id, ok := node.Attr(domain.AttrSave); ok {
		r.fragments[id] = node
	}
	id, ok := node.Attr(domain.AttrLoad)
	if !ok {
		return nil, nil
	}
	fragment, ok := r.fragments[id]
	if !ok {
		return nil, &domain.LookupError{Kind: domain.TagMacro, Name: id}
	}
	return fragment, nil
}

// resolveFragments returns the direct children of parent whose kind is wanted.
// A macro child is resolved in place and the matching children of its fragment are
// spliced in at its position, recursively.
func (e *Engine) resolveFragments(s *scope, parent *domain.Node, wanted ...domain.Kind) ([]*domain.Node, error) {
	var out []*domain.Node
	for _, child := range parent.Children {
		kind := child.Kind()
		if slices.Contains(wanted, kind) {
			out = append(out, child)
			continue
		}
		if kind != domain.KindMacro {
			continue
		}
		fragment, err := s.macros.RegisterOrResolve(child)
		if err != nil {
			return nil, err
		}
		if fragment == nil {
			continue
		}
		if err := s.enter(e, "macro:"+child.AttrOr(domain.AttrLoad, "")); err != nil {
			return nil, err
		}
		spliced, err := e.resolveFragments(s, fragment, wanted...)
		s.leave()
		if err != nil {
			return nil, err
		}
		out = append(out, spliced...)
	}
	return out, nil
}
