package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/cyoa/pkg/adapters/memory"
	"github.com/aretw0/cyoa/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	root *NodeBuilder
}

// Document creates a builder whose root carries tag. Children are evaluated in order.
func Document(tag string, children ...*NodeBuilder) *Builder {
	return &Builder{root: newNode(tag, nil, children...)}
}

// Add appends top-level nodes.
func (b *Builder) Add(children ...*NodeBuilder) *Builder {
	b.root.children = append(b.root.children, children...)
	return b
}

// Root returns the tree, or the misuse errors recorded while building it.
func (b *Builder) Root() (*domain.Node, error) {
	if err := errors.Join(b.root.collect(nil)...); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return b.root.Build(), nil
}

// Build compiles the document into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	root, err := b.Root()
	if err != nil {
		return nil, err
	}
	loader, err := memory.NewFromNode(root)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
