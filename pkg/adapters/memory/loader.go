package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/cyoa/pkg/domain"
)

// Loader implements ports.DocumentLoader over a JSON-encoded tree held in memory.
// Every Load decodes a fresh copy, so callers may not affect each other.
type Loader struct {
	data []byte
}

// NewLoader creates a Loader from the JSON form of a domain.Node.
func NewLoader(data []byte) *Loader {
	return &Loader{data: data}
}

// NewFromNode creates a Loader from a domain object.
// This handles serialization automatically, improving DX for tests.
func NewFromNode(root *domain.Node) (*Loader, error) {
	if root == nil {
		return nil, errors.New("root node is nil")
	}
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node %s: %w", root.Tag, err)
	}
	return NewLoader(data), nil
}

// Load decodes the held tree.
func (l *Loader) Load(ctx context.Context) (*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var root domain.Node
	if err := json.Unmarshal(l.data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &root, nil
}
