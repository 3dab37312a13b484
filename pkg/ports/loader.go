package ports

import (
	"context"

	"github.com/aretw0/cyoa/pkg/domain"
)

// DocumentLoader defines how the engine retrieves the document tree.
// This allows the markup format (XML, YAML, programmatic) to be decoupled.
type DocumentLoader interface {
	// Load returns the root node. Its children are evaluated in document order.
	Load(ctx context.Context) (*domain.Node, error)
}
