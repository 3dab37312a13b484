package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/internal/presentation/graph"
)

// Graph prints a Mermaid flowchart of the document at path.
// When runID is set, the nodes that wrote results in that archived run are highlighted.
func Graph(ctx context.Context, cfg Config, path, runID string, out io.Writer) error {
	root, err := cyoa.LoadFile(ctx, path)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if runID != "" {
		store, closer, err := OpenStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		run, err := store.Load(ctx, runID)
		if err != nil {
			return fmt.Errorf("load run %s: %w", runID, err)
		}
		overlay = &graph.GraphOverlay{Written: run.Results.Names()}
	}

	_, err = io.WriteString(out, graph.GenerateMermaid(root, overlay))
	return err
}
