package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cyoa/pkg/domain"
)

// LogHooks returns lifecycle hooks that trace every event at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter", "tag", e.Tag, "kind", e.Kind.String(), "depth", e.Depth)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_leave", "tag", e.Tag, "depth", e.Depth)
		},
		OnWrite: func(ctx context.Context, e *domain.WriteEvent) {
			logger.DebugContext(ctx, "write", "name", e.Name, "value", domain.Stringify(e.Value), "policy", string(e.Policy))
		},
		OnDraw: func(ctx context.Context, e *domain.DrawEvent) {
			logger.DebugContext(ctx, "draw", "mode", e.Mode, "result", e.Result)
		},
	}
}
