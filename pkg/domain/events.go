package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventNodeLeave EventType = "node_leave"
	EventWrite     EventType = "write"
	EventDraw      EventType = "draw"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent represents entry or exit from a node.
type NodeEvent struct {
	EventBase
	Kind  Kind   `json:"kind"`
	Tag   string `json:"tag"`
	Depth int    `json:"depth"`
}

// WriteEvent represents a write into the results.
type WriteEvent struct {
	EventBase
	Name   string         `json:"name"`
	Value  any            `json:"value"`
	Policy ConflictPolicy `json:"policy"`
}

// DrawEvent represents one call into the random source.
type DrawEvent struct {
	EventBase
	Mode   string `json:"mode"` // "list" or "range"
	Result int    `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent)
	OnWrite     func(context.Context, *WriteEvent)
	OnDraw      func(context.Context, *DrawEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: chain(h.OnNodeEnter, other.OnNodeEnter),
		OnNodeLeave: chain(h.OnNodeLeave, other.OnNodeLeave),
		OnWrite:     chain(h.OnWrite, other.OnWrite),
		OnDraw:      chain(h.OnDraw, other.OnDraw),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
