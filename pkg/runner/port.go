package runner

import "github.com/aretw0/cyoa/pkg/ports"

// Aliases so hosts only need this package to build an interaction port.
const NoAnswer = ports.NoAnswer

var ErrNoAnswer = ports.ErrNoAnswer

var (
	_ ports.InteractionPort = (*TextHandler)(nil)
	_ ports.InteractionPort = (*JSONHandler)(nil)
	_ ports.InteractionPort = (*ScriptedPort)(nil)
)
