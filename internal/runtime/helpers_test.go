package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/cyoa/internal/runtime"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/aretw0/cyoa/pkg/runner"
	"github.com/stretchr/testify/require"
)

// el builds a node from alternating attribute keys and values.
func el(tag string, kv ...string) *domain.Node {
	attrs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return domain.NewNode(tag, attrs)
}

func with(n *domain.Node, children ...*domain.Node) *domain.Node {
	n.Children = append(n.Children, children...)
	return n
}

func doc(children ...*domain.Node) *domain.Node {
	return domain.NewNode("document", nil, children...)
}

func newEngine(port ports.InteractionPort, rnd ports.RandomSource, opts ...runtime.EngineOption) *runtime.Engine {
	if port == nil {
		port = runner.NewScriptedPort()
	}
	if rnd == nil {
		rnd = random.NewSeeded(1)
	}
	return runtime.NewEngine(port, rnd, opts...)
}

func evaluate(t *testing.T, e *runtime.Engine, root *domain.Node) *domain.Results {
	t.Helper()
	results, err := e.Evaluate(context.Background(), root)
	require.NoError(t, err)
	return results
}

func value(t *testing.T, r *domain.Results, name string) any {
	t.Helper()
	v, ok := r.Get(name)
	require.True(t, ok, "missing result %q", name)
	return v
}
