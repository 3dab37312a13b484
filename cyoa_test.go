package cyoa_test

import (
	"context"
	"testing"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/aretw0/cyoa/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_EvaluateFile_XML(t *testing.T) {
	port := runner.NewScriptedPort("Ada", "w", "")
	eng := cyoa.New(
		cyoa.WithInteraction(port),
		cyoa.WithRandom(random.NewSequence(0, 3, 6)),
	)

	results, err := eng.EvaluateFile(context.Background(), "examples/adventure.xml")
	require.NoError(t, err)

	assert.Equal(t, []string{"hero", "coins", "class", "strength", "loot", "dragon", "ending", "again"}, results.Names())
	get := func(name string) any {
		v, _ := results.Get(name)
		return v
	}
	assert.Equal(t, "Ada", get("hero"))
	assert.Equal(t, "Warrior", get("class"))
	assert.Equal(t, []string{"gold", "gem"}, get("loot"))
	assert.Equal(t, 60, get("coins"))
	assert.Equal(t, 6, get("dragon"))
	assert.Equal(t, "You slay the dragon.", get("ending"))
	assert.Equal(t, "Yes", get("again"))
	assert.Zero(t, port.Remaining())

	_, seeded := eng.Seed()
	assert.False(t, seeded)
}

func TestEngine_EvaluateFile_YAML(t *testing.T) {
	eng := cyoa.New(
		cyoa.WithInteraction(runner.NewScriptedPort()),
		cyoa.WithRandom(random.NewSequence(1)),
	)

	results, err := eng.EvaluateFile(context.Background(), "examples/adventure.yaml")
	require.NoError(t, err)

	coins, _ := results.Get("coins")
	assert.Equal(t, 15, coins)
	jackpot, _ := results.Get("jackpot")
	assert.Equal(t, "yes", jackpot)
}

func TestEngine_SeedIsReproducible(t *testing.T) {
	root := domain.NewNode("doc", nil,
		domain.NewNode("random", map[string]string{"type": "range", "name": "d", "min": "1", "max": "1000000"}),
	)

	run := func(seed uint64) any {
		eng := cyoa.New(cyoa.WithSeed(seed), cyoa.WithInteraction(runner.NewScriptedPort()))
		got, ok := eng.Seed()
		require.True(t, ok)
		require.Equal(t, seed, got)

		results, err := eng.Evaluate(context.Background(), root)
		require.NoError(t, err)
		v, _ := results.Get("d")
		return v
	}

	assert.Equal(t, run(99), run(99))
}

func TestEngine_Hooks(t *testing.T) {
	var writes int
	eng := cyoa.New(
		cyoa.WithInteraction(runner.NewScriptedPort()),
		cyoa.WithLifecycleHooks(domain.LifecycleHooks{
			OnWrite: func(context.Context, *domain.WriteEvent) { writes++ },
		}),
		cyoa.WithLifecycleHooks(domain.LifecycleHooks{
			OnWrite: func(context.Context, *domain.WriteEvent) { writes++ },
		}),
	)

	_, err := eng.Evaluate(context.Background(), domain.NewNode("doc", nil,
		domain.NewNode("constant", map[string]string{"name": "a", "value": "1"}),
	))
	require.NoError(t, err)
	assert.Equal(t, 2, writes, "both hook sets fire")
}

func TestEngine_MaxDepth(t *testing.T) {
	eng := cyoa.New(cyoa.WithInteraction(runner.NewScriptedPort()), cyoa.WithMaxDepth(1))

	_, err := eng.Evaluate(context.Background(), domain.NewNode("doc", nil,
		domain.NewNode("repeat", map[string]string{"number": "1"},
			domain.NewNode("constant", map[string]string{"name": "a"}),
		),
	))
	assert.ErrorIs(t, err, domain.ErrDepthExceeded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := cyoa.LoadFile(context.Background(), "examples/nope.xml")
	assert.ErrorContains(t, err, "load examples/nope.xml")
}
