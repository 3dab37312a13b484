package dsl_test

import (
	"context"
	"testing"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/dsl"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/aretw0/cyoa/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adventure() *dsl.Builder {
	return dsl.Document("adventure",
		dsl.Input("hero", "Name?"),
		dsl.Question("class", "Class?",
			dsl.Option("Warrior", dsl.Constant("strength", 8)),
			dsl.Option("Mage", dsl.Constant("strength", 3)),
		),
		dsl.Random("loot", dsl.Option("gold").Weight(3), dsl.Option("gem")).Conflict(domain.ConflictList),
		dsl.Range("dragon", 4, 9),
		dsl.Greater(dsl.Field("strength"), dsl.Field("dragon")).
			Do(dsl.Constant("ending", "win")).
			Else(dsl.Constant("ending", "flee")),
	)
}

func TestBuilder_Evaluate(t *testing.T) {
	loader, err := adventure().Build()
	require.NoError(t, err)

	eng := cyoa.New(
		cyoa.WithInteraction(runner.NewScriptedPort("Ada", "Warrior")),
		cyoa.WithRandom(random.NewSequence(0, 6)),
	)
	run, err := runner.NewRunner(eng).Load(context.Background(), loader)
	require.NoError(t, err)

	results := run.Results
	assert.Equal(t, []string{"hero", "class", "strength", "loot", "dragon", "ending"}, results.Names())
	for name, want := range map[string]any{
		"hero": "Ada", "class": "Warrior", "strength": "8", "loot": "gold", "dragon": 6, "ending": "win",
	} {
		got, _ := results.Get(name)
		assert.Equal(t, want, got, name)
	}
}

func TestBuilder_Root(t *testing.T) {
	root, err := adventure().Root()
	require.NoError(t, err)

	assert.Equal(t, "adventure", root.Tag)
	require.Len(t, root.Children, 5)

	loot := root.Children[2]
	assert.Equal(t, map[string]string{"name": "loot", "conflict": "list"}, loot.Attrs)
	assert.Equal(t, "3", loot.Children[0].Attrs["weight"])

	greater := root.Children[4]
	require.Len(t, greater.Children, 4)
	assert.Equal(t, domain.KindDo, greater.Children[2].Kind())
	assert.Equal(t, domain.KindElse, greater.Children[3].Kind())

	yesno := dsl.YesNo("again", "Again?").Build()
	assert.Equal(t, domain.QuestionYesNo, yesno.Attrs["type"])
}

func TestBuilder_Add(t *testing.T) {
	b := dsl.Document("doc").Add(dsl.SaveMacro("m", dsl.Constant("a", 1))).Add(dsl.LoadMacro("m"))
	root, err := b.Root()
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "m", root.Children[1].Attrs["load"])
}

func TestBuilder_Misuse(t *testing.T) {
	_, err := dsl.Document("doc",
		dsl.Constant("a", 1).Weight(2),
		dsl.Random("r").Do(dsl.Constant("b", 1)),
		dsl.Field("f").Conflict(domain.ConflictAdd),
		dsl.Repeat(2, dsl.Option("x").Weight(-1)),
	).Build()
	require.Error(t, err)

	assert.ErrorContains(t, err, "weight on <constant>")
	assert.ErrorContains(t, err, "<do> branch on <random>")
	assert.ErrorContains(t, err, "conflict policy on <field>")
	assert.ErrorContains(t, err, "negative weight -1")
}
