package cyoa_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/pkg/adapters/xmldoc"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/aretw0/cyoa/pkg/runner"
)

// ExampleEngine_Evaluate runs a document with scripted answers and fixed dice.
func ExampleEngine_Evaluate() {
	root, err := xmldoc.Parse([]byte(`
<story>
	<question name="path" text="Which path?">
		<option value="Forest"><constant name="found" value="mushrooms"/></option>
		<option value="River"><constant name="found" value="fish"/></option>
	</question>
	<random name="weather">
		<option value="sun" weight="2"/>
		<option value="rain"/>
	</random>
	<constant name="found" value="a map" conflict="list"/>
</story>`))
	if err != nil {
		log.Fatal(err)
	}

	eng := cyoa.New(
		cyoa.WithInteraction(runner.NewScriptedPort("river")),
		cyoa.WithRandom(random.NewSequence(2)),
	)

	results, err := eng.Evaluate(context.Background(), root)
	if err != nil {
		log.Fatal(err)
	}

	results.Each(func(name string, value any) {
		fmt.Printf("%s: %s\n", name, domain.Stringify(value))
	})
	// Output:
	// path: River
	// found: [fish, a map]
	// weather: rain
}
