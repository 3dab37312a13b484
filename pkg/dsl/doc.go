/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing CYOA documents.

It allows developers to define documents using a type-safe, fluent builder pattern
instead of relying on external XML or YAML files. This is particularly useful for dynamic
document generation, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	doc := dsl.Document("adventure",
		dsl.Question("class", "Choose your class",
			dsl.Option("Warrior", dsl.Constant("strength", 8)),
			dsl.Option("Mage", dsl.Constant("strength", 3)),
		),
		dsl.Range("dragon", 4, 9),
		dsl.Greater(dsl.Field("strength"), dsl.Field("dragon")).
			Do(dsl.Constant("ending", "You slay the dragon.")).
			Else(dsl.Constant("ending", "You flee.")),
	)

	// The resulting loader can be used as a ports.DocumentLoader
	loader, err := doc.Build()
	// ... pass loader to a runner.Runner
*/
package dsl
