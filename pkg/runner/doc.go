/*
Package runner hosts document evaluations.

It provides the interaction adapters the evaluator talks to and the orchestrator
that loads a document, evaluates it and archives the resulting run.

# Key Components

  - Runner: loads, evaluates and archives one run.
  - TextHandler: interactive prompts on a terminal or any io.Reader/io.Writer pair.
  - JSONHandler: the same protocol as JSON Lines, for programmatic hosts.
  - ScriptedPort: answers from a fixed queue, for batch runs and tests.
  - Match: the answer-matching rules shared by every adapter.

# Usage

	engine := cyoa.New(cyoa.WithInteraction(runner.NewTextHandler(os.Stdin, os.Stdout)))
	r := runner.NewRunner(engine,
		runner.WithDocument("story.xml"),
		runner.WithStore(store),
	)

	run, err := r.Load(ctx, xml.NewFileLoader("story.xml"))
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
