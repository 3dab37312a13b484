/*
Package cyoa evaluates choose-your-own-adventure documents.

A document is a tree of tagged nodes. The engine walks it in document order, asks the
reader questions, rolls weighted dice, compares what it has collected so far and
branches accordingly. Everything the walk produces lands in an insertion-ordered
result store whose conflict policies (overwrite, add, append, stack, list, skip)
decide what happens when a name is written twice.

# Concept

The evaluator is the only part with semantics. Loading a document, asking a question
and printing the results are ports the host plugs in: a console, a JSON Lines stream,
a queue of scripted answers behind an HTTP request.

# Node Kinds

  - question: select, yesno or input; the answer is stored and its position picks the branch.
  - random: weighted roulette over option children, or a uniform integer range.
  - constant: stores a literal.
  - repeat: evaluates its children a fixed number of times.
  - equal, greater: compare constants and stored fields, then run do or else.
  - macro: saves a fragment under a name, or loads the fragment currently bound to one.

Unknown tags are skipped.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/cyoa"
	)

	func main() {
		eng := cyoa.New(cyoa.WithSeed(42))

		results, err := eng.EvaluateFile(context.Background(), "adventure.xml")
		if err != nil {
			log.Fatal(err)
		}

		results.Each(func(name string, value any) {
			fmt.Printf("%s: %v\n", name, value)
		})
	}
*/
package cyoa
