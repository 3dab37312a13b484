/*
Package domain contains the core domain models of the cyoa evaluator.

It defines the document tree consumed by the engine, the result store produced by a
run and the errors a run can fail with. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: One element of the parsed document (tag, attributes, ordered children).
  - Kind: The closed set of node variants the evaluator dispatches on.
  - Results: The insertion-ordered name->value store mutated by a run.
  - ConflictPolicy: The rule applied when a name is written twice.
  - Run: An archived, finished evaluation.
*/
package domain
