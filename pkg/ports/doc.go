/*
Package ports defines the driven ports (interfaces) of the cyoa evaluator.

These interfaces decouple the evaluator from its host, allowing the same engine to run
behind a console, an HTTP request with queued answers, or a scripted test double.

# Key Interfaces

  - InteractionPort: Presents prompts and collects raw or choice answers.
  - RandomSource: Supplies uniform integers for weighted choice and ranges.
  - DocumentLoader: Produces the parsed document tree (XML, YAML).
  - RunStore: Archives finished runs (Memory, File, Redis).
*/
package ports
