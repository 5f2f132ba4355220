// Package scaffold materializes a new expert project from the project
// template. It powers the root "expertkit <domain> [port]" command: copy the
// template tree, derive .env from .env.example, substitute placeholder tokens
// in .env, README.md and configs/project.yaml, and provision the empty data
// directories the project runtime expects.
//
// Every step is a local, synchronous filesystem operation. A failing step
// aborts the run without rolling back earlier steps; the returned error names
// the step and the path involved.
package scaffold
