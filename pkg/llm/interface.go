package llm

import "context"

// Generator is the minimal surface the narrative layer needs from a model.
type Generator interface {
	// Generate sends a system+user prompt pair and returns the raw text reply.
	Generate(ctx context.Context, system, user string) (string, error)

	// Configured reports whether a model credential is available. Callers
	// must degrade to deterministic output when this is false.
	Configured() bool
}
