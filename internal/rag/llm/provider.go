package llm

import "context"

// Provider is a single blocking text completion. The caller hands over the
// fully assembled grounding prompt; no streaming, no tool calling.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
