package llm

import "context"

// Provider sends a fully rendered prompt to an LLM and returns the raw text reply.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
