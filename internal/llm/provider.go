// Package llm adapts hosted model APIs to the generation interface the
// benchmark runner consumes.
package llm

import "context"

// Provider generates text for a single prompt within a token budget.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, maxTokens int) (*Generation, error)
}

// Generation is one model completion with its timing and token usage.
type Generation struct {
	Text         string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
}

const defaultMaxTokens = 1024
