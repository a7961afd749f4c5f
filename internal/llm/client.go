package llm

import (
	"context"
)

// LLMClient is a single-turn chat completion backend. The system message
// carries the plan-building instructions and catalog summary, the user
// message carries the request itself.
type LLMClient interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
