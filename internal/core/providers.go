package core

import "context"

type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int64
	Temperature float64
}

type AIProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ResponseCache holds final replies for a short TTL. Expired entries are
// reported as misses.
type ResponseCache interface {
	Get(ctx context.Context, key string) (Reply, bool)
	Set(ctx context.Context, key string, reply Reply)
}
