package llm

import (
	"context"
	"errors"
)

var (
	ErrAuthFailed    = errors.New("authentication failed")
	ErrRequestFailed = errors.New("request failed")
	ErrEmptyResponse = errors.New("empty response")
	ErrRateLimit     = errors.New("rate limit exceeded")
)

// Client generates a chat completion for a prompt under a system context.
// The augmented system prompt produced by websearch.Augmenter goes in here.
type Client interface {
	CompleteWithSystem(ctx context.Context, system, prompt string) (string, error)
}
