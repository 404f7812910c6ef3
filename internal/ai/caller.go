package ai

import (
	"context"
)

// Caller sends a prompt to a text generation service and returns its raw
// answer. The answer usually contains JSON but nothing guarantees it.
type Caller interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// CallerFunc adapts a plain function to the Caller interface.
type CallerFunc func(ctx context.Context, prompt string) (string, error)

func (f CallerFunc) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
