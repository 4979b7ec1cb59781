package driven

import "context"

// AIService is the opaque AI oracle consumed by plugins declaring the
// AI capability. This is an optional service: when nil, AI-assisted
// plugins fail in isolation and the run degrades to keyword-only
// classification.
//
// Implementations map provider failures onto domain sentinels:
// domain.ErrRateLimited, domain.ErrAuthInvalid, context deadline errors
// for timeouts. Each failure is treated exactly like any other plugin
// execute failure.
type AIService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Summarise creates an abstract of document content, bounded to
	// roughly maxWords words.
	Summarise(ctx context.Context, content string, maxWords int) (string, error)

	// ModelName returns the provider/model selector in use.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used before committing to AI-assisted plugins.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// System is an optional system prompt.
	System string
}
