package llm

import "time"

const (
	// DefaultModel is the chat model used for all narrative generation.
	DefaultModel = "gpt-4o"

	// DefaultTimeout bounds a single chat completion call.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the number of attempts per generation call.
	DefaultMaxRetries = 3
)
