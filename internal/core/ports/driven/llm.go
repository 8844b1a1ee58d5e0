package driven

import "context"

// LLMService provides text completion for conversation turns, greetings,
// and intent classification.
//
// Implementations may include:
//   - OpenAI (chat completions)
//   - Anthropic (messages API)
//   - Ollama (local models)
//
// All implementations block the calling goroutine until the provider
// responds or the configured timeout elapses. Callers never pass sampling
// parameters directly; the adapter is constructed with them.
type LLMService interface {
	// Chat produces a completion for the given message sequence. The
	// first message is conventionally the system prompt.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup to fail fast on misconfiguration.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage is a single provider-format conversation message.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
