package driving

import (
	"context"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// SessionService orchestrates sales conversations: lifecycle, intent
// classification, product selection, and reply generation.
type SessionService interface {
	// Start creates a conversation for the persona and registers it. When
	// greeting is enabled an opening assistant message is generated first.
	Start(ctx context.Context, persona *domain.Persona) (*domain.Conversation, error)

	// ProcessMessage handles one user turn and returns the assistant reply.
	// The user message is appended before generation; an LLM failure
	// surfaces as domain.ErrService and appends no assistant message.
	ProcessMessage(ctx context.Context, conversation *domain.Conversation, persona *domain.Persona, userMessage string) (string, error)

	// Recommend generates a recommendation reply from the persona's
	// ranked products and appends it to the conversation.
	Recommend(ctx context.Context, conversation *domain.Conversation, persona *domain.Persona, limit int) (string, error)

	// Compare generates a comparison reply over the named products.
	Compare(ctx context.Context, conversation *domain.Conversation, persona *domain.Persona, productIDs []string) (string, error)

	// SimilarTo generates a reply recommending products similar to the
	// named product.
	SimilarTo(ctx context.Context, conversation *domain.Conversation, persona *domain.Persona, productID string) (string, error)

	// End completes the conversation, persists its log record, and
	// removes it from the active registry.
	End(conversation *domain.Conversation) error

	// Abandon marks the conversation abandoned, persists its log record,
	// and removes it from the active registry.
	Abandon(conversation *domain.Conversation) error

	// Get returns an active conversation by id, or domain.ErrNotFound.
	Get(conversationID string) (*domain.Conversation, error)

	// Active returns all currently active conversations.
	Active() []*domain.Conversation
}
