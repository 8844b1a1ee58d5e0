package driven

import "github.com/salesmate-labs/salesmate-cli/internal/core/domain"

// ConversationLogger durably records a finished conversation. Called once
// per conversation end; implementations must be idempotent for a single
// call per conversation (the filename is derived from the conversation id
// and start time, so a repeated call overwrites the same record).
type ConversationLogger interface {
	// Log persists the conversation and returns the record's path.
	Log(conversation *domain.Conversation) (string, error)
}

// HistoryStore indexes finished conversations for the history listing.
type HistoryStore interface {
	// Save records a conversation summary.
	Save(summary domain.Summary) error

	// List returns recorded summaries, most recent first, up to limit.
	// A non-positive limit returns everything.
	List(limit int) ([]domain.Summary, error)

	// Close releases the underlying storage.
	Close() error
}
