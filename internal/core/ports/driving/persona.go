package driving

import "github.com/salesmate-labs/salesmate-cli/internal/core/domain"

// PersonaDirectory exposes the loaded customer personas to the UIs.
type PersonaDirectory interface {
	// All returns every persona in source order.
	All() []domain.Persona

	// ByID returns the persona with the given ID, or domain.ErrNotFound.
	ByID(id string) (*domain.Persona, error)
}

// HistoryBrowser exposes the recorded conversation history.
type HistoryBrowser interface {
	// List returns recorded summaries, most recent first, up to limit.
	// A non-positive limit returns everything.
	List(limit int) ([]domain.Summary, error)
}
