package services

import (
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
)

// Ensure PersonaService implements the interface.
var _ driving.PersonaDirectory = (*PersonaService)(nil)

// PersonaService exposes the loaded personas to the UIs.
type PersonaService struct {
	store driven.PersonaStore
}

// NewPersonaService creates a new persona service.
func NewPersonaService(store driven.PersonaStore) *PersonaService {
	return &PersonaService{store: store}
}

// All returns every persona in source order.
func (s *PersonaService) All() []domain.Persona {
	return s.store.All()
}

// ByID returns the persona with the given ID.
func (s *PersonaService) ByID(id string) (*domain.Persona, error) {
	return s.store.ByID(id)
}
