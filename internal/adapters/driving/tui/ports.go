// Package tui provides the interactive terminal user interface for salesmate.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session runs sales conversations.
	Session driving.SessionService

	// Personas provides the customer personas to pick from.
	Personas driving.PersonaDirectory
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SessionService, personas driving.PersonaDirectory) *Ports {
	return &Ports{
		Session:  session,
		Personas: personas,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Personas == nil {
		return ErrMissingPersonaDirectory
	}
	return nil
}
