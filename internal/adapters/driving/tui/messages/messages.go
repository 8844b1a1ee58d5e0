// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPersonas is the persona picker.
	ViewPersonas ViewType = iota
	// ViewChat is the conversation view.
	ViewChat
	// ViewHelp is the keybindings overview.
	ViewHelp
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// PersonaChosen is sent when a persona is selected in the picker.
type PersonaChosen struct {
	Persona domain.Persona
}

// SessionStarted carries the result of starting a conversation.
type SessionStarted struct {
	Conversation *domain.Conversation
	Err          error
}

// ReplyReceived carries an assistant reply back to the chat view.
type ReplyReceived struct {
	Reply string
	Err   error
}

// SessionEnded is sent when the conversation has been closed.
type SessionEnded struct {
	Err error
}

// ErrorOccurred signals a failure to display.
type ErrorOccurred struct {
	Err error
}
