package tui

import (
	"context"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// MockSessionService implements driving.SessionService for tests.
// Replies are popped from a queue; an exhausted queue returns an error.
type MockSessionService struct {
	StartErr   error
	ReplyQueue []string
	ReplyErr   error
	EndErr     error

	Started   []*domain.Conversation
	Processed []string
	Ended     []string
}

func (m *MockSessionService) Start(_ context.Context, persona *domain.Persona) (*domain.Conversation, error) {
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	conv, err := domain.NewConversation("CONV-TEST00000001", persona.ID, nil)
	if err != nil {
		return nil, err
	}
	_, _ = conv.AddAssistantMessage("Welcome to TechHub! How can I help you today?", nil)
	m.Started = append(m.Started, conv)
	return conv, nil
}

func (m *MockSessionService) ProcessMessage(_ context.Context, conv *domain.Conversation, _ *domain.Persona, userMessage string) (string, error) {
	m.Processed = append(m.Processed, userMessage)
	return m.nextReply()
}

func (m *MockSessionService) Recommend(_ context.Context, _ *domain.Conversation, _ *domain.Persona, _ int) (string, error) {
	return m.nextReply()
}

func (m *MockSessionService) Compare(_ context.Context, _ *domain.Conversation, _ *domain.Persona, _ []string) (string, error) {
	return m.nextReply()
}

func (m *MockSessionService) SimilarTo(_ context.Context, _ *domain.Conversation, _ *domain.Persona, _ string) (string, error) {
	return m.nextReply()
}

func (m *MockSessionService) End(conv *domain.Conversation) error {
	if m.EndErr != nil {
		return m.EndErr
	}
	m.Ended = append(m.Ended, conv.ID())
	return conv.Complete()
}

func (m *MockSessionService) Abandon(conv *domain.Conversation) error {
	m.Ended = append(m.Ended, conv.ID())
	return conv.Abandon()
}

func (m *MockSessionService) Get(conversationID string) (*domain.Conversation, error) {
	for _, c := range m.Started {
		if c.ID() == conversationID {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSessionService) Active() []*domain.Conversation {
	return m.Started
}

func (m *MockSessionService) nextReply() (string, error) {
	if m.ReplyErr != nil {
		return "", m.ReplyErr
	}
	if len(m.ReplyQueue) == 0 {
		return "", domain.ErrService
	}
	reply := m.ReplyQueue[0]
	m.ReplyQueue = m.ReplyQueue[1:]
	return reply, nil
}

// MockPersonaDirectory implements driving.PersonaDirectory for tests.
type MockPersonaDirectory struct {
	Items []domain.Persona
}

func (m *MockPersonaDirectory) All() []domain.Persona {
	return m.Items
}

func (m *MockPersonaDirectory) ByID(id string) (*domain.Persona, error) {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return &m.Items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func testPersona(id, name string) domain.Persona {
	return domain.Persona{
		ID:            id,
		Name:          name,
		Age:           29,
		Occupation:    "Engineer",
		TechSavviness: domain.TechHigh,
		Budget:        domain.BudgetRange{Min: 100, Max: 900, SweetSpot: 500},
		CategoriesOfInterest: []string{
			"laptops",
		},
	}
}
