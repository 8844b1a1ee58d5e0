package domain

import (
	"fmt"
	"strings"
	"time"
)

// MessageRole identifies who authored a message.
type MessageRole string

// Recognised message roles.
const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// IsValid returns true if the role is recognised.
func (r MessageRole) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r MessageRole) String() string {
	return string(r)
}

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

// Lifecycle states. Active is initial; completed and abandoned are terminal.
const (
	StatusActive    ConversationStatus = "active"
	StatusCompleted ConversationStatus = "completed"
	StatusAbandoned ConversationStatus = "abandoned"
)

// String returns the string representation.
func (s ConversationStatus) String() string {
	return string(s)
}

// Message is a single conversation turn. Immutable once created.
type Message struct {
	// Role identifies the author.
	Role MessageRole

	// Content is the message text. Never empty.
	Content string

	// Timestamp is when the message was created.
	Timestamp time.Time

	// Metadata holds free-form annotations (stage, intent, product counts).
	Metadata map[string]any
}

// NewMessage creates a message, validating the role and content.
func NewMessage(role MessageRole, content string, metadata map[string]any) (Message, error) {
	if !role.IsValid() {
		return Message{}, fmt.Errorf("%w: unknown message role %q", ErrInvalidInput, role)
	}
	if strings.TrimSpace(content) == "" {
		return Message{}, fmt.Errorf("%w: message content cannot be empty", ErrInvalidInput)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Message{Role: role, Content: content, Timestamp: time.Now(), Metadata: metadata}, nil
}

// IsSystem reports whether this is a system message.
func (m Message) IsSystem() bool {
	return m.Role == RoleSystem
}

// DisplayFormat renders the message for transcripts and log files.
func (m Message) DisplayFormat() string {
	return fmt.Sprintf("[%s] %s: %s",
		m.Timestamp.Format("2006-01-02 15:04:05"),
		strings.ToUpper(string(m.Role[0]))+string(m.Role[1:]),
		m.Content)
}

// Conversation tracks a single session's message history and lifecycle.
// It is owned exclusively by the session orchestrator for its lifetime;
// messages are append-only and only permitted while the status is active.
type Conversation struct {
	id        string
	personaID string
	messages  []Message
	status    ConversationStatus
	startedAt time.Time
	endedAt   *time.Time
	metadata  map[string]any
}

// NewConversation creates an active conversation for the given persona.
func NewConversation(id, personaID string, metadata map[string]any) (*Conversation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: conversation ID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(personaID) == "" {
		return nil, fmt.Errorf("%w: persona ID is required", ErrInvalidInput)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Conversation{
		id:        id,
		personaID: personaID,
		status:    StatusActive,
		startedAt: time.Now(),
		metadata:  metadata,
	}, nil
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string { return c.id }

// PersonaID returns the owning persona's identifier.
func (c *Conversation) PersonaID() string { return c.personaID }

// Status returns the lifecycle state.
func (c *Conversation) Status() ConversationStatus { return c.status }

// Active reports whether the conversation still accepts messages.
func (c *Conversation) Active() bool { return c.status == StatusActive }

// StartedAt returns the creation timestamp.
func (c *Conversation) StartedAt() time.Time { return c.startedAt }

// EndedAt returns the end timestamp, or nil while active.
func (c *Conversation) EndedAt() *time.Time { return c.endedAt }

// MessageCount returns the number of messages recorded so far.
func (c *Conversation) MessageCount() int { return len(c.messages) }

// Messages returns a copy of the full message history in order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessagesByRole returns the messages authored by the given role, in order.
func (c *Conversation) MessagesByRole(role MessageRole) []Message {
	var out []Message
	for _, m := range c.messages {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

// AddMessage appends a message. Fails when the conversation is not active.
func (c *Conversation) AddMessage(m Message) error {
	if !c.Active() {
		return fmt.Errorf("%w: cannot add message to %s conversation", ErrConversationClosed, c.status)
	}
	c.messages = append(c.messages, m)
	return nil
}

// AddUserMessage appends a user-authored message.
func (c *Conversation) AddUserMessage(content string, metadata map[string]any) (Message, error) {
	return c.addRoleMessage(RoleUser, content, metadata)
}

// AddAssistantMessage appends an assistant-authored message.
func (c *Conversation) AddAssistantMessage(content string, metadata map[string]any) (Message, error) {
	return c.addRoleMessage(RoleAssistant, content, metadata)
}

// AddSystemMessage appends a system message.
func (c *Conversation) AddSystemMessage(content string, metadata map[string]any) (Message, error) {
	return c.addRoleMessage(RoleSystem, content, metadata)
}

func (c *Conversation) addRoleMessage(role MessageRole, content string, metadata map[string]any) (Message, error) {
	m, err := NewMessage(role, content, metadata)
	if err != nil {
		return Message{}, err
	}
	if err := c.AddMessage(m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// ContextWindow returns the last n messages with system messages filtered
// out, preserving chronological order. This is the bounded conversational
// memory sent to the LLM.
func (c *Conversation) ContextWindow(n int) []Message {
	if n <= 0 {
		return nil
	}
	start := len(c.messages) - n
	if start < 0 {
		start = 0
	}
	var out []Message
	for _, m := range c.messages[start:] {
		if m.IsSystem() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Complete transitions active -> completed and stamps the end time.
// Fails when the conversation is already terminal.
func (c *Conversation) Complete() error {
	return c.end(StatusCompleted)
}

// Abandon transitions active -> abandoned and stamps the end time.
// Fails when the conversation is already terminal.
func (c *Conversation) Abandon() error {
	return c.end(StatusAbandoned)
}

func (c *Conversation) end(terminal ConversationStatus) error {
	if !c.Active() {
		return fmt.Errorf("%w: conversation is already %s", ErrConversationClosed, c.status)
	}
	now := time.Now()
	if now.Before(c.startedAt) {
		now = c.startedAt
	}
	c.status = terminal
	c.endedAt = &now
	return nil
}

// Duration returns how long the conversation ran. The second return is
// false while the conversation is still active.
func (c *Conversation) Duration() (time.Duration, bool) {
	if c.endedAt == nil {
		return 0, false
	}
	return c.endedAt.Sub(c.startedAt), true
}

// Metadata returns the metadata value for key, if present.
func (c *Conversation) Metadata(key string) (any, bool) {
	v, ok := c.metadata[key]
	return v, ok
}

// SetMetadata records a metadata value. Permitted in any state; metadata is
// bookkeeping, not conversation content.
func (c *Conversation) SetMetadata(key string, value any) {
	c.metadata[key] = value
}

// Summary aggregates conversation statistics for history displays.
type Summary struct {
	ConversationID string
	PersonaID      string
	Status         ConversationStatus
	StartedAt      time.Time
	EndedAt        *time.Time
	TotalMessages  int
	UserMessages   int
	AssistantMsgs  int
	LogPath        string
}

// Summarize builds a Summary snapshot of the conversation.
func (c *Conversation) Summarize() Summary {
	s := Summary{
		ConversationID: c.id,
		PersonaID:      c.personaID,
		Status:         c.status,
		StartedAt:      c.startedAt,
		EndedAt:        c.endedAt,
		TotalMessages:  len(c.messages),
	}
	for _, m := range c.messages {
		switch m.Role {
		case RoleUser:
			s.UserMessages++
		case RoleAssistant:
			s.AssistantMsgs++
		}
	}
	if v, ok := c.metadata["log_path"]; ok {
		if p, ok := v.(string); ok {
			s.LogPath = p
		}
	}
	return s
}
