package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConversation(t *testing.T) *Conversation {
	t.Helper()
	c, err := NewConversation("CONV-TEST", "persona-001", nil)
	require.NoError(t, err)
	return c
}

func TestNewMessage_Validation(t *testing.T) {
	_, err := NewMessage(RoleUser, "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewMessage(RoleUser, "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewMessage("moderator", "hello", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	m, err := NewMessage(RoleAssistant, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, m.Role)
	assert.NotNil(t, m.Metadata)
	assert.False(t, m.Timestamp.IsZero())
}

func TestNewConversation_Validation(t *testing.T) {
	_, err := NewConversation("", "persona-001", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewConversation("CONV-1", " ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	c, err := NewConversation("CONV-1", "persona-001", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, c.Status())
	assert.True(t, c.Active())
	assert.Nil(t, c.EndedAt())
}

func TestConversation_AddMessages(t *testing.T) {
	c := newTestConversation(t)

	_, err := c.AddUserMessage("hi there", nil)
	require.NoError(t, err)
	_, err = c.AddAssistantMessage("hello!", map[string]any{"stage": "greeting"})
	require.NoError(t, err)
	_, err = c.AddSystemMessage("system note", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, c.MessageCount())
	assert.Len(t, c.MessagesByRole(RoleUser), 1)
	assert.Len(t, c.MessagesByRole(RoleAssistant), 1)
}

func TestConversation_TerminalStateRejectsMutation(t *testing.T) {
	c := newTestConversation(t)
	require.NoError(t, c.Complete())

	_, err := c.AddUserMessage("too late", nil)
	assert.ErrorIs(t, err, ErrConversationClosed)

	err = c.AddMessage(Message{Role: RoleUser, Content: "still too late"})
	assert.ErrorIs(t, err, ErrConversationClosed)

	assert.ErrorIs(t, c.Complete(), ErrConversationClosed, "complete twice")
	assert.ErrorIs(t, c.Abandon(), ErrConversationClosed, "abandon after complete")
}

func TestConversation_Abandon(t *testing.T) {
	c := newTestConversation(t)
	require.NoError(t, c.Abandon())

	assert.Equal(t, StatusAbandoned, c.Status())
	require.NotNil(t, c.EndedAt())
	assert.False(t, c.EndedAt().Before(c.StartedAt()), "end timestamp >= start")
	assert.ErrorIs(t, c.Abandon(), ErrConversationClosed)
}

func TestConversation_Duration(t *testing.T) {
	c := newTestConversation(t)

	_, ok := c.Duration()
	assert.False(t, ok, "no duration while active")

	require.NoError(t, c.Complete())
	d, ok := c.Duration()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, d.Seconds(), 0.0)
}

func TestConversation_ContextWindow(t *testing.T) {
	c := newTestConversation(t)

	_, err := c.AddSystemMessage("persona context", nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = c.AddUserMessage(fmt.Sprintf("user %d", i), nil)
		require.NoError(t, err)
		_, err = c.AddAssistantMessage(fmt.Sprintf("assistant %d", i), nil)
		require.NoError(t, err)
	}

	window := c.ContextWindow(4)
	require.Len(t, window, 4)
	assert.Equal(t, "user 3", window[0].Content)
	assert.Equal(t, "assistant 3", window[1].Content)
	assert.Equal(t, "user 4", window[2].Content)
	assert.Equal(t, "assistant 4", window[3].Content)

	for _, m := range window {
		assert.NotEqual(t, RoleSystem, m.Role, "system messages are filtered out")
	}

	// A window covering the system message returns fewer than n messages.
	full := c.ContextWindow(100)
	assert.Len(t, full, 10)

	assert.Nil(t, c.ContextWindow(0))
	assert.Nil(t, c.ContextWindow(-1))
}

func TestConversation_MessagesReturnsCopy(t *testing.T) {
	c := newTestConversation(t)
	_, err := c.AddUserMessage("original", nil)
	require.NoError(t, err)

	msgs := c.Messages()
	msgs[0].Content = "mutated"

	assert.Equal(t, "original", c.Messages()[0].Content)
}

func TestConversation_Metadata(t *testing.T) {
	c := newTestConversation(t)

	_, ok := c.Metadata("log_path")
	assert.False(t, ok)

	c.SetMetadata("log_path", "/tmp/conv.txt")
	v, ok := c.Metadata("log_path")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/conv.txt", v)
}

func TestConversation_Summarize(t *testing.T) {
	c := newTestConversation(t)
	_, err := c.AddAssistantMessage("welcome", nil)
	require.NoError(t, err)
	_, err = c.AddUserMessage("hi", nil)
	require.NoError(t, err)
	c.SetMetadata("log_path", "/tmp/conv.txt")
	require.NoError(t, c.Complete())

	s := c.Summarize()
	assert.Equal(t, "CONV-TEST", s.ConversationID)
	assert.Equal(t, "persona-001", s.PersonaID)
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, 2, s.TotalMessages)
	assert.Equal(t, 1, s.UserMessages)
	assert.Equal(t, 1, s.AssistantMsgs)
	assert.Equal(t, "/tmp/conv.txt", s.LogPath)
	assert.NotNil(t, s.EndedAt)
}
