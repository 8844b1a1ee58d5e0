package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService. Replies are served in order and
// the queue draining is an error, so tests see exactly the calls they
// configured for.
type mockLLM struct {
	replies []string
	err     error
	calls   [][]driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage) (string, error) {
	m.calls = append(m.calls, messages)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", errors.New("mockLLM: reply queue exhausted")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockConvLogger implements driven.ConversationLogger.
type mockConvLogger struct {
	path   string
	err    error
	logged []*domain.Conversation
}

func (m *mockConvLogger) Log(conv *domain.Conversation) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.logged = append(m.logged, conv)
	return m.path, nil
}

// mockHistory implements driven.HistoryStore.
type mockHistory struct {
	saved []domain.Summary
	err   error
}

func (m *mockHistory) Save(summary domain.Summary) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, summary)
	return nil
}

func (m *mockHistory) List(limit int) ([]domain.Summary, error) {
	if limit > 0 && limit < len(m.saved) {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

func (m *mockHistory) Close() error { return nil }

// --- Fixtures ---

type sessionFixture struct {
	svc     *SessionService
	llm     *mockLLM
	convlog *mockConvLogger
	history *mockHistory
	persona *domain.Persona
}

func newSessionFixture(t *testing.T, llm *mockLLM) *sessionFixture {
	t.Helper()

	store := &mockCatalogStore{products: fixtureCatalog()}
	convlog := &mockConvLogger{path: "/tmp/conversations/conversation_test.txt"}
	history := &mockHistory{}

	svc := NewSessionService(
		llm,
		NewCatalogService(store),
		NewRecommendService(store),
		convlog,
		history,
		domain.ConversationSettings{
			MaxHistory:     20,
			ContextWindow:  10,
			LoggingEnabled: true,
			LogFormat:      domain.LogFormatText,
		},
		domain.SalesSettings{
			GreetingEnabled:     true,
			RecommendationLimit: 5,
			ComparisonEnabled:   true,
		},
	)

	persona := fixturePersona()
	persona.Budget = domain.BudgetRange{Min: 50, Max: 1000}

	return &sessionFixture{svc: svc, llm: llm, convlog: convlog, history: history, persona: persona}
}

// --- Tests ---

func TestSessionStartGeneratesGreeting(t *testing.T) {
	llm := &mockLLM{replies: []string{"Welcome in! What brings you by today?"}}
	f := newSessionFixture(t, llm)

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(conv.ID(), "CONV-"))
	assert.Len(t, strings.TrimPrefix(conv.ID(), "CONV-"), 12)
	assert.Equal(t, conv.ID(), strings.ToUpper(conv.ID()))

	messages := conv.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleAssistant, messages[0].Role)
	assert.Equal(t, "Welcome in! What brings you by today?", messages[0].Content)

	// the greeting call primes the model with a synthetic "Hello"
	require.Len(t, llm.calls, 1)
	require.Len(t, llm.calls[0], 2)
	assert.Equal(t, "Hello", llm.calls[0][1].Content)

	got, err := f.svc.Get(conv.ID())
	require.NoError(t, err)
	assert.Same(t, conv, got)
}

func TestSessionStartGreetingDisabled(t *testing.T) {
	llm := &mockLLM{}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	assert.Zero(t, conv.MessageCount())
	assert.Empty(t, llm.calls)
}

func TestSessionStartGreetingFailureUnregisters(t *testing.T) {
	llm := &mockLLM{err: errors.New("provider down")}
	f := newSessionFixture(t, llm)

	_, err := f.svc.Start(context.Background(), f.persona)
	require.ErrorIs(t, err, domain.ErrService)
	assert.Empty(t, f.svc.Active())
}

func TestSessionProcessMessage(t *testing.T) {
	llm := &mockLLM{replies: []string{
		"Intent: requesting_recommendation\nCategories: audio\nBudget: not mentioned\nRequirements: none",
		"The Aurora Pods Pro would be a great fit.",
	}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	reply, err := f.svc.ProcessMessage(context.Background(), conv, f.persona, "Any good headphones?")
	require.NoError(t, err)
	assert.Equal(t, "The Aurora Pods Pro would be a great fit.", reply)

	messages := conv.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.Equal(t, "recommendation", messages[1].Metadata["stage"])
	assert.Equal(t, "requesting_recommendation", messages[1].Metadata["intent"])
	assert.Equal(t, 1, messages[1].Metadata["products_shown"])

	// the generation prompt carries the selected category products
	require.Len(t, llm.calls, 2)
	assert.Contains(t, llm.calls[1][0].Content, "Aurora Pods Pro")
}

func TestSessionProcessMessageClassifierFailureDegrades(t *testing.T) {
	llm := &mockLLM{replies: []string{
		"gibberish the parser cannot use",
		"Happy to help! What are you working with today?",
	}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	reply, err := f.svc.ProcessMessage(context.Background(), conv, f.persona, "hmm")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	// unknown intent falls back to the discovery stage
	messages := conv.Messages()
	assert.Equal(t, "discovery", messages[1].Metadata["stage"])
	assert.Equal(t, "unknown", messages[1].Metadata["intent"])
}

func TestSessionProcessMessageGenerationFailure(t *testing.T) {
	llm := &mockLLM{replies: []string{"Intent: browsing\nCategories: none\nBudget: not mentioned\nRequirements: none"}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	// queue drains after the classifier call, so generation errors
	_, err = f.svc.ProcessMessage(context.Background(), conv, f.persona, "show me laptops")
	require.ErrorIs(t, err, domain.ErrService)

	// the user turn stays; no assistant message was appended
	messages := conv.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
}

func TestSessionProcessMessageClosedConversation(t *testing.T) {
	llm := &mockLLM{replies: []string{"bye"}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)
	require.NoError(t, f.svc.End(conv))

	_, err = f.svc.ProcessMessage(context.Background(), conv, f.persona, "hello?")
	assert.ErrorIs(t, err, domain.ErrConversationClosed)
}

func TestSessionRecommend(t *testing.T) {
	llm := &mockLLM{replies: []string{"Take a look at the Aurora Laptop 14."}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	reply, err := f.svc.Recommend(context.Background(), conv, f.persona, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	messages := conv.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "recommendation", messages[0].Metadata["stage"])
	assert.NotEmpty(t, messages[0].Metadata["products_recommended"])
}

func TestSessionCompare(t *testing.T) {
	llm := &mockLLM{replies: []string{"The laptop wins on battery; the monitor on screen size."}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	t.Run("skips unknown ids", func(t *testing.T) {
		reply, err := f.svc.Compare(context.Background(), conv, f.persona, []string{"PROD-001", "PROD-999", "PROD-003"})
		require.NoError(t, err)
		assert.NotEmpty(t, reply)
		assert.Contains(t, llm.calls[len(llm.calls)-1][0].Content, "Aurora Laptop 14")
	})

	t.Run("fails when nothing resolves", func(t *testing.T) {
		_, err := f.svc.Compare(context.Background(), conv, f.persona, []string{"PROD-998", "PROD-999"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("fails when disabled", func(t *testing.T) {
		f.svc.sales.ComparisonEnabled = false
		defer func() { f.svc.sales.ComparisonEnabled = true }()

		_, err := f.svc.Compare(context.Background(), conv, f.persona, []string{"PROD-001"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSessionSimilarTo(t *testing.T) {
	llm := &mockLLM{replies: []string{"You might also like these."}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.svc.SimilarTo(context.Background(), conv, f.persona, "PROD-999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no similar products", func(t *testing.T) {
		// PROD-002 is the only available audio product
		reply, err := f.svc.SimilarTo(context.Background(), conv, f.persona, "PROD-002")
		require.NoError(t, err)
		assert.Equal(t, "I couldn't find similar products at the moment.", reply)
		assert.Zero(t, conv.MessageCount())
	})
}

func TestSessionEnd(t *testing.T) {
	llm := &mockLLM{replies: []string{"hi"}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	require.NoError(t, f.svc.End(conv))

	assert.Equal(t, domain.StatusCompleted, conv.Status())
	require.Len(t, f.convlog.logged, 1)

	path, ok := conv.Metadata("log_path")
	require.True(t, ok)
	assert.Equal(t, f.convlog.path, path)

	require.Len(t, f.history.saved, 1)
	assert.Equal(t, conv.ID(), f.history.saved[0].ConversationID)
	assert.Equal(t, f.convlog.path, f.history.saved[0].LogPath)

	_, err = f.svc.Get(conv.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.svc.End(conv), domain.ErrConversationClosed)
}

func TestSessionAbandon(t *testing.T) {
	llm := &mockLLM{replies: []string{"hi"}}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	require.NoError(t, f.svc.Abandon(conv))
	assert.Equal(t, domain.StatusAbandoned, conv.Status())
	assert.Empty(t, f.svc.Active())
	assert.Len(t, f.history.saved, 1)
}

func TestSessionEndLoggingDisabled(t *testing.T) {
	llm := &mockLLM{}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false
	f.svc.conversation.LoggingEnabled = false

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	require.NoError(t, f.svc.End(conv))
	assert.Empty(t, f.convlog.logged)

	_, ok := conv.Metadata("log_path")
	assert.False(t, ok)
}

func TestSessionEndLogFailureKeepsNothingRegistered(t *testing.T) {
	llm := &mockLLM{}
	f := newSessionFixture(t, llm)
	f.svc.sales.GreetingEnabled = false
	f.convlog.err = errors.New("disk full")

	conv, err := f.svc.Start(context.Background(), f.persona)
	require.NoError(t, err)

	err = f.svc.End(conv)
	require.Error(t, err)
	assert.Empty(t, f.svc.Active())
}

func TestParseIntentAnalysis(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		check func(t *testing.T, a domain.IntentAnalysis)
	}{
		{
			name:  "full reply",
			reply: "Intent: comparing_products\nCategories: laptops, monitors\nBudget: $1,200.50\nRequirements: portable, quiet",
			check: func(t *testing.T, a domain.IntentAnalysis) {
				assert.Equal(t, domain.IntentComparing, a.Intent)
				assert.Equal(t, []string{"laptops", "monitors"}, a.Categories)
				require.NotNil(t, a.Budget)
				assert.InDelta(t, 1200.50, *a.Budget, 0.001)
				assert.Equal(t, []string{"portable", "quiet"}, a.Requirements)
			},
		},
		{
			name:  "none sentinels",
			reply: "Intent: browsing\nCategories: none\nBudget: not mentioned\nRequirements: none",
			check: func(t *testing.T, a domain.IntentAnalysis) {
				assert.Equal(t, domain.IntentBrowsing, a.Intent)
				assert.Empty(t, a.Categories)
				assert.Nil(t, a.Budget)
				assert.Empty(t, a.Requirements)
			},
		},
		{
			name:  "unrecognised intent",
			reply: "Intent: haggling\nCategories: none\nBudget: not mentioned\nRequirements: none",
			check: func(t *testing.T, a domain.IntentAnalysis) {
				assert.Equal(t, domain.IntentUnknown, a.Intent)
			},
		},
		{
			name:  "malformed budget ignored",
			reply: "Intent: browsing\nBudget: around a grand",
			check: func(t *testing.T, a domain.IntentAnalysis) {
				assert.Equal(t, domain.IntentBrowsing, a.Intent)
				assert.Nil(t, a.Budget)
			},
		},
		{
			name:  "lines without colons skipped",
			reply: "Sure, here is the analysis\nIntent: ready_to_buy",
			check: func(t *testing.T, a domain.IntentAnalysis) {
				assert.Equal(t, domain.IntentReadyToBuy, a.Intent)
			},
		},
		{
			name:  "empty reply",
			reply: "",
			check: func(t *testing.T, a domain.IntentAnalysis) {
				assert.Equal(t, domain.IntentUnknown, a.Intent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, parseIntentAnalysis(tt.reply))
		})
	}
}

func TestRelevantProductsBudgetCap(t *testing.T) {
	llm := &mockLLM{}
	f := newSessionFixture(t, llm)

	budget := 400.0
	analysis := domain.IntentAnalysis{
		Intent:     domain.IntentBrowsing,
		Categories: []string{"laptops", "monitors"},
		Budget:     &budget,
	}

	// laptop (899) exceeds the stated budget; monitor (349) survives
	products := f.svc.relevantProducts(f.persona, analysis)
	assert.Equal(t, []string{"PROD-003"}, collectIDs(products))
}
