package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService orchestrates sales conversations. It owns the active
// conversation registry and drives the classify -> stage -> select ->
// generate pipeline for each user turn.
//
// The registry is a plain map: the CLI runs one conversation at a time
// and all session operations happen on the command goroutine.
type SessionService struct {
	llm         driven.LLMService
	catalog     driving.CatalogService
	recommender driving.Recommender
	convlog     driven.ConversationLogger
	history     driven.HistoryStore
	prompts     *PromptBuilder

	conversation domain.ConversationSettings
	sales        domain.SalesSettings

	active map[string]*domain.Conversation
}

// NewSessionService creates a session orchestrator. The conversation
// logger and history store may be nil when conversation logging is
// disabled.
func NewSessionService(
	llm driven.LLMService,
	catalog driving.CatalogService,
	recommender driving.Recommender,
	convlog driven.ConversationLogger,
	history driven.HistoryStore,
	conversation domain.ConversationSettings,
	sales domain.SalesSettings,
) *SessionService {
	return &SessionService{
		llm:          llm,
		catalog:      catalog,
		recommender:  recommender,
		convlog:      convlog,
		history:      history,
		prompts:      NewPromptBuilder(),
		conversation: conversation,
		sales:        sales,
		active:       make(map[string]*domain.Conversation),
	}
}

// Start creates a conversation for the persona and registers it. When
// greeting is enabled an opening assistant message is generated first.
func (s *SessionService) Start(ctx context.Context, persona *domain.Persona) (*domain.Conversation, error) {
	conv, err := domain.NewConversation(newConversationID(), persona.ID, map[string]any{
		"persona_name": persona.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("start conversation: %w", err)
	}

	s.active[conv.ID()] = conv
	logger.Info("conversation %s started for persona %s", conv.ID(), persona.ID)

	if s.sales.GreetingEnabled {
		greeting, err := s.generateGreeting(ctx, persona)
		if err != nil {
			delete(s.active, conv.ID())
			return nil, err
		}
		if _, err := conv.AddAssistantMessage(greeting, map[string]any{"stage": domain.StageGreeting.String()}); err != nil {
			delete(s.active, conv.ID())
			return nil, fmt.Errorf("start conversation: %w", err)
		}
	}

	return conv, nil
}

// newConversationID builds a "CONV-" id with twelve uppercase hex chars.
func newConversationID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CONV-" + strings.ToUpper(hex[:12])
}

// ProcessMessage handles one user turn. The user message is appended
// before generation, so a generation failure keeps the user turn in the
// history and appends no assistant message.
func (s *SessionService) ProcessMessage(ctx context.Context, conv *domain.Conversation, persona *domain.Persona, userMessage string) (string, error) {
	if _, err := conv.AddUserMessage(userMessage, nil); err != nil {
		return "", err
	}

	analysis := s.classifyIntent(ctx, userMessage)
	stage := analysis.Intent.Stage()
	products := s.relevantProducts(persona, analysis)

	logger.Debug("turn: intent=%s stage=%s products=%d", analysis.Intent, stage, len(products))

	systemPrompt := s.prompts.SystemPrompt(persona, products, stage)
	reply, err := s.generate(ctx, systemPrompt, conv)
	if err != nil {
		return "", err
	}

	if _, err := conv.AddAssistantMessage(reply, map[string]any{
		"stage":          stage.String(),
		"intent":         analysis.Intent.String(),
		"products_shown": len(products),
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// Recommend generates a recommendation reply from the persona's ranked
// products and appends it to the conversation.
func (s *SessionService) Recommend(ctx context.Context, conv *domain.Conversation, persona *domain.Persona, limit int) (string, error) {
	if !conv.Active() {
		return "", fmt.Errorf("%w: cannot recommend into %s conversation", domain.ErrConversationClosed, conv.Status())
	}
	if limit <= 0 {
		limit = s.sales.RecommendationLimit
	}

	products := s.recommender.Recommend(persona, limit)
	prompt := s.prompts.RecommendationPrompt(persona, products)

	reply, err := s.generate(ctx, prompt, conv)
	if err != nil {
		return "", err
	}

	if _, err := conv.AddAssistantMessage(reply, map[string]any{
		"stage":                domain.StageRecommendation.String(),
		"products_recommended": productIDs(products),
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// Compare generates a comparison reply over the named products. Unknown
// product IDs are skipped; the call fails only when none resolve.
func (s *SessionService) Compare(ctx context.Context, conv *domain.Conversation, persona *domain.Persona, ids []string) (string, error) {
	if !s.sales.ComparisonEnabled {
		return "", fmt.Errorf("%w: product comparison is disabled", domain.ErrInvalidInput)
	}
	if !conv.Active() {
		return "", fmt.Errorf("%w: cannot compare into %s conversation", domain.ErrConversationClosed, conv.Status())
	}

	var products []domain.Product
	for _, id := range ids {
		p, err := s.catalog.ByID(id)
		if err != nil {
			logger.Warn("comparison: skipping unknown product %s", id)
			continue
		}
		products = append(products, *p)
	}
	if len(products) == 0 {
		return "", fmt.Errorf("%w: no valid products found for comparison", domain.ErrNotFound)
	}

	prompt := s.prompts.ComparisonPrompt(persona, products)
	reply, err := s.generate(ctx, prompt, conv)
	if err != nil {
		return "", err
	}

	if _, err := conv.AddAssistantMessage(reply, map[string]any{
		"stage":             domain.StageComparison.String(),
		"products_compared": ids,
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// SimilarTo generates a reply recommending products similar to the named
// product. When nothing similar exists a fixed apology is returned and no
// message is appended.
func (s *SessionService) SimilarTo(ctx context.Context, conv *domain.Conversation, persona *domain.Persona, productID string) (string, error) {
	if !conv.Active() {
		return "", fmt.Errorf("%w: cannot recommend into %s conversation", domain.ErrConversationClosed, conv.Status())
	}

	product, err := s.catalog.ByID(productID)
	if err != nil {
		return "", err
	}

	similar := s.recommender.Similar(product, 3)
	if len(similar) == 0 {
		return "I couldn't find similar products at the moment.", nil
	}

	prompt := s.prompts.RecommendationPrompt(persona, similar)
	reply, err := s.generate(ctx, prompt, conv)
	if err != nil {
		return "", err
	}

	if _, err := conv.AddAssistantMessage(reply, map[string]any{
		"stage":          domain.StageRecommendation.String(),
		"similar_to":     productID,
		"products_shown": productIDs(similar),
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// End completes the conversation, persists its log record, and removes it
// from the active registry.
func (s *SessionService) End(conv *domain.Conversation) error {
	if err := conv.Complete(); err != nil {
		return err
	}
	return s.finish(conv)
}

// Abandon marks the conversation abandoned, persists its log record, and
// removes it from the active registry.
func (s *SessionService) Abandon(conv *domain.Conversation) error {
	if err := conv.Abandon(); err != nil {
		return err
	}
	return s.finish(conv)
}

func (s *SessionService) finish(conv *domain.Conversation) error {
	defer delete(s.active, conv.ID())

	if s.conversation.LoggingEnabled && s.convlog != nil {
		path, err := s.convlog.Log(conv)
		if err != nil {
			return fmt.Errorf("log conversation %s: %w", conv.ID(), err)
		}
		conv.SetMetadata("log_path", path)
		logger.Info("conversation %s logged to %s", conv.ID(), path)
	}

	if s.history != nil {
		if err := s.history.Save(conv.Summarize()); err != nil {
			return fmt.Errorf("record conversation %s history: %w", conv.ID(), err)
		}
	}

	return nil
}

// Get returns an active conversation by id.
func (s *SessionService) Get(conversationID string) (*domain.Conversation, error) {
	conv, ok := s.active[conversationID]
	if !ok {
		return nil, fmt.Errorf("%w: no active conversation %s", domain.ErrNotFound, conversationID)
	}
	return conv, nil
}

// Active returns all currently active conversations.
func (s *SessionService) Active() []*domain.Conversation {
	out := make([]*domain.Conversation, 0, len(s.active))
	for _, conv := range s.active {
		out = append(out, conv)
	}
	return out
}

// generate sends the system prompt plus the conversation's context window
// to the LLM and wraps any failure as a service error.
func (s *SessionService) generate(ctx context.Context, systemPrompt string, conv *domain.Conversation) (string, error) {
	messages := []driven.ChatMessage{{Role: domain.RoleSystem.String(), Content: systemPrompt}}
	for _, m := range conv.ContextWindow(s.conversation.ContextWindow) {
		messages = append(messages, driven.ChatMessage{Role: m.Role.String(), Content: m.Content})
	}

	reply, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: generate response: %w", domain.ErrService, err)
	}
	return reply, nil
}

// generateGreeting opens a conversation with a persona-tailored greeting.
// The synthetic "Hello" user turn primes the model without polluting the
// conversation history.
func (s *SessionService) generateGreeting(ctx context.Context, persona *domain.Persona) (string, error) {
	messages := []driven.ChatMessage{
		{Role: domain.RoleSystem.String(), Content: s.prompts.GreetingPrompt(persona)},
		{Role: domain.RoleUser.String(), Content: "Hello"},
	}

	greeting, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: generate greeting: %w", domain.ErrService, err)
	}
	return greeting, nil
}

// classifyIntent asks the LLM to tag the user's message. Classification
// never fails the turn: any LLM or parse problem degrades to the unknown
// analysis and the pipeline proceeds with discovery defaults.
func (s *SessionService) classifyIntent(ctx context.Context, userMessage string) domain.IntentAnalysis {
	messages := []driven.ChatMessage{
		{Role: domain.RoleSystem.String(), Content: s.prompts.IntentPrompt()},
		{Role: domain.RoleUser.String(), Content: userMessage},
	}

	reply, err := s.llm.Chat(ctx, messages)
	if err != nil {
		logger.Warn("intent classification failed, proceeding with unknown intent: %v", err)
		return domain.UnknownIntent()
	}

	return parseIntentAnalysis(reply)
}

// parseIntentAnalysis reads the classifier's line-oriented reply. Lines
// without a colon are skipped; unparseable values leave the field at its
// unknown/empty default.
func parseIntentAnalysis(reply string) domain.IntentAnalysis {
	analysis := domain.UnknownIntent()

	for _, line := range strings.Split(strings.TrimSpace(reply), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "intent":
			analysis.Intent = domain.ParseIntent(strings.ToLower(value))
		case "categories":
			if !strings.EqualFold(value, "none") {
				analysis.Categories = splitList(value)
			}
		case "budget":
			if strings.EqualFold(value, "not mentioned") {
				continue
			}
			raw := strings.NewReplacer("$", "", ",", "").Replace(value)
			if budget, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				analysis.Budget = &budget
			}
		case "requirements":
			if !strings.EqualFold(value, "none") {
				analysis.Requirements = splitList(value)
			}
		}
	}

	return analysis
}

// splitList parses a comma-separated classifier value.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// relevantProducts selects the products shown to the model for a turn:
// category matches when the user named categories, otherwise the persona's
// ranked recommendations, then capped by any budget the user stated.
func (s *SessionService) relevantProducts(persona *domain.Persona, analysis domain.IntentAnalysis) []domain.Product {
	var products []domain.Product
	if len(analysis.Categories) > 0 {
		products = s.catalog.ByCategories(analysis.Categories, s.sales.RecommendationLimit)
	} else {
		products = s.recommender.Recommend(persona, s.sales.RecommendationLimit)
	}

	if analysis.Budget == nil {
		return products
	}

	var affordable []domain.Product
	for _, p := range products {
		if p.Price.Price <= *analysis.Budget {
			affordable = append(affordable, p)
		}
	}
	return affordable
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
