package domain

import (
	"fmt"
	"time"
)

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// LogFormat selects the conversation log record format.
type LogFormat string

// Supported log formats.
const (
	LogFormatText LogFormat = "txt"
	LogFormatJSON LogFormat = "json"
	LogFormatCSV  LogFormat = "csv"
)

// IsValid returns true if the format is recognised.
func (f LogFormat) IsValid() bool {
	switch f {
	case LogFormatText, LogFormatJSON, LogFormatCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f LogFormat) String() string {
	return string(f)
}

// LLMSettings holds LLM provider configuration. All generation parameters
// come from configuration, never hardcoded at call sites.
type LLMSettings struct {
	// Provider selects the adapter.
	Provider AIProvider

	// Model is the model name passed to the provider.
	Model string

	// BaseURL overrides the API endpoint (required for Ollama).
	BaseURL string

	// APIKey authenticates cloud providers.
	APIKey string

	// Temperature, TopP, FrequencyPenalty, and PresencePenalty are the
	// sampling parameters sent on every completion call.
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64

	// MaxTokens bounds the completion length.
	MaxTokens int

	// Timeout bounds a single API request.
	Timeout time.Duration

	// MaxRetries bounds the retry-with-backoff wrapper.
	MaxRetries int
}

// IsConfigured returns true if the provider is usable as configured.
func (s LLMSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// Validate checks that the LLM settings are well formed. A missing API key
// is not an error here: commands that never converse run without one, and
// the provider adapter constructor rejects it when a session is wired.
func (s LLMSettings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: unknown LLM provider %q", ErrConfig, s.Provider)
	}
	if s.MaxRetries < 1 {
		return fmt.Errorf("%w: max retries must be at least 1", ErrConfig)
	}
	return nil
}

// ConversationSettings holds conversation behaviour configuration.
type ConversationSettings struct {
	// MaxHistory bounds the stored message history length.
	MaxHistory int

	// ContextWindow is how many recent messages are sent to the LLM.
	ContextWindow int

	// LoggingEnabled controls whether finished conversations are persisted.
	LoggingEnabled bool

	// LogFormat selects the log record format.
	LogFormat LogFormat
}

// Validate checks the conversation settings invariants.
func (s ConversationSettings) Validate() error {
	if s.MaxHistory < 1 {
		return fmt.Errorf("%w: max history must be at least 1", ErrConfig)
	}
	if s.ContextWindow < 1 {
		return fmt.Errorf("%w: context window must be at least 1", ErrConfig)
	}
	if !s.LogFormat.IsValid() {
		return fmt.Errorf("%w: log format must be one of txt, json, csv", ErrConfig)
	}
	return nil
}

// SalesSettings holds sales-flow configuration.
type SalesSettings struct {
	// GreetingEnabled makes the assistant open new conversations.
	GreetingEnabled bool

	// RecommendationLimit bounds product selections per turn.
	RecommendationLimit int

	// ComparisonEnabled gates the product comparison flow.
	ComparisonEnabled bool
}

// Validate checks the sales settings invariants.
func (s SalesSettings) Validate() error {
	if s.RecommendationLimit < 1 {
		return fmt.Errorf("%w: recommendation limit must be at least 1", ErrConfig)
	}
	return nil
}

// PathSettings holds the file locations used by the adapters.
type PathSettings struct {
	// ProductsFile is the catalog source.
	ProductsFile string

	// PersonasFile is the persona source.
	PersonasFile string

	// ConversationsDir receives conversation log records.
	ConversationsDir string

	// HistoryDB is the SQLite conversation history index.
	HistoryDB string
}

// Settings is the immutable application configuration, constructed once at
// startup and passed by injection. There is no global settings singleton.
type Settings struct {
	LLM          LLMSettings
	Conversation ConversationSettings
	Sales        SalesSettings
	Paths        PathSettings
}

// Validate checks all settings sections.
func (s Settings) Validate() error {
	if err := s.LLM.Validate(); err != nil {
		return err
	}
	if err := s.Conversation.Validate(); err != nil {
		return err
	}
	return s.Sales.Validate()
}
