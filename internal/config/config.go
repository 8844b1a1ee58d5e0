// Package config builds the immutable runtime settings. Precedence, lowest
// to highest: built-in defaults, the TOML config file, then environment
// variables (a .env file is folded into the environment first).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Default values matching a fresh installation.
const (
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 2000
	DefaultTimeout     = 60 * time.Second
	DefaultMaxRetries  = 3

	DefaultMaxHistory    = 20
	DefaultContextWindow = 10

	DefaultRecommendationLimit = 50
)

// fileConfig mirrors the TOML config file layout.
type fileConfig struct {
	LLM struct {
		Provider         string  `toml:"provider"`
		Model            string  `toml:"model"`
		BaseURL          string  `toml:"base_url"`
		APIKey           string  `toml:"api_key"`
		Temperature      float64 `toml:"temperature"`
		TopP             float64 `toml:"top_p"`
		FrequencyPenalty float64 `toml:"frequency_penalty"`
		PresencePenalty  float64 `toml:"presence_penalty"`
		MaxTokens        int     `toml:"max_tokens"`
		TimeoutSeconds   int     `toml:"timeout_seconds"`
		MaxRetries       int     `toml:"max_retries"`
	} `toml:"llm"`

	Conversation struct {
		MaxHistory    int    `toml:"max_history"`
		ContextWindow int    `toml:"context_window"`
		EnableLogging *bool  `toml:"enable_logging"`
		LogFormat     string `toml:"log_format"`
	} `toml:"conversation"`

	Sales struct {
		GreetingEnabled     *bool `toml:"greeting_enabled"`
		RecommendationLimit int   `toml:"recommendation_limit"`
		ComparisonEnabled   *bool `toml:"comparison_enabled"`
	} `toml:"sales"`

	Paths struct {
		ProductsFile     string `toml:"products_file"`
		PersonasFile     string `toml:"personas_file"`
		ConversationsDir string `toml:"conversations_dir"`
		HistoryDB        string `toml:"history_db"`
	} `toml:"paths"`
}

// Load builds the runtime settings. The config file path may be empty, in
// which case ~/.salesmate/config.toml is tried; a missing file is fine,
// defaults and the environment carry the configuration.
func Load(path string) (domain.Settings, error) {
	// fold .env into the process environment; absence is not an error
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	settings := defaults()

	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".salesmate", "config.toml")
		}
	}
	if path != "" {
		if err := applyFile(&settings, path); err != nil {
			return domain.Settings{}, err
		}
	}

	applyEnv(&settings)

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func defaults() domain.Settings {
	return domain.Settings{
		LLM: domain.LLMSettings{
			Provider:    domain.AIProviderOpenAI,
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			TopP:        DefaultTopP,
			MaxTokens:   DefaultMaxTokens,
			Timeout:     DefaultTimeout,
			MaxRetries:  DefaultMaxRetries,
		},
		Conversation: domain.ConversationSettings{
			MaxHistory:     DefaultMaxHistory,
			ContextWindow:  DefaultContextWindow,
			LoggingEnabled: true,
			LogFormat:      domain.LogFormatText,
		},
		Sales: domain.SalesSettings{
			GreetingEnabled:     true,
			RecommendationLimit: DefaultRecommendationLimit,
			ComparisonEnabled:   true,
		},
		Paths: domain.PathSettings{
			ProductsFile:     filepath.Join("data", "products", "products.json"),
			PersonasFile:     filepath.Join("data", "personas", "personas.json"),
			ConversationsDir: filepath.Join("logs", "conversations"),
			HistoryDB:        filepath.Join("logs", "history.db"),
		},
	}
}

func applyFile(settings *domain.Settings, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read config file %s: %w", domain.ErrConfig, path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("%w: parse config file %s: %w", domain.ErrConfig, path, err)
	}
	logger.Debug("loaded config file %s", path)

	if fc.LLM.Provider != "" {
		settings.LLM.Provider = domain.AIProvider(fc.LLM.Provider)
	}
	setString(&settings.LLM.Model, fc.LLM.Model)
	setString(&settings.LLM.BaseURL, fc.LLM.BaseURL)
	setString(&settings.LLM.APIKey, fc.LLM.APIKey)
	setFloat(&settings.LLM.Temperature, fc.LLM.Temperature)
	setFloat(&settings.LLM.TopP, fc.LLM.TopP)
	setFloat(&settings.LLM.FrequencyPenalty, fc.LLM.FrequencyPenalty)
	setFloat(&settings.LLM.PresencePenalty, fc.LLM.PresencePenalty)
	setInt(&settings.LLM.MaxTokens, fc.LLM.MaxTokens)
	setInt(&settings.LLM.MaxRetries, fc.LLM.MaxRetries)
	if fc.LLM.TimeoutSeconds > 0 {
		settings.LLM.Timeout = time.Duration(fc.LLM.TimeoutSeconds) * time.Second
	}

	setInt(&settings.Conversation.MaxHistory, fc.Conversation.MaxHistory)
	setInt(&settings.Conversation.ContextWindow, fc.Conversation.ContextWindow)
	setBool(&settings.Conversation.LoggingEnabled, fc.Conversation.EnableLogging)
	if fc.Conversation.LogFormat != "" {
		settings.Conversation.LogFormat = domain.LogFormat(fc.Conversation.LogFormat)
	}

	setBool(&settings.Sales.GreetingEnabled, fc.Sales.GreetingEnabled)
	setInt(&settings.Sales.RecommendationLimit, fc.Sales.RecommendationLimit)
	setBool(&settings.Sales.ComparisonEnabled, fc.Sales.ComparisonEnabled)

	setString(&settings.Paths.ProductsFile, fc.Paths.ProductsFile)
	setString(&settings.Paths.PersonasFile, fc.Paths.PersonasFile)
	setString(&settings.Paths.ConversationsDir, fc.Paths.ConversationsDir)
	setString(&settings.Paths.HistoryDB, fc.Paths.HistoryDB)

	return nil
}

// applyEnv layers environment overrides on top. The provider key variables
// keep their conventional names; everything else is prefixed SALESMATE_.
func applyEnv(settings *domain.Settings) {
	if v := os.Getenv("SALESMATE_PROVIDER"); v != "" {
		settings.LLM.Provider = domain.AIProvider(v)
	}
	switch settings.LLM.Provider {
	case domain.AIProviderOpenAI:
		envString(&settings.LLM.APIKey, "OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		envString(&settings.LLM.APIKey, "ANTHROPIC_API_KEY")
	}
	envString(&settings.LLM.APIKey, "SALESMATE_API_KEY")
	envString(&settings.LLM.Model, "SALESMATE_MODEL")
	envString(&settings.LLM.BaseURL, "SALESMATE_BASE_URL")
	envFloat(&settings.LLM.Temperature, "SALESMATE_TEMPERATURE")
	envFloat(&settings.LLM.TopP, "SALESMATE_TOP_P")
	envFloat(&settings.LLM.FrequencyPenalty, "SALESMATE_FREQUENCY_PENALTY")
	envFloat(&settings.LLM.PresencePenalty, "SALESMATE_PRESENCE_PENALTY")
	envInt(&settings.LLM.MaxTokens, "SALESMATE_MAX_TOKENS")
	envInt(&settings.LLM.MaxRetries, "SALESMATE_MAX_RETRIES")
	if v := os.Getenv("SALESMATE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			settings.LLM.Timeout = time.Duration(n) * time.Second
		}
	}

	envInt(&settings.Conversation.MaxHistory, "SALESMATE_MAX_HISTORY")
	envInt(&settings.Conversation.ContextWindow, "SALESMATE_CONTEXT_WINDOW")
	envBool(&settings.Conversation.LoggingEnabled, "SALESMATE_ENABLE_LOGGING")
	if v := os.Getenv("SALESMATE_LOG_FORMAT"); v != "" {
		settings.Conversation.LogFormat = domain.LogFormat(v)
	}

	envBool(&settings.Sales.GreetingEnabled, "SALESMATE_GREETING_ENABLED")
	envInt(&settings.Sales.RecommendationLimit, "SALESMATE_RECOMMENDATION_LIMIT")
	envBool(&settings.Sales.ComparisonEnabled, "SALESMATE_COMPARISON_ENABLED")

	envString(&settings.Paths.ProductsFile, "SALESMATE_PRODUCTS_FILE")
	envString(&settings.Paths.PersonasFile, "SALESMATE_PERSONAS_FILE")
	envString(&settings.Paths.ConversationsDir, "SALESMATE_CONVERSATIONS_DIR")
	envString(&settings.Paths.HistoryDB, "SALESMATE_HISTORY_DB")
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func envFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
