// Command salesmate is an AI-powered sales assistant demo. It loads a
// product catalog and customer personas, then holds LLM-driven sales
// conversations in the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/ai"
	catalogfile "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/catalog/file"
	convlogfile "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/convlog/file"
	historysqlite "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/history/sqlite"
	personafile "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/persona/file"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/cli"
	"github.com/salesmate-labs/salesmate-cli/internal/config"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/core/services"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and wires the adapters into the CLI.
// It runs after flag parsing so --config and --verbose are honoured.
func bootstrap(ctx context.Context, configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	catalogStore, err := catalogfile.NewStore(settings.Paths.ProductsFile)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	go func() {
		if err := catalogStore.Watch(ctx); err != nil {
			logger.Warn("catalog watch stopped: %v", err)
		}
	}()

	personaStore, err := personafile.NewStore(settings.Paths.PersonasFile)
	if err != nil {
		return fmt.Errorf("loading personas: %w", err)
	}

	catalogService := services.NewCatalogService(catalogStore)
	recommendService := services.NewRecommendService(catalogStore)
	personaService := services.NewPersonaService(personaStore)

	cli.SetCatalogService(catalogService)
	cli.SetRecommender(recommendService)
	cli.SetPersonaDirectory(personaService)

	history, err := historysqlite.NewStore(settings.Paths.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	cli.SetHistoryBrowser(history)

	// The session service needs a working LLM; commands that never
	// converse still work without one.
	if !settings.LLM.IsConfigured() {
		logger.Debug("LLM provider %s not configured, chat disabled", settings.LLM.Provider)
		return nil
	}

	llm, err := ai.CreateLLMService(settings.LLM)
	if err != nil {
		return fmt.Errorf("creating LLM service: %w", err)
	}

	var convLogger driven.ConversationLogger
	if settings.Conversation.LoggingEnabled {
		convLogger, err = convlogfile.NewLogger(settings.Paths.ConversationsDir, settings.Conversation.LogFormat)
		if err != nil {
			return fmt.Errorf("creating conversation logger: %w", err)
		}
	}

	sessionService := services.NewSessionService(
		llm,
		catalogService,
		recommendService,
		convLogger,
		history,
		settings.Conversation,
		settings.Sales,
	)
	cli.SetSessionService(sessionService)

	return nil
}
