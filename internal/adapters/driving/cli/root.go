// Package cli provides the command line interface for salesmate.
// It is a driving adapter: commands talk to the core exclusively through
// the driving ports, which the composition root injects before Execute.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// version is the build version, overridden at build time via ldflags.
var version = "dev"

// Services injected by the composition root. Commands guard against nil
// so a partially wired binary fails with a clear error instead of a panic.
var (
	sessionService   driving.SessionService
	catalogService   driving.CatalogService
	recommender      driving.Recommender
	personaDirectory driving.PersonaDirectory
	historyBrowser   driving.HistoryBrowser
)

// bootstrap is invoked once flags are parsed, before any command runs.
// The composition root uses it to load configuration and wire services,
// so the --config flag value is available to it.
var bootstrap func(ctx context.Context, configPath string) error

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "salesmate",
	Short: "AI-powered sales assistant for simulated customer conversations",
	Long: `SalesMate is an AI-powered sales assistant demo.

It loads a product catalog and a set of customer personas, then holds
sales conversations driven by a large language model: greeting the
customer, classifying what they are after, recommending products within
their budget, and comparing alternatives.

Start an interactive session with "salesmate chat", or browse the
catalog and personas directly with the other commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		// version and help need no wiring
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if bootstrap != nil {
			return bootstrap(cmd.Context(), configPath)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.salesmate/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the wiring hook run before any command.
func SetBootstrap(fn func(ctx context.Context, configPath string) error) {
	bootstrap = fn
}

// SetSessionService injects the session service.
func SetSessionService(s driving.SessionService) {
	sessionService = s
}

// SetCatalogService injects the catalog service.
func SetCatalogService(s driving.CatalogService) {
	catalogService = s
}

// SetRecommender injects the recommender.
func SetRecommender(r driving.Recommender) {
	recommender = r
}

// SetPersonaDirectory injects the persona directory.
func SetPersonaDirectory(d driving.PersonaDirectory) {
	personaDirectory = d
}

// SetHistoryBrowser injects the history browser.
func SetHistoryBrowser(h driving.HistoryBrowser) {
	historyBrowser = h
}
