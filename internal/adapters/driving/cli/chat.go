package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [persona-id]",
	Short: "Start an interactive sales conversation",
	Long: `Start an interactive sales conversation in the terminal UI.

With a persona ID the conversation starts immediately as that customer;
without one a persona picker is shown first.

Controls:
  ↑/k, ↓/j - Navigate personas
  Enter    - Select / Send message
  Esc      - End conversation / Back
  Ctrl+C   - Quit

Slash commands during a conversation:
  /recommend                      - Ask for product recommendations
  /similar <product-id>           - Ask for similar products
  /compare <product-id> <id>...   - Ask for a comparison
  /end                            - End the conversation`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Stack traces from TUI panics are otherwise swallowed by the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if sessionService == nil || personaDirectory == nil {
		return errors.New("session service not configured")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("chat requires an interactive terminal")
	}

	ports := &tui.Ports{
		Session:  sessionService,
		Personas: personaDirectory,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if len(args) == 1 {
		persona, err := personaDirectory.ByID(args[0])
		if err != nil {
			return fmt.Errorf("persona %s: %w", args[0], err)
		}
		app.WithPersona(persona)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
