package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversations",
	Long: `Lists finished conversations recorded in the history database,
most recent first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyBrowser == nil {
		return errors.New("history store not configured")
	}

	summaries, err := historyBrowser.List(historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}
	if len(summaries) == 0 {
		cmd.Println("No conversations recorded yet.")
		return nil
	}

	for _, s := range summaries {
		ended := "-"
		if s.EndedAt != nil {
			ended = s.EndedAt.Format("2006-01-02 15:04")
		}
		cmd.Printf("  %-18s %-12s %-10s %s -> %s  (%d msgs)\n",
			s.ConversationID, s.PersonaID, s.Status,
			s.StartedAt.Format("2006-01-02 15:04"), ended, s.TotalMessages)
		if s.LogPath != "" {
			cmd.Printf("    log: %s\n", s.LogPath)
		}
	}
	cmd.Printf("\n%d conversation(s)\n", len(summaries))
	return nil
}
