package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var recommendLimit int

var recommendCmd = &cobra.Command{
	Use:   "recommend [persona-id]",
	Short: "Rank catalog products for a persona",
	Long: `Ranks the catalog for a persona without starting a conversation.

Products outside the persona's budget are excluded; the rest are scored
on category interest, valued features, price fit, rating, and promotions.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 5, "maximum number of recommendations")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommender == nil || personaDirectory == nil {
		return errors.New("recommender not configured")
	}

	persona, err := personaDirectory.ByID(args[0])
	if err != nil {
		return fmt.Errorf("persona %s: %w", args[0], err)
	}

	products := recommender.Recommend(persona, recommendLimit)
	if len(products) == 0 {
		cmd.Printf("No products within %s's budget ($%.2f - $%.2f).\n",
			persona.Name, persona.Budget.Min, persona.Budget.Max)
		return nil
	}

	cmd.Printf("Top picks for %s:\n\n", persona.Name)
	for i := range products {
		p := &products[i]
		cmd.Printf("  [%d] %-10s %s\n", i+1, p.ID, p.Summary())
	}
	return nil
}
