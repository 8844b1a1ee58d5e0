package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var similarLimit int

var similarCmd = &cobra.Command{
	Use:   "similar [product-id]",
	Short: "Find products similar to a given product",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 3, "maximum number of similar products")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if recommender == nil || catalogService == nil {
		return errors.New("recommender not configured")
	}

	product, err := catalogService.ByID(args[0])
	if err != nil {
		return fmt.Errorf("product %s: %w", args[0], err)
	}

	similar := recommender.Similar(product, similarLimit)
	if len(similar) == 0 {
		cmd.Printf("No products similar to %s found.\n", product.Name)
		return nil
	}

	cmd.Printf("Similar to %s:\n\n", product.Name)
	for i := range similar {
		p := &similar[i]
		cmd.Printf("  [%d] %-10s %s\n", i+1, p.ID, p.Summary())
	}
	return nil
}
