package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Browse the customer personas",
	Long: `Browse the customer personas loaded from the personas file.

Each persona describes a simulated customer: budget, interests, valued
features, and communication style. Pass a persona ID to "salesmate chat"
to hold a conversation as that customer.`,
}

var personasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List personas",
	RunE:  runPersonasList,
}

var personasShowCmd = &cobra.Command{
	Use:   "show [persona-id]",
	Short: "Show full details for a persona",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonasShow,
}

func init() {
	personasCmd.AddCommand(personasListCmd)
	personasCmd.AddCommand(personasShowCmd)
	rootCmd.AddCommand(personasCmd)
}

func runPersonasList(cmd *cobra.Command, _ []string) error {
	if personaDirectory == nil {
		return errors.New("persona directory not configured")
	}

	personas := personaDirectory.All()
	if len(personas) == 0 {
		cmd.Println("No personas found.")
		return nil
	}

	for i := range personas {
		p := &personas[i]
		cmd.Printf("  %-12s %s, %d, %s (budget $%.0f-$%.0f)\n",
			p.ID, p.Name, p.Age, p.Occupation, p.Budget.Min, p.Budget.Max)
	}
	cmd.Printf("\n%d persona(s)\n", len(personas))
	return nil
}

func runPersonasShow(cmd *cobra.Command, args []string) error {
	if personaDirectory == nil {
		return errors.New("persona directory not configured")
	}

	p, err := personaDirectory.ByID(args[0])
	if err != nil {
		return fmt.Errorf("persona %s: %w", args[0], err)
	}

	cmd.Printf("%s (%s)\n", p.Name, p.ID)
	cmd.Printf("  Age:            %d\n", p.Age)
	cmd.Printf("  Occupation:     %s\n", p.Occupation)
	cmd.Printf("  Tech savviness: %s\n", p.TechSavviness)
	cmd.Printf("  Budget:         $%.2f - $%.2f (sweet spot $%.2f)\n",
		p.Budget.Min, p.Budget.Max, p.Budget.SweetSpotOrMax())
	if len(p.CategoriesOfInterest) > 0 {
		cmd.Printf("  Interested in:  %s\n", strings.Join(p.CategoriesOfInterest, ", "))
	}
	if len(p.ValuedFeatures) > 0 {
		cmd.Printf("  Values:         %s\n", strings.Join(p.ValuedFeatures, ", "))
	}
	if len(p.DealBreakers) > 0 {
		cmd.Printf("  Deal breakers:  %s\n", strings.Join(p.DealBreakers, ", "))
	}
	if len(p.PainPoints) > 0 {
		cmd.Printf("  Pain points:    %s\n", strings.Join(p.PainPoints, ", "))
	}
	if p.Communication.Tone != "" {
		cmd.Printf("  Communication:  %s pace, %s tone, %s\n",
			p.Communication.Pace, p.Communication.Tone, p.Communication.Verbosity)
	}
	return nil
}
