package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// AlternativesCmd creates the alternatives command
func AlternativesCmd(app *AppContext) *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "alternatives <shift_id>",
		Short: "Suggest alternative staff for a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]

			alternatives, err := services.SuggestAlternatives(
				app.Ctx, app.Database, app.Logger, shiftID, exclude,
			)
			if err != nil {
				return err
			}
			if len(alternatives) == 0 {
				fmt.Printf("\nNo alternative staff found for shift %s.\n\n", shiftID)
				return nil
			}

			fmt.Printf("\n✓ Found %d alternative(s) for shift %s:\n\n", len(alternatives), shiftID)
			for i, alternative := range alternatives {
				marker := "✓"
				if !alternative.IsValid {
					marker = "✗"
				}
				fmt.Printf("  %2d. %s %s (%s, %s) score %.2f, skill %d, $%.2f/h\n",
					i+1, marker, alternative.Name, alternative.Role, alternative.Department,
					alternative.SuitabilityScore, alternative.SkillLevel, alternative.HourlyRate)
				for _, issue := range alternative.PotentialIssues {
					fmt.Printf("        ! %s\n", issue)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Staff ids to exclude from suggestions")

	return cmd
}
