package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <allocation_id>",
		Short: "Validate a stored allocation against the scheduling rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allocationID := args[0]

			result, err := services.ValidateAllocationByID(
				app.Ctx, app.Database, app.Advisory, app.Logger, allocationID,
			)
			if err != nil {
				return err
			}
			if result == nil {
				return fmt.Errorf("allocation %s does not exist", allocationID)
			}

			if result.IsValid {
				fmt.Printf("\n✓ Allocation %s is valid\n\n", allocationID)
			} else {
				fmt.Printf("\n✗ Allocation %s is invalid\n\n", allocationID)
			}
			fmt.Printf("Severity score: %.2f\n\n", result.SeverityScore)

			if len(result.Violations) > 0 {
				fmt.Printf("Violations:\n")
				for _, violation := range result.Violations {
					fmt.Printf("  ✗ %s\n", violation)
				}
				fmt.Println()
			}
			if len(result.Warnings) > 0 {
				fmt.Printf("Warnings:\n")
				for _, warning := range result.Warnings {
					fmt.Printf("  ! %s\n", warning)
				}
				fmt.Println()
			}
			if len(result.Suggestions) > 0 {
				fmt.Printf("Suggestions:\n")
				for _, suggestion := range result.Suggestions {
					fmt.Printf("  - %s\n", suggestion)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
