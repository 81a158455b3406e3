package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// CreateAllocationCmd creates the create-allocation command
func CreateAllocationCmd(app *AppContext) *cobra.Command {
	var confidence float64
	var reasoning string

	cmd := &cobra.Command{
		Use:   "create-allocation <staff_id> <shift_id>",
		Short: "Allocate a staff member to a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID, shiftID := args[0], args[1]

			allocation, err := services.CreateAllocation(
				app.Ctx, app.Database, app.Advisory, app.Logger,
				staffID, shiftID, confidence, reasoning,
			)
			if err != nil {
				return err
			}
			if allocation == nil {
				return fmt.Errorf("staff member %s or shift %s does not exist", staffID, shiftID)
			}

			fmt.Printf("\n✓ Allocation created!\n\n")
			fmt.Printf("Allocation ID: %s\n", allocation.ID)
			fmt.Printf("Staff:         %s\n", allocation.StaffID)
			fmt.Printf("Shift:         %s\n", allocation.ShiftID)
			fmt.Printf("Status:        %s\n", allocation.Status)
			fmt.Printf("Confidence:    %.2f\n\n", allocation.ConfidenceScore)

			if len(allocation.PotentialIssues) > 0 {
				fmt.Printf("Potential issues:\n")
				for _, issue := range allocation.PotentialIssues {
					fmt.Printf("  ✗ %s\n", issue)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", 0.5, "Confidence score (0-1)")
	cmd.Flags().StringVar(&reasoning, "reasoning", "Manual allocation", "Reasoning attached to the allocation")

	return cmd
}
