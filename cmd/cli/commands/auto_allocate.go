package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// AutoAllocateCmd creates the auto-allocate command
func AutoAllocateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auto-allocate <shift_id>...",
		Short: "Automatically allocate staff to the given shifts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := services.AutoAllocate(
				app.Ctx, app.Database, app.Advisory, app.Publisher, app.Logger,
				args, nil,
			)

			if !result.Success {
				fmt.Printf("\n✗ Auto-allocation failed: %s\n\n", result.Message)
			} else {
				fmt.Printf("\n✓ %s\n\n", result.Message)
			}

			if len(result.Allocations) > 0 {
				fmt.Printf("Allocations:\n")
				for _, allocation := range result.Allocations {
					fmt.Printf("  %s: %s -> %s (%s, confidence %.2f)\n",
						allocation.ID, allocation.StaffID, allocation.ShiftID,
						allocation.Status, allocation.ConfidenceScore)
				}
				fmt.Println()
			}

			if len(result.UnallocatedShifts) > 0 {
				fmt.Printf("Unallocated shifts:\n")
				for _, shiftID := range result.UnallocatedShifts {
					fmt.Printf("  ✗ %s\n", shiftID)
				}
				fmt.Println()
			}

			fmt.Printf("Optimization score: %.2f\n", result.OptimizationScore)
			fmt.Printf("Total cost:         $%.2f\n\n", result.TotalCost)

			if len(result.Recommendations) > 0 {
				fmt.Printf("Recommendations:\n")
				for _, recommendation := range result.Recommendations {
					fmt.Printf("  - %s\n", recommendation)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
