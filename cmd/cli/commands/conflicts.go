package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// ConflictsCmd creates the conflicts command
func ConflictsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts <date_range>",
		Short: "Analyze allocation conflicts in a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange := args[0]

			analysis, err := services.AnalyzeConflicts(
				app.Ctx, app.Database, app.Advisory, app.Logger, dateRange,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Conflict analysis for %s\n\n", dateRange)
			fmt.Printf("Allocations analyzed:  %d\n", analysis.Summary.TotalAllocations)
			fmt.Printf("Conflicted:            %d\n", analysis.Summary.ConflictedAllocations)
			fmt.Printf("Critical violations:   %d\n", analysis.Summary.CriticalViolations)
			fmt.Printf("Warnings:              %d\n\n", analysis.Summary.Warnings)

			if len(analysis.GlobalConflicts) > 0 {
				fmt.Printf("Double bookings:\n")
				for _, conflict := range analysis.GlobalConflicts {
					fmt.Printf("  ✗ staff %s, allocations %v: %s\n",
						conflict.StaffID, conflict.ConflictingAllocations, conflict.Message)
				}
				fmt.Println()
			}

			for _, violation := range analysis.IndividualViolations {
				fmt.Printf("Allocation %s:\n", violation.AllocationID)
				for _, message := range violation.Violations {
					fmt.Printf("  ✗ %s\n", message)
				}
			}
			if len(analysis.IndividualViolations) > 0 {
				fmt.Println()
			}

			return nil
		},
	}
}
