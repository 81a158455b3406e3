package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <date_range>",
		Short: "Summarize allocations over a date range",
		Long:  "Summarize allocations over a date range (\"2024-01-15 to 2024-01-20\" or a single date)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange := args[0]

			summary, err := services.SummarizeAllocations(app.Ctx, app.Database, app.Logger, dateRange)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Allocation summary for %s\n\n", summary.DateRange)
			fmt.Printf("Total shifts:        %d\n", summary.TotalShifts)
			fmt.Printf("Allocated shifts:    %d\n", summary.AllocatedShifts)
			fmt.Printf("Unallocated shifts:  %d\n", summary.UnallocatedShifts)
			fmt.Printf("Staff hours:         %.1f\n", summary.TotalStaffHours)
			fmt.Printf("Average utilization: %.0f%%\n", summary.AverageUtilization*100)
			fmt.Printf("Total cost:          $%.2f\n\n", summary.CostBreakdown.Total)

			if len(summary.Departments) > 0 {
				departments := make([]string, 0, len(summary.Departments))
				for department := range summary.Departments {
					departments = append(departments, department)
				}
				sort.Strings(departments)

				fmt.Printf("Allocations by department:\n")
				for _, department := range departments {
					fmt.Printf("  %-14s %3d  ($%.2f)\n",
						department, summary.Departments[department],
						summary.CostBreakdown.ByDepartment[department])
				}
				fmt.Println()
			}

			return nil
		},
	}
}
