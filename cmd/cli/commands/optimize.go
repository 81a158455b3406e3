package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// OptimizeCmd creates the optimize command
func OptimizeCmd(app *AppContext) *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "optimize <date_range>",
		Short: "Optimize the allocation schedule for a date range",
		Long:  "Optimize the allocation schedule for a date range (\"2024-01-15 to 2024-01-20\" or a single date)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange := args[0]

			report := services.OptimizeSchedule(
				app.Ctx, app.Database, app.Advisory, app.Logger, dateRange, strategy,
			)

			if !report.Success {
				fmt.Printf("\n✗ Optimization failed: %s\n\n", report.Error)
				for _, recommendation := range report.Recommendations {
					fmt.Printf("  - %s\n", recommendation)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("\n✓ Schedule optimized with %s strategy!\n\n", report.StrategyUsed)

			if report.CurrentState != nil {
				fmt.Printf("Current state:\n")
				fmt.Printf("  Shifts:        %d\n", report.CurrentState.TotalShifts)
				fmt.Printf("  Allocations:   %d\n", report.CurrentState.TotalAllocations)
				fmt.Printf("  Cost:          $%.2f\n", report.CurrentState.TotalCost)
				fmt.Printf("  Coverage:      %.0f%%\n\n", report.CurrentState.ShiftCoverage*100)
			}

			if len(report.ImprovementMetrics) > 0 {
				metrics := make([]string, 0, len(report.ImprovementMetrics))
				for name := range report.ImprovementMetrics {
					metrics = append(metrics, name)
				}
				sort.Strings(metrics)

				fmt.Printf("Improvement metrics:\n")
				for _, name := range metrics {
					fmt.Printf("  %-24s %.2f\n", name, report.ImprovementMetrics[name])
				}
				fmt.Println()
			}

			if len(report.ImplementationPlan) > 0 {
				fmt.Printf("Implementation plan:\n")
				for i, step := range report.ImplementationPlan {
					fmt.Printf("  %d. %s\n", i+1, step)
				}
				fmt.Println()
			}

			if len(report.Recommendations) > 0 {
				fmt.Printf("Recommendations:\n")
				for _, recommendation := range report.Recommendations {
					fmt.Printf("  - %s\n", recommendation)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "balance", "Optimization strategy (cost, quality, balance, satisfaction)")

	return cmd
}
