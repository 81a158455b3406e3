package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// TimelineCmd creates the timeline command
func TimelineCmd(app *AppContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "timeline <staff_id>",
		Short: "Show a staff member's availability history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID := args[0]

			entries, err := services.AvailabilityTimeline(app.Ctx, app.Database, staffID, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("\nNo availability history for staff %s.\n\n", staffID)
				return nil
			}

			fmt.Printf("\n✓ Availability timeline for %s (%d entries):\n\n", staffID, len(entries))
			for _, entry := range entries {
				line := fmt.Sprintf("  %s  %-12s by %s", entry.ChangedAt, entry.Status, entry.ChangedBy)
				if entry.ShiftID != "" {
					line += fmt.Sprintf(" (shift %s)", entry.ShiftID)
				}
				if entry.Reason != "" {
					line += fmt.Sprintf(" - %s", entry.Reason)
				}
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}
