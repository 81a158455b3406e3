package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// SweepShiftsCmd creates the sweep-shifts command
func SweepShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-shifts",
		Short: "Auto-complete every in-progress shift whose end time has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			completed, err := services.SweepShifts(app.Ctx, app.Database, app.Logger, time.Now())
			if err != nil {
				return err
			}

			if len(completed) == 0 {
				fmt.Printf("\nNo overdue shifts to complete.\n\n")
				return nil
			}

			fmt.Printf("\n✓ Auto-completed %d shift(s):\n\n", len(completed))
			for _, shiftID := range completed {
				fmt.Printf("  ✓ %s\n", shiftID)
			}
			fmt.Println()

			return nil
		},
	}
}
