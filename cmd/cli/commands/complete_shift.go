package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// CompleteShiftCmd creates the complete-shift command
func CompleteShiftCmd(app *AppContext) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "complete-shift <shift_id>",
		Short: "Mark a shift completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]

			shift, err := services.CompleteShift(app.Ctx, app.Database, app.Logger, shiftID, notes)
			if err != nil {
				return err
			}
			if shift == nil {
				return fmt.Errorf("shift %s does not exist", shiftID)
			}

			fmt.Printf("\n✓ Shift completed!\n\n")
			fmt.Printf("Shift:    %s\n", shift.ID)
			fmt.Printf("Ended at: %s\n", shift.ActualEndTime)
			fmt.Printf("Notes:    %s\n\n", shift.CompletionNotes)

			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Completion notes")

	return cmd
}
