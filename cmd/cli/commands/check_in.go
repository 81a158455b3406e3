package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// CheckInCmd creates the check-in command
func CheckInCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-in <staff_id> <shift_id>",
		Short: "Record a staff member's arrival for a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID, shiftID := args[0], args[1]

			allocation, err := services.CheckIn(app.Ctx, app.Database, app.Logger, staffID, shiftID)
			if err != nil {
				return err
			}
			if allocation == nil {
				return fmt.Errorf("no allocation binds staff %s to shift %s", staffID, shiftID)
			}

			fmt.Printf("\n✓ Checked in!\n\n")
			fmt.Printf("Staff:      %s\n", allocation.StaffID)
			fmt.Printf("Shift:      %s\n", allocation.ShiftID)
			fmt.Printf("Checked in: %s\n\n", allocation.CheckedInAt)

			return nil
		},
	}
}
