package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// CheckOutCmd creates the check-out command
func CheckOutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-out <staff_id> <shift_id>",
		Short: "Record a staff member's departure from a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID, shiftID := args[0], args[1]

			allocation, err := services.CheckOut(app.Ctx, app.Database, app.Logger, staffID, shiftID)
			if err != nil {
				return err
			}
			if allocation == nil {
				return fmt.Errorf("no allocation binds staff %s to shift %s", staffID, shiftID)
			}

			fmt.Printf("\n✓ Checked out!\n\n")
			fmt.Printf("Staff:        %s\n", allocation.StaffID)
			fmt.Printf("Shift:        %s\n", allocation.ShiftID)
			fmt.Printf("Checked out:  %s\n", allocation.CheckedOutAt)
			fmt.Printf("Hours worked: %.2f\n", allocation.HoursWorked())
			if allocation.OvertimeHours > 0 {
				fmt.Printf("Overtime:     %.2f\n", allocation.OvertimeHours)
			}
			fmt.Println()

			return nil
		},
	}
}
