package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/seed"
)

// SeedCmd creates the seed command
func SeedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seed.Load(app.Ctx, app.Database); err != nil {
				return err
			}

			staff, err := app.Database.GetStaffMembers(app.Ctx)
			if err != nil {
				return err
			}
			shifts, err := app.Database.GetShifts(app.Ctx)
			if err != nil {
				return err
			}
			allocations, err := app.Database.GetAllocations(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Demo dataset loaded!\n\n")
			fmt.Printf("Staff members: %d\n", len(staff))
			fmt.Printf("Shifts:        %d\n", len(shifts))
			fmt.Printf("Allocations:   %d\n\n", len(allocations))

			return nil
		},
	}
}
