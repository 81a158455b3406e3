package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListStaffCmd creates the list-staff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	var department string
	var role string

	cmd := &cobra.Command{
		Use:   "list-staff",
		Short: "List staff members, optionally filtered by department or role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := app.Database.GetStaffMembers(app.Ctx)
			if err != nil {
				return err
			}

			shown := 0
			fmt.Println()
			for _, member := range staff {
				if department != "" && !strings.EqualFold(string(member.Department), department) {
					continue
				}
				if role != "" && !strings.EqualFold(string(member.Role), role) {
					continue
				}
				fmt.Printf("%-12s %-22s %-14s %-12s skill %2d  $%.2f/h\n",
					member.ID, member.Name, member.Role, member.Department,
					member.SkillLevel, member.HourlyRate)
				shown++
			}

			if shown == 0 {
				fmt.Println("No staff members match the given filters.")
			}
			fmt.Printf("\n%d staff member(s)\n\n", shown)

			return nil
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "Filter by department")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role")

	return cmd
}
