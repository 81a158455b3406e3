package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

// DefineShiftSeriesCmd creates the define-shift-series command
func DefineShiftSeriesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "define-shift-series <series_name> <start_date> <end_date>",
		Short: "Expand a configured recurring shift series over a date window",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seriesName, startDate, endDate := args[0], args[1], args[2]

			windowStart, err := time.ParseInLocation(services.DateFormat, startDate, time.Local)
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			windowEnd, err := time.ParseInLocation(services.DateFormat, endDate, time.Local)
			if err != nil {
				return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
			}

			spec, err := seriesSpec(app, seriesName)
			if err != nil {
				return err
			}

			created, err := services.DefineShiftSeries(
				app.Ctx, app.Database, app.Logger, spec, windowStart, windowEnd,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift series expanded!\n\n")
			fmt.Printf("Series:         %s\n", spec.Name)
			fmt.Printf("Window:         %s to %s\n", startDate, endDate)
			fmt.Printf("Shifts created: %d\n\n", len(created))

			for i, shift := range created {
				fmt.Printf("  %2d. %s  %s %s-%s (%s)\n",
					i+1, shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.Department)
			}
			if len(created) > 0 {
				fmt.Println()
			}

			return nil
		},
	}
}

// seriesSpec resolves a configured series by name.
func seriesSpec(app *AppContext, name string) (services.ShiftSeriesSpec, error) {
	for _, series := range app.Cfg.ShiftSeries {
		if series.Name != name {
			continue
		}

		maxCapacity := 0
		if series.MaxCapacity != nil {
			maxCapacity = *series.MaxCapacity
		}

		return services.ShiftSeriesSpec{
			Name:              series.Name,
			RRule:             series.RRule,
			ShiftType:         model.ShiftType(series.ShiftType),
			Department:        series.Department,
			StartTime:         series.StartTime,
			EndTime:           series.EndTime,
			RequiredStaff:     series.RequiredStaff,
			MinimumSkillLevel: series.MinimumSkillLevel,
			Priority:          model.Priority(series.Priority),
			MaxCapacity:       maxCapacity,
		}, nil
	}

	names := make([]string, 0, len(app.Cfg.ShiftSeries))
	for _, series := range app.Cfg.ShiftSeries {
		names = append(names, series.Name)
	}
	return services.ShiftSeriesSpec{}, fmt.Errorf("no shift series named %q in configuration (available: %v)", name, names)
}
