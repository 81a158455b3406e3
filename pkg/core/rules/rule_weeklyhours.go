package rules

import (
	"fmt"
	"time"
)

// shiftHours is the fixed per-shift hour approximation used for weekly hour
// accounting and cost totals. Hours are not derived from start/end times.
const shiftHours = 8

// MaxWeeklyHoursRule prevents a staff member from exceeding their weekly hour
// limit. Every stored allocation whose shift falls in the candidate shift's
// week (Monday start) counts a flat 8 hours, plus 8 for the candidate itself.
type MaxWeeklyHoursRule struct{}

// NewMaxWeeklyHoursRule creates a new MaxWeeklyHoursRule
func NewMaxWeeklyHoursRule() *MaxWeeklyHoursRule {
	return &MaxWeeklyHoursRule{}
}

func (r *MaxWeeklyHoursRule) Name() string {
	return "max_weekly_hours"
}

func (r *MaxWeeklyHoursRule) Severity() Severity {
	return SeverityCritical
}

func (r *MaxWeeklyHoursRule) Check(snap *Snapshot) (Finding, error) {
	shiftDate, err := time.Parse("2006-01-02", snap.Shift.Date)
	if err != nil {
		return Finding{}, fmt.Errorf("failed to parse shift date %q: %w", snap.Shift.Date, err)
	}

	// Week runs Monday through Sunday
	daysSinceMonday := (int(shiftDate.Weekday()) + 6) % 7
	weekStart := shiftDate.AddDate(0, 0, -daysSinceMonday)
	weekEnd := weekStart.AddDate(0, 0, 7)

	weeklyHours := 0
	for _, entry := range snap.StaffAllocations {
		if entry.Shift == nil {
			continue
		}
		allocDate, err := time.Parse("2006-01-02", entry.Shift.Date)
		if err != nil {
			return Finding{}, fmt.Errorf("failed to parse allocated shift date %q: %w", entry.Shift.Date, err)
		}
		if !allocDate.Before(weekStart) && allocDate.Before(weekEnd) {
			weeklyHours += shiftHours
		}
	}

	// Add the candidate shift's own hours
	weeklyHours += shiftHours

	violated := weeklyHours > snap.Staff.MaxHoursPerWeek

	message := "Weekly hours within limit"
	if violated {
		message = fmt.Sprintf("Weekly hours (%d) exceed maximum (%d)", weeklyHours, snap.Staff.MaxHoursPerWeek)
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"current_weekly_hours": weeklyHours,
			"max_allowed":          snap.Staff.MaxHoursPerWeek,
			"additional_hours":     shiftHours,
		},
	}, nil
}
