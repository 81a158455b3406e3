package rules

import "fmt"

// AvailabilityRule blocks assignment on a staff member's unavailable dates
type AvailabilityRule struct{}

// NewAvailabilityRule creates a new AvailabilityRule
func NewAvailabilityRule() *AvailabilityRule {
	return &AvailabilityRule{}
}

func (r *AvailabilityRule) Name() string {
	return "availability_check"
}

func (r *AvailabilityRule) Severity() Severity {
	return SeverityCritical
}

func (r *AvailabilityRule) Check(snap *Snapshot) (Finding, error) {
	violated := false
	for _, date := range snap.Staff.UnavailableDates {
		if date == snap.Shift.Date {
			violated = true
			break
		}
	}

	message := "Staff available"
	if violated {
		message = fmt.Sprintf("Staff unavailable on %s", snap.Shift.Date)
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"shift_date":        snap.Shift.Date,
			"unavailable_dates": snap.Staff.UnavailableDates,
		},
	}, nil
}
