package rules

import "fmt"

// RestPeriodRule flags staff scheduled for more than one shift on the same
// calendar date. A same-day check stands in for a true rest-hours
// calculation between shift end and next shift start.
type RestPeriodRule struct{}

// NewRestPeriodRule creates a new RestPeriodRule
func NewRestPeriodRule() *RestPeriodRule {
	return &RestPeriodRule{}
}

func (r *RestPeriodRule) Name() string {
	return "minimum_rest_period"
}

func (r *RestPeriodRule) Severity() Severity {
	return SeverityHigh
}

func (r *RestPeriodRule) Check(snap *Snapshot) (Finding, error) {
	for _, entry := range snap.StaffAllocations {
		if entry.Allocation.ID == snap.Allocation.ID {
			continue
		}
		if entry.Shift == nil {
			continue
		}
		if entry.Shift.Date == snap.Shift.Date {
			return Finding{
				Violated: true,
				Message:  fmt.Sprintf("Insufficient rest period - multiple shifts on %s", snap.Shift.Date),
				Details: map[string]any{
					"conflicting_shift": entry.Shift.ID,
					"same_day_shifts":   true,
				},
			}, nil
		}
	}

	return Finding{
		Violated: false,
		Message:  "Adequate rest period",
		Details:  map[string]any{},
	}, nil
}
