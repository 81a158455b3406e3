package rules

import "fmt"

// ShiftCapacityRule blocks allocation once a shift's stored allocation count
// reaches max_capacity. All statuses count, so a shift full of pending
// allocations is still full.
type ShiftCapacityRule struct{}

// NewShiftCapacityRule creates a new ShiftCapacityRule
func NewShiftCapacityRule() *ShiftCapacityRule {
	return &ShiftCapacityRule{}
}

func (r *ShiftCapacityRule) Name() string {
	return "shift_capacity"
}

func (r *ShiftCapacityRule) Severity() Severity {
	return SeverityCritical
}

func (r *ShiftCapacityRule) Check(snap *Snapshot) (Finding, error) {
	currentCapacity := len(snap.ShiftAllocations)
	violated := currentCapacity >= snap.Shift.MaxCapacity

	message := "Capacity available"
	if violated {
		message = fmt.Sprintf("Shift at capacity (%d/%d)", currentCapacity, snap.Shift.MaxCapacity)
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"current_allocations": currentCapacity,
			"max_capacity":        snap.Shift.MaxCapacity,
		},
	}, nil
}
