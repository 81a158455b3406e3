package rules

import "fmt"

// DepartmentMatchRule flags cross-department assignments. Advisory rather
// than blocking: staff can cover other departments, it just costs continuity.
type DepartmentMatchRule struct{}

// NewDepartmentMatchRule creates a new DepartmentMatchRule
func NewDepartmentMatchRule() *DepartmentMatchRule {
	return &DepartmentMatchRule{}
}

func (r *DepartmentMatchRule) Name() string {
	return "department_match"
}

func (r *DepartmentMatchRule) Severity() Severity {
	return SeverityMedium
}

func (r *DepartmentMatchRule) Check(snap *Snapshot) (Finding, error) {
	staffDepartment := string(snap.Staff.Department)
	violated := staffDepartment != snap.Shift.Department

	message := "Department match"
	if violated {
		message = fmt.Sprintf("Department mismatch: staff (%s) vs shift (%s)", staffDepartment, snap.Shift.Department)
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"staff_department": staffDepartment,
			"shift_department": snap.Shift.Department,
		},
	}, nil
}
