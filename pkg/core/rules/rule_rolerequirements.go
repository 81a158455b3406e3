package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// RoleRequirementsRule compares the shift's required role headcounts against
// the roles already confirmed for the shift plus the candidate's own role.
//
// A shortfall in any role flags the allocation, even when the candidate's
// role is fully covered: the finding reports the shift's staffing gap, not
// a fault of the candidate. High severity, so it lands in warnings rather
// than blocking the allocation.
type RoleRequirementsRule struct{}

// NewRoleRequirementsRule creates a new RoleRequirementsRule
func NewRoleRequirementsRule() *RoleRequirementsRule {
	return &RoleRequirementsRule{}
}

func (r *RoleRequirementsRule) Name() string {
	return "role_requirements"
}

func (r *RoleRequirementsRule) Severity() Severity {
	return SeverityHigh
}

func (r *RoleRequirementsRule) Check(snap *Snapshot) (Finding, error) {
	roleCounts := make(map[string]int)
	for _, entry := range snap.ShiftAllocations {
		if entry.Allocation.Status != model.AllocationConfirmed {
			continue
		}
		if entry.Staff == nil {
			continue
		}
		roleCounts[string(entry.Staff.Role)]++
	}

	// Count the candidate as filling its own role
	roleCounts[string(snap.Staff.Role)]++

	requiredRoles := make([]string, 0, len(snap.Shift.RequiredStaff))
	for role := range snap.Shift.RequiredStaff {
		requiredRoles = append(requiredRoles, role)
	}
	sort.Strings(requiredRoles)

	var unmet []string
	for _, role := range requiredRoles {
		required := snap.Shift.RequiredStaff[role]
		if roleCounts[role] < required {
			unmet = append(unmet, fmt.Sprintf("%s: %d/%d", role, roleCounts[role], required))
		}
	}

	violated := len(unmet) > 0

	message := "Role requirements satisfied"
	if violated {
		message = fmt.Sprintf("Unmet role requirements: %s", strings.Join(unmet, ", "))
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"required_roles": snap.Shift.RequiredStaff,
			"current_roles":  roleCounts,
			"unmet":          unmet,
		},
	}, nil
}
