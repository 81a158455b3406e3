package allocator

import (
	"slices"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// AvailableStaff filters staff to those not marked unavailable on the given
// date. A non-empty department additionally restricts to that department.
func AvailableStaff(staff []model.StaffMember, date, department string) []model.StaffMember {
	available := []model.StaffMember{}
	for _, member := range staff {
		if slices.Contains(member.UnavailableDates, date) {
			continue
		}
		if department != "" && string(member.Department) != department {
			continue
		}
		available = append(available, member)
	}
	return available
}

// SuitableStaff filters staff to those who meet the shift's minimum skill
// level and are not unavailable on its date. Input order is preserved so
// callers can pre-sort by their own criterion.
func SuitableStaff(staff []model.StaffMember, shift *model.Shift) []model.StaffMember {
	suitable := []model.StaffMember{}
	for _, member := range staff {
		if member.SkillLevel < shift.MinimumSkillLevel {
			continue
		}
		if slices.Contains(member.UnavailableDates, shift.Date) {
			continue
		}
		suitable = append(suitable, member)
	}
	return suitable
}
