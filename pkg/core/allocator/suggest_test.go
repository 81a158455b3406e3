package allocator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

func TestRankStaffForShift(t *testing.T) {
	shift := scoringShift()
	candidates := []model.StaffMember{
		*scoringStaff(), // doctor, skill 9, prefers morning, emergency, $85
		{ID: "staff_002", Name: "Nurse Patel", Role: model.RoleNurse, Department: model.DepartmentEmergency, SkillLevel: 5},
		{ID: "staff_003", Name: "Tech Kim", Role: model.RoleTechnician, Department: model.DepartmentICU, SkillLevel: 7, ExperienceYears: 2, HourlyRate: 40.0},
	}

	suggestions := RankStaffForShift(candidates, shift)

	// skill 5 is below the minimum of 6, so the nurse is dropped entirely
	require.Len(t, suggestions, 2)

	best := suggestions[0]
	assert.Equal(t, "staff_001", best.StaffID)
	// skill 0.9*0.3 + role 0.25 + dept 0.2 + pref 0.15 +
	// exp (8/15)*0.1 + cost (100-85)/100*0.05 = 0.93
	assert.Equal(t, 0.93, best.SuitabilityScore)
	assert.Equal(t, "high", best.Recommendation)
	assert.Equal(t, []string{
		"Skill level 9/10",
		"Role match (doctor)",
		"Department match",
		"Shift preference match",
		"8 years experience",
	}, best.Reasons)

	second := suggestions[1]
	assert.Equal(t, "staff_003", second.StaffID)
	// skill 0.7*0.3 + exp (2/15)*0.1 + cost 0.6*0.05 = 0.25
	assert.Equal(t, 0.25, second.SuitabilityScore)
	assert.Equal(t, "low", second.Recommendation)
}

func TestRankStaffForShiftCapsAtTen(t *testing.T) {
	shift := scoringShift()

	candidates := make([]model.StaffMember, 0, 12)
	for i := 0; i < 12; i++ {
		staff := *scoringStaff()
		staff.ID = fmt.Sprintf("staff_%03d", i)
		candidates = append(candidates, staff)
	}

	suggestions := RankStaffForShift(candidates, shift)

	assert.Len(t, suggestions, 10)
}

func TestRankStaffForShiftExpensiveStaffEarnNoCostBonus(t *testing.T) {
	shift := scoringShift()
	staff := *scoringStaff()
	staff.HourlyRate = 120.0

	suggestions := RankStaffForShift([]model.StaffMember{staff}, shift)

	require.Len(t, suggestions, 1)
	// Same components as the $85 case minus the cost bonus:
	// 0.27 + 0.25 + 0.2 + 0.15 + 0.0533 = 0.92
	assert.Equal(t, 0.92, suggestions[0].SuitabilityScore)
}
