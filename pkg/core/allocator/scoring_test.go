package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

func scoringStaff() *model.StaffMember {
	return &model.StaffMember{
		ID:              "staff_001",
		Name:            "Dr. Sarah Johnson",
		Role:            model.RoleDoctor,
		Department:      model.DepartmentEmergency,
		SkillLevel:      9,
		PreferredShifts: []string{"morning", "afternoon"},
		ExperienceYears: 8,
		HourlyRate:      85.0,
	}
}

func scoringShift() *model.Shift {
	return &model.Shift{
		ID:                "shift_001",
		Date:              "2024-07-15",
		ShiftType:         model.ShiftMorning,
		Department:        "emergency",
		RequiredStaff:     map[string]int{"doctor": 1, "nurse": 2},
		MinimumSkillLevel: 6,
		Priority:          model.PriorityCritical,
	}
}

func TestScoreFullMatch(t *testing.T) {
	breakdown := Score(scoringStaff(), scoringShift())

	// skill 9/10 * 0.3 = 0.27, department 0.25, preference 0.20,
	// experience 8/15 * 0.15 = 0.08, availability 0.10 -> 0.90
	assert.Equal(t, 0.9, breakdown.Score)
	assert.Equal(t, "high", breakdown.Recommendation)
	assert.Equal(t, []string{
		"Skill match: 0.90",
		"Department match: 1.0",
		"Shift preference match: 1.0",
		"Experience factor: 0.53",
		"Available: 1.0",
	}, breakdown.Factors)
}

func TestScoreSkillGated(t *testing.T) {
	staff := scoringStaff()
	staff.SkillLevel = 5 // below the shift's minimum of 6

	breakdown := Score(staff, scoringShift())

	// No skill component: department 0.25 + preference 0.20 +
	// experience 0.08 + availability 0.10 = 0.63
	assert.Equal(t, 0.63, breakdown.Score)
	assert.NotContains(t, breakdown.Factors, "Skill match: 0.50")
	assert.Equal(t, "medium", breakdown.Recommendation)
}

func TestScoreUnavailableDateLosesComponent(t *testing.T) {
	staff := scoringStaff()
	staff.UnavailableDates = []string{"2024-07-15"}

	breakdown := Score(staff, scoringShift())

	// 0.90 minus the 0.10 availability component
	assert.Equal(t, 0.8, breakdown.Score)
	assert.NotContains(t, breakdown.Factors, "Available: 1.0")
}

func TestScoreIsMonotonicInSkill(t *testing.T) {
	low := scoringStaff()
	low.SkillLevel = 6
	high := scoringStaff()
	high.SkillLevel = 9

	assert.Less(t, Score(low, scoringShift()).Score, Score(high, scoringShift()).Score)
}

func TestScoreStaysInBounds(t *testing.T) {
	// Maximal profile on every component
	staff := scoringStaff()
	staff.SkillLevel = 10
	staff.ExperienceYears = 30

	breakdown := Score(staff, scoringShift())
	assert.Equal(t, 1.0, breakdown.Score)

	// Minimal profile: nothing earned but the always-on experience term
	empty := &model.StaffMember{SkillLevel: 1, ExperienceYears: 0, UnavailableDates: []string{"2024-07-15"}}
	shift := scoringShift()
	shift.MinimumSkillLevel = 10

	breakdown = Score(empty, shift)
	assert.GreaterOrEqual(t, breakdown.Score, 0.0)
	assert.Equal(t, "low", breakdown.Recommendation)
}

func TestSuitabilityScoreMatchesScoreComponents(t *testing.T) {
	staff := scoringStaff()
	shift := scoringShift()

	// Same weighting as Score, just unrounded
	assert.InDelta(t, 0.9, SuitabilityScore(staff, shift), 0.000001)
}

func TestQualityScore(t *testing.T) {
	staff := scoringStaff()
	staff.SkillLevel = 10
	staff.ExperienceYears = 15

	// skill 1.0*0.4 + experience 1.0*0.3 + department 0.2 + critical 1.0*0.1
	assert.Equal(t, 1.0, QualityScore(scoringShift(), staff))

	shift := scoringShift()
	shift.Priority = model.PriorityLow
	shift.Department = "icu"
	// 0.4 + 0.3 + 0 + 0.4*0.1 = 0.74
	assert.InDelta(t, 0.74, QualityScore(shift, staff), 0.000001)
}

func TestPreferenceScoreRewardsSkillFit(t *testing.T) {
	staff := scoringStaff()
	shift := scoringShift()

	// preference 0.4 + department 0.3 + skill diff 3 (overqualified) 0.1
	staff.SkillLevel = 9
	shift.MinimumSkillLevel = 6
	assert.InDelta(t, 0.8, PreferenceScore(staff, shift), 0.000001)

	// skill diff 2 earns the full fit weight and caps at 1.0
	shift.MinimumSkillLevel = 7
	assert.Equal(t, 1.0, PreferenceScore(staff, shift))
}

func TestRecommendationBands(t *testing.T) {
	assert.Equal(t, "high", Recommendation(0.81))
	assert.Equal(t, "medium", Recommendation(0.8))
	assert.Equal(t, "medium", Recommendation(0.61))
	assert.Equal(t, "low", Recommendation(0.6))
	assert.Equal(t, "low", Recommendation(0.0))
}

func TestAvailableStaffFilters(t *testing.T) {
	staff := []model.StaffMember{
		{ID: "staff_001", Department: model.DepartmentEmergency},
		{ID: "staff_002", Department: model.DepartmentEmergency, UnavailableDates: []string{"2024-07-15"}},
		{ID: "staff_003", Department: model.DepartmentICU},
	}

	available := AvailableStaff(staff, "2024-07-15", "emergency")
	assert.Len(t, available, 1)
	assert.Equal(t, "staff_001", available[0].ID)

	// Empty department means any department
	available = AvailableStaff(staff, "2024-07-15", "")
	assert.Len(t, available, 2)
}

func TestSuitableStaffFilters(t *testing.T) {
	shift := scoringShift()
	staff := []model.StaffMember{
		{ID: "staff_001", SkillLevel: 9},
		{ID: "staff_002", SkillLevel: 5},
		{ID: "staff_003", SkillLevel: 7, UnavailableDates: []string{"2024-07-15"}},
		{ID: "staff_004", SkillLevel: 6},
	}

	suitable := SuitableStaff(staff, shift)

	assert.Len(t, suitable, 2)
	assert.Equal(t, "staff_001", suitable[0].ID, "input order should be preserved")
	assert.Equal(t, "staff_004", suitable[1].ID)
}
