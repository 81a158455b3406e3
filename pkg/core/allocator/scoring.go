// Package allocator scores staff-to-shift pairings. It provides the weighted
// compatibility score used when allocating and suggesting staff, plus the
// quality and preference variants the optimization strategies rank with.
// All scoring is pure computation over the model types.
package allocator

import (
	"fmt"
	"math"
	"slices"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// ScoreBreakdown is a staff-to-shift compatibility score with the factors
// that earned it and a coarse recommendation band.
type ScoreBreakdown struct {
	Score          float64  `json:"score"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// Score computes the weighted compatibility between a staff member and a
// shift. Each earned component contributes a factor line; the skill component
// is gated on meeting the shift's minimum skill level. The returned score is
// rounded to 2 decimals.
func Score(staff *model.StaffMember, shift *model.Shift) ScoreBreakdown {
	score := 0.0
	factors := []string{}

	if staff.SkillLevel >= shift.MinimumSkillLevel {
		skillScore := math.Min(float64(staff.SkillLevel)/skillLevelCap, 1.0)
		score += skillScore * WeightSkillMatch
		factors = append(factors, fmt.Sprintf("Skill match: %.2f", skillScore))
	}

	if string(staff.Department) == shift.Department {
		score += WeightDepartmentMatch
		factors = append(factors, "Department match: 1.0")
	}

	if slices.Contains(staff.PreferredShifts, string(shift.ShiftType)) {
		score += WeightShiftPreference
		factors = append(factors, "Shift preference match: 1.0")
	}

	expScore := math.Min(float64(staff.ExperienceYears)/experienceYearsCap, 1.0)
	score += expScore * WeightExperience
	factors = append(factors, fmt.Sprintf("Experience factor: %.2f", expScore))

	if !slices.Contains(staff.UnavailableDates, shift.Date) {
		score += WeightAvailability
		factors = append(factors, "Available: 1.0")
	}

	return ScoreBreakdown{
		Score:          round2(score),
		Factors:        factors,
		Recommendation: Recommendation(score),
	}
}

// SuitabilityScore is the factor-free variant of Score used for ranking
// alternative candidates. Unrounded, capped at 1.0.
func SuitabilityScore(staff *model.StaffMember, shift *model.Shift) float64 {
	score := 0.0

	if staff.SkillLevel >= shift.MinimumSkillLevel {
		score += math.Min(float64(staff.SkillLevel)/skillLevelCap, 1.0) * WeightSkillMatch
	}
	if string(staff.Department) == shift.Department {
		score += WeightDepartmentMatch
	}
	if slices.Contains(staff.PreferredShifts, string(shift.ShiftType)) {
		score += WeightShiftPreference
	}
	score += math.Min(float64(staff.ExperienceYears)/experienceYearsCap, 1.0) * WeightExperience
	if !slices.Contains(staff.UnavailableDates, shift.Date) {
		score += WeightAvailability
	}

	return math.Min(score, 1.0)
}

// QualityScore rates a pairing for quality-driven optimization: skill and
// experience dominate, with department continuity and shift priority as
// smaller components. Capped at 1.0.
func QualityScore(shift *model.Shift, staff *model.StaffMember) float64 {
	score := math.Min(float64(staff.SkillLevel)/skillLevelCap, 1.0) * QualityWeightSkill
	score += math.Min(float64(staff.ExperienceYears)/experienceYearsCap, 1.0) * QualityWeightExperience

	if string(staff.Department) == shift.Department {
		score += QualityWeightDepartment
	}

	score += PriorityWeight(shift.Priority) * QualityWeightPriority

	return math.Min(score, 1.0)
}

// PreferenceScore rates how well a shift matches a staff member's own
// preferences for satisfaction-driven optimization. Capped at 1.0.
func PreferenceScore(staff *model.StaffMember, shift *model.Shift) float64 {
	score := 0.0

	if slices.Contains(staff.PreferredShifts, string(shift.ShiftType)) {
		score += PreferenceWeightShiftType
	}

	if string(staff.Department) == shift.Department {
		score += PreferenceWeightDepartment
	}

	skillDiff := staff.SkillLevel - shift.MinimumSkillLevel
	if skillDiff >= 0 && skillDiff <= 2 {
		score += PreferenceWeightSkillFit
	} else if skillDiff > 2 {
		score += PreferenceWeightOverqualified
	}

	return math.Min(score, 1.0)
}

// PriorityWeight maps a shift priority to its scoring weight
func PriorityWeight(priority model.Priority) float64 {
	switch priority {
	case model.PriorityCritical:
		return 1.0
	case model.PriorityHigh:
		return 0.8
	case model.PriorityMedium:
		return 0.6
	case model.PriorityLow:
		return 0.4
	default:
		return 0.5
	}
}

// Recommendation bands a score into high, medium or low
func Recommendation(score float64) string {
	if score > recommendHighAbove {
		return "high"
	}
	if score > recommendMediumAbove {
		return "medium"
	}
	return "low"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
