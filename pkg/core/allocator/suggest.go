package allocator

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// maxStaffSuggestions caps how many ranked candidates a shift suggestion returns
const maxStaffSuggestions = 10

// StaffSuggestion is one ranked candidate for a shift
type StaffSuggestion struct {
	StaffID          string   `json:"staff_id"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	Department       string   `json:"department"`
	SuitabilityScore float64  `json:"suitability_score"`
	HourlyRate       float64  `json:"hourly_rate"`
	SkillLevel       int      `json:"skill_level"`
	ExperienceYears  int      `json:"experience_years"`
	Reasons          []string `json:"reasons"`
	Recommendation   string   `json:"recommendation"`
}

// RankStaffForShift scores the given candidates against a shift and returns
// the top suggestions, best first. Staff below the shift's minimum skill
// level are dropped entirely.
//
// The weighting here differs from Score: role coverage replaces the flat
// availability bonus (callers pre-filter availability), and a small inverse
// cost component nudges cheaper staff up the ranking.
func RankStaffForShift(candidates []model.StaffMember, shift *model.Shift) []StaffSuggestion {
	suggestions := []StaffSuggestion{}

	for _, staff := range candidates {
		if staff.SkillLevel < shift.MinimumSkillLevel {
			continue
		}

		score := 0.0
		reasons := []string{}

		skillScore := math.Min(float64(staff.SkillLevel)/skillLevelCap, 1.0)
		score += skillScore * 0.3
		reasons = append(reasons, fmt.Sprintf("Skill level %d/10", staff.SkillLevel))

		if _, required := shift.RequiredStaff[string(staff.Role)]; required {
			score += 0.25
			reasons = append(reasons, fmt.Sprintf("Role match (%s)", staff.Role))
		}

		if string(staff.Department) == shift.Department {
			score += 0.2
			reasons = append(reasons, "Department match")
		}

		if slices.Contains(staff.PreferredShifts, string(shift.ShiftType)) {
			score += 0.15
			reasons = append(reasons, "Shift preference match")
		}

		expScore := math.Min(float64(staff.ExperienceYears)/experienceYearsCap, 1.0)
		score += expScore * 0.1
		reasons = append(reasons, fmt.Sprintf("%d years experience", staff.ExperienceYears))

		// Cheaper staff score slightly higher
		costScore := math.Max(0, (100-staff.HourlyRate)/100) * 0.05
		score += costScore

		suggestions = append(suggestions, StaffSuggestion{
			StaffID:          staff.ID,
			Name:             staff.Name,
			Role:             string(staff.Role),
			Department:       string(staff.Department),
			SuitabilityScore: round2(score),
			HourlyRate:       staff.HourlyRate,
			SkillLevel:       staff.SkillLevel,
			ExperienceYears:  staff.ExperienceYears,
			Reasons:          reasons,
			Recommendation:   Recommendation(score),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].SuitabilityScore > suggestions[j].SuitabilityScore
	})

	if len(suggestions) > maxStaffSuggestions {
		suggestions = suggestions[:maxStaffSuggestions]
	}

	return suggestions
}
