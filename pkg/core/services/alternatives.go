package services

import (
	"context"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/allocator"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// maxAlternatives caps how many alternative candidates a suggestion
// request returns.
const maxAlternatives = 5

// AlternativesStore defines the database operations needed to suggest
// alternative staff for a shift.
type AlternativesStore interface {
	ValidationStore
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
}

// Alternative is one ranked alternative candidate for a shift.
type Alternative struct {
	StaffID          string   `json:"staff_id"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	Department       string   `json:"department"`
	SuitabilityScore float64  `json:"suitability_score"`
	HourlyRate       float64  `json:"hourly_rate"`
	SkillLevel       int      `json:"skill_level"`
	IsValid          bool     `json:"is_valid"`
	PotentialIssues  []string `json:"potential_issues"`
	Recommendation   string   `json:"recommendation"`
}

// SuggestAlternatives ranks alternative staff for a shift: candidates are
// filtered to available, skill-qualified and not excluded, scored, then
// validated as hypothetical allocations. Validity dominates the ordering,
// so an invalid candidate never outranks a valid one regardless of score.
// Returns an empty list when the shift does not exist.
func SuggestAlternatives(
	ctx context.Context,
	store AlternativesStore,
	logger *zap.Logger,
	shiftID string,
	excludedStaffIDs []string,
) ([]Alternative, error) {
	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}
	if shift == nil {
		logger.Debug("No such shift for alternative suggestions", zap.String("shift_id", shiftID))
		return []Alternative{}, nil
	}

	allStaff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff members", err)
	}

	alternatives := []Alternative{}
	for i := range allStaff {
		staff := &allStaff[i]
		if slices.Contains(excludedStaffIDs, staff.ID) {
			continue
		}
		if slices.Contains(staff.UnavailableDates, shift.Date) {
			continue
		}
		if staff.SkillLevel < shift.MinimumSkillLevel {
			continue
		}

		score := allocator.SuitabilityScore(staff, shift)

		// Validate as a hypothetical allocation. The advisory
		// collaborator is deliberately left out: suggestions are a
		// read-only what-if, not a decision.
		hypothetical := &model.AllocationRecord{
			ID:              "temp",
			StaffID:         staff.ID,
			ShiftID:         shiftID,
			Status:          model.AllocationPending,
			ConfidenceScore: score,
			Reasoning:       "Alternative suggestion",
		}
		validation, err := ValidateAllocation(ctx, store, nil, logger, hypothetical)
		if err != nil {
			return nil, err
		}

		recommendation := "low"
		switch {
		case score > 0.8 && validation.IsValid:
			recommendation = "high"
		case score > 0.6:
			recommendation = "medium"
		}

		alternatives = append(alternatives, Alternative{
			StaffID:          staff.ID,
			Name:             staff.Name,
			Role:             string(staff.Role),
			Department:       string(staff.Department),
			SuitabilityScore: score,
			HourlyRate:       staff.HourlyRate,
			SkillLevel:       staff.SkillLevel,
			IsValid:          validation.IsValid,
			PotentialIssues:  append(append([]string{}, validation.Violations...), validation.Warnings...),
			Recommendation:   recommendation,
		})
	}

	// Validity first, then score
	sort.SliceStable(alternatives, func(i, j int) bool {
		if alternatives[i].IsValid != alternatives[j].IsValid {
			return alternatives[i].IsValid
		}
		return alternatives[i].SuitabilityScore > alternatives[j].SuitabilityScore
	})

	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	logger.Debug("Ranked alternative candidates",
		zap.String("shift_id", shiftID),
		zap.Int("candidates", len(alternatives)))

	return alternatives, nil
}
