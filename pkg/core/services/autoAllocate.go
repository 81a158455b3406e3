package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/allocator"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/notify"
)

// maxRecommendations caps how many follow-up recommendations an allocation
// result carries.
const maxRecommendations = 5

// defaultConfidence is assumed when an advisory proposal omits its
// confidence score.
const defaultConfidence = 0.5

// AutoAllocateStore defines the database operations needed for the batch
// auto-allocation flow.
type AutoAllocateStore interface {
	ValidationStore
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
	InsertAllocation(ctx context.Context, allocation *model.AllocationRecord) error
	UpdateAllocation(ctx context.Context, allocation *model.AllocationRecord) error
}

// AutoAllocateResult is the outcome of one batch auto-allocation run.
// It is always well-formed: failures inside the flow surface as
// success=false with a manual-fallback recommendation, never as an error.
type AutoAllocateResult struct {
	Success           bool                     `json:"success"`
	Message           string                   `json:"message"`
	Allocations       []model.AllocationRecord `json:"allocations"`
	UnallocatedShifts []string                 `json:"unallocated_shifts"`
	OptimizationScore float64                  `json:"optimization_score"`
	TotalCost         float64                  `json:"total_cost"`
	Recommendations   []string                 `json:"recommendations"`
}

// AutoAllocate allocates staff to the requested shifts using the advisory
// collaborator's proposals, validated by the deterministic rule engine.
//
// Every proposal is materialized as a pending record first; batch validation
// then runs over the complete set so cross-allocation conflicts are visible.
// Valid allocations are confirmed, invalid ones rejected. The publisher is
// optional and best-effort.
func AutoAllocate(
	ctx context.Context,
	store AutoAllocateStore,
	advisory AdvisoryClient,
	publisher *notify.Publisher,
	logger *zap.Logger,
	shiftIDs []string,
	preferences map[string]any,
) *AutoAllocateResult {
	logger.Debug("Starting auto-allocation", zap.Int("requested_shifts", len(shiftIDs)))

	// Step 1: resolve shift ids, dropping unknown ones
	shifts := []model.Shift{}
	for _, shiftID := range shiftIDs {
		shift, err := store.GetShift(ctx, shiftID)
		if err != nil {
			return autoAllocateFailure(shiftIDs, fmt.Sprintf("Error during allocation: %s", err))
		}
		if shift != nil {
			shifts = append(shifts, *shift)
		}
	}

	if len(shifts) == 0 {
		logger.Warn("No valid shifts in auto-allocation request", zap.Strings("shift_ids", shiftIDs))
		return &AutoAllocateResult{
			Success:           false,
			Message:           "No valid shifts found",
			Allocations:       []model.AllocationRecord{},
			UnallocatedShifts: shiftIDs,
			OptimizationScore: 0.0,
			Recommendations:   []string{},
		}
	}

	// Step 2: per shift, ask the advisory collaborator for proposals and
	// materialize them as pending records. A failure on one shift never
	// aborts the others.
	allocations := []model.AllocationRecord{}
	for i := range shifts {
		proposed, err := proposeForShift(ctx, store, advisory, logger, &shifts[i], preferences)
		if err != nil {
			logger.Warn("Failed to propose allocations for shift",
				zap.String("shift_id", shifts[i].ID), zap.Error(err))
			continue
		}
		allocations = append(allocations, proposed...)
	}

	// Step 3: batch validation over the complete set
	batch, err := ValidateMany(ctx, store, advisory, logger, allocations)
	if err != nil {
		return autoAllocateFailure(shiftIDs, fmt.Sprintf("Error during allocation: %s", err))
	}

	// Step 4: confirm the valid allocations, reject the rest
	valid := []model.AllocationRecord{}
	invalid := []model.AllocationRecord{}
	for i := range allocations {
		validation := batch.IndividualValidations[allocations[i].ID]
		if validation != nil && validation.IsValid {
			allocations[i].Status = model.AllocationConfirmed
			allocations[i].AssignedAt = model.NowTimestamp()
			valid = append(valid, allocations[i])
		} else {
			allocations[i].Status = model.AllocationRejected
			invalid = append(invalid, allocations[i])
		}
		if err := store.UpdateAllocation(ctx, &allocations[i]); err != nil {
			return autoAllocateFailure(shiftIDs, fmt.Sprintf("Error during allocation: %s", err))
		}
	}

	// Step 5: metrics over the requested window
	allocatedShiftIDs := map[string]struct{}{}
	for _, allocation := range valid {
		allocatedShiftIDs[allocation.ShiftID] = struct{}{}
	}
	unallocated := []string{}
	for _, shiftID := range shiftIDs {
		if _, allocated := allocatedShiftIDs[shiftID]; !allocated {
			unallocated = append(unallocated, shiftID)
		}
	}

	optimizationScore := 0.0
	if len(shiftIDs) > 0 {
		optimizationScore = float64(len(valid)) / float64(len(shiftIDs))
	}

	totalCost, err := allocationCost(ctx, store, valid)
	if err != nil {
		return autoAllocateFailure(shiftIDs, fmt.Sprintf("Error during allocation: %s", err))
	}

	result := &AutoAllocateResult{
		Success:           len(valid) > 0,
		Message:           fmt.Sprintf("Successfully allocated %d out of %d shifts", len(valid), len(shiftIDs)),
		Allocations:       valid,
		UnallocatedShifts: unallocated,
		OptimizationScore: optimizationScore,
		TotalCost:         totalCost,
		Recommendations:   allocationRecommendations(ctx, advisory, logger, valid, invalid, unallocated),
	}

	logger.Info("Auto-allocation complete",
		zap.Int("confirmed", len(valid)),
		zap.Int("rejected", len(invalid)),
		zap.Int("unallocated_shifts", len(unallocated)),
		zap.Float64("total_cost", totalCost))

	// Step 6: best-effort notifications
	if result.Success {
		allocationIDs := make([]string, len(valid))
		for i, allocation := range valid {
			allocationIDs[i] = allocation.ID
		}
		publisher.Publish(ctx, notify.AllocationCompleted(result.Message, allocationIDs))
	}
	if len(unallocated) > 0 {
		publisher.Publish(ctx, notify.ShiftsUnallocated(unallocated))
	}

	return result
}

// proposeForShift asks the advisory collaborator for pairings on one shift
// and persists each as a pending allocation.
func proposeForShift(
	ctx context.Context,
	store AutoAllocateStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	shift *model.Shift,
	preferences map[string]any,
) ([]model.AllocationRecord, error) {
	if advisory == nil {
		return nil, nil
	}

	allStaff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff members", err)
	}
	availableStaff := allocator.AvailableStaff(allStaff, shift.Date, shift.Department)

	analysisData := map[string]any{
		"shift": map[string]any{
			"id":                  shift.ID,
			"date":                shift.Date,
			"department":          shift.Department,
			"required_staff":      shift.RequiredStaff,
			"minimum_skill_level": shift.MinimumSkillLevel,
			"priority":            string(shift.Priority),
		},
		"available_staff": availableStaff,
		"preferences":     preferences,
	}

	analysis := advisory.AnalyzeStaffAllocation(ctx, []any{analysisData}, []any{shift})

	allocations := []model.AllocationRecord{}
	for _, recommendation := range analysis.Recommendations {
		if recommendation.ShiftID != shift.ID {
			continue
		}
		for _, proposal := range recommendation.StaffAllocations {
			confidence := defaultConfidence
			if proposal.Confidence != nil {
				confidence = *proposal.Confidence
			}
			reasoning := proposal.Reasoning
			if reasoning == "" {
				reasoning = "AI recommendation"
			}

			allocation := model.AllocationRecord{
				ID:              model.NewID("allocation"),
				StaffID:         proposal.StaffID,
				ShiftID:         shift.ID,
				Status:          model.AllocationPending,
				ConfidenceScore: confidence,
				Reasoning:       reasoning,
				ConstraintsMet:  []string{"ai_analysis"},
				PotentialIssues: append([]string{}, recommendation.PotentialIssues...),
			}

			if err := store.InsertAllocation(ctx, &allocation); err != nil {
				return nil, wrapStoreErr("insert allocation", err)
			}
			allocations = append(allocations, allocation)
		}
	}

	logger.Debug("Advisory proposals materialized",
		zap.String("shift_id", shift.ID),
		zap.Int("proposals", len(allocations)))

	return allocations, nil
}

// allocationCost totals the cost of the given allocations at the fixed
// eight hours per shift.
func allocationCost(ctx context.Context, store AutoAllocateStore, allocations []model.AllocationRecord) (float64, error) {
	total := 0.0
	for _, allocation := range allocations {
		staff, err := store.GetStaffMember(ctx, allocation.StaffID)
		if err != nil {
			return 0, wrapStoreErr("fetch staff member", err)
		}
		if staff != nil {
			total += staff.HourlyRate * 8
		}
	}
	return total, nil
}

// allocationRecommendations builds the follow-up recommendations for an
// allocation result: deterministic count-based messages first, then up to
// three advisory one-liners. Capped at five.
func allocationRecommendations(
	ctx context.Context,
	advisory AdvisoryClient,
	logger *zap.Logger,
	valid, invalid []model.AllocationRecord,
	unallocated []string,
) []string {
	recommendations := []string{}

	if len(invalid) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Review %d invalid allocations for constraint violations", len(invalid)))
	}
	if len(unallocated) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Find staff for %d unallocated shifts", len(unallocated)),
			"Consider adjusting shift requirements or hiring additional staff")
	}
	if len(valid) > 0 {
		totalConfidence := 0.0
		for _, allocation := range valid {
			totalConfidence += allocation.ConfidenceScore
		}
		if totalConfidence/float64(len(valid)) < 0.7 {
			recommendations = append(recommendations,
				"Low confidence scores suggest reviewing allocation criteria")
		}
	}

	if advisory != nil {
		prompt := fmt.Sprintf(`Based on the following allocation results, provide 2-3 actionable recommendations:

{"valid_allocations": %d, "invalid_allocations": %d, "unallocated_shifts": %d}

Focus on practical improvements for hospital staff scheduling.`,
			len(valid), len(invalid), len(unallocated))

		response, err := advisory.GenerateResponse(ctx, prompt, "")
		if err != nil {
			logger.Debug("Advisory recommendations unavailable", zap.Error(err))
		} else {
			extras := 0
			for _, line := range strings.Split(response, "\n") {
				line = strings.TrimSpace(line)
				if len(line) > 10 && extras < 3 {
					recommendations = append(recommendations, line)
					extras++
				}
			}
		}
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func autoAllocateFailure(shiftIDs []string, message string) *AutoAllocateResult {
	return &AutoAllocateResult{
		Success:           false,
		Message:           message,
		Allocations:       []model.AllocationRecord{},
		UnallocatedShifts: shiftIDs,
		OptimizationScore: 0.0,
		TotalCost:         0.0,
		Recommendations:   []string{"Manual allocation required due to system error"},
	}
}
