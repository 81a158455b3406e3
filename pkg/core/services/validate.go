package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/rules"
)

// ValidationStore defines the database operations needed to validate
// allocations against the constraint rules.
type ValidationStore interface {
	GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAllocation(ctx context.Context, id string) (*model.AllocationRecord, error)
	GetAllocations(ctx context.Context) ([]model.AllocationRecord, error)
	GetAllocationsByStaff(ctx context.Context, staffID string) ([]model.AllocationRecord, error)
	GetAllocationsByShift(ctx context.Context, shiftID string) ([]model.AllocationRecord, error)
}

// BatchSummary counts the outcomes of one batch validation.
type BatchSummary struct {
	TotalAllocations   int `json:"total_allocations"`
	ValidAllocations   int `json:"valid_allocations"`
	CriticalViolations int `json:"critical_violations"`
	Warnings           int `json:"warnings"`
}

// BatchValidation is the verdict for a batch of allocations: one
// ValidationResult per allocation plus the cross-allocation conflicts that
// only show up when the batch is examined together.
type BatchValidation struct {
	IndividualValidations map[string]*rules.ValidationResult `json:"individual_validations"`
	GlobalConflicts       []rules.ConflictRecord             `json:"global_conflicts"`
	OverallValid          bool                               `json:"overall_valid"`
	Summary               BatchSummary                       `json:"summary"`
}

// buildSnapshot materializes the world state one allocation's validation
// needs: the staff and shift records plus the staff member's and shift's
// existing allocations joined to their shifts.
func buildSnapshot(ctx context.Context, store ValidationStore, allocation *model.AllocationRecord) (*rules.Snapshot, error) {
	staff, err := store.GetStaffMember(ctx, allocation.StaffID)
	if err != nil {
		return nil, wrapStoreErr("fetch staff member", err)
	}
	shift, err := store.GetShift(ctx, allocation.ShiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}

	snap := &rules.Snapshot{
		Allocation: allocation,
		Staff:      staff,
		Shift:      shift,
	}
	if staff == nil || shift == nil {
		return snap, nil
	}

	staffAllocations, err := store.GetAllocationsByStaff(ctx, staff.ID)
	if err != nil {
		return nil, wrapStoreErr("fetch staff allocations", err)
	}
	snap.StaffAllocations, err = joinAllocations(ctx, store, staffAllocations)
	if err != nil {
		return nil, err
	}

	shiftAllocations, err := store.GetAllocationsByShift(ctx, shift.ID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift allocations", err)
	}
	snap.ShiftAllocations, err = joinAllocations(ctx, store, shiftAllocations)
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// joinAllocations resolves each allocation's staff and shift references.
// Dangling references stay nil; the rules treat them as absent.
func joinAllocations(ctx context.Context, store ValidationStore, allocations []model.AllocationRecord) ([]rules.JoinedAllocation, error) {
	joined := make([]rules.JoinedAllocation, 0, len(allocations))
	for _, allocation := range allocations {
		shift, err := store.GetShift(ctx, allocation.ShiftID)
		if err != nil {
			return nil, wrapStoreErr("fetch shift", err)
		}
		staff, err := store.GetStaffMember(ctx, allocation.StaffID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff member", err)
		}
		joined = append(joined, rules.JoinedAllocation{
			Allocation: allocation,
			Shift:      shift,
			Staff:      staff,
		})
	}
	return joined, nil
}

// ValidateAllocation runs the constraint engine over one allocation. The
// deterministic verdict is complete before the advisory collaborator is
// consulted; the advisory opinion, requested whenever any rule is violated,
// may append suggestions but never changes validity or severity.
func ValidateAllocation(
	ctx context.Context,
	store ValidationStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	allocation *model.AllocationRecord,
) (*rules.ValidationResult, error) {
	snap, err := buildSnapshot(ctx, store, allocation)
	if err != nil {
		return nil, err
	}

	if snap.Staff == nil || snap.Shift == nil {
		logger.Debug("Allocation references missing entities",
			zap.String("allocation_id", allocation.ID),
			zap.String("staff_id", allocation.StaffID),
			zap.String("shift_id", allocation.ShiftID))
		return rules.MissingEntityResult(), nil
	}

	result := rules.DefaultEngine().Evaluate(snap)

	logger.Debug("Evaluated constraint rules",
		zap.String("allocation_id", allocation.ID),
		zap.Bool("is_valid", result.IsValid),
		zap.Int("violations", len(result.Violations)),
		zap.Int("warnings", len(result.Warnings)))

	// Advisory enrichment, strictly additive. Any violated rule triggers
	// the consult, medium severities included.
	if advisory != nil && result.ViolatedRuleCount() > 0 {
		evaluation := advisory.EvaluateAllocationConstraints(ctx, map[string]any{
			"allocation": allocation,
			"staff":      snap.Staff,
			"shift":      snap.Shift,
			"violations": result.Violations,
			"warnings":   result.Warnings,
		})
		result.Suggestions = append(result.Suggestions, evaluation.Suggestions...)
		result.AdvisoryAnalysis = evaluation
	}

	return result, nil
}

// ValidateAllocationByID validates an already stored allocation.
// Returns nil when the allocation id is unknown.
func ValidateAllocationByID(
	ctx context.Context,
	store ValidationStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	allocationID string,
) (*rules.ValidationResult, error) {
	allocation, err := store.GetAllocation(ctx, allocationID)
	if err != nil {
		return nil, wrapStoreErr("fetch allocation", err)
	}
	if allocation == nil {
		return nil, nil
	}
	return ValidateAllocation(ctx, store, advisory, logger, allocation)
}

// ValidateMany validates every allocation in a batch individually and then
// runs conflict detection over the whole batch. Conflict detection only
// starts once every allocation has been validated, so it always sees the
// complete batch.
func ValidateMany(
	ctx context.Context,
	store ValidationStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	allocations []model.AllocationRecord,
) (*BatchValidation, error) {
	result := &BatchValidation{
		IndividualValidations: make(map[string]*rules.ValidationResult),
		GlobalConflicts:       []rules.ConflictRecord{},
		OverallValid:          true,
		Summary:               BatchSummary{TotalAllocations: len(allocations)},
	}

	for i := range allocations {
		validation, err := ValidateAllocation(ctx, store, advisory, logger, &allocations[i])
		if err != nil {
			return nil, err
		}
		result.IndividualValidations[allocations[i].ID] = validation

		if validation.IsValid {
			result.Summary.ValidAllocations++
		} else {
			result.OverallValid = false
			result.Summary.CriticalViolations += len(validation.Violations)
		}
		result.Summary.Warnings += len(validation.Warnings)
	}

	joined, err := joinAllocations(ctx, store, allocations)
	if err != nil {
		return nil, err
	}
	result.GlobalConflicts = rules.FindConflicts(joined)
	if len(result.GlobalConflicts) > 0 {
		result.OverallValid = false
	}

	logger.Debug("Batch validation complete",
		zap.Int("allocations", len(allocations)),
		zap.Int("valid", result.Summary.ValidAllocations),
		zap.Int("global_conflicts", len(result.GlobalConflicts)),
		zap.Bool("overall_valid", result.OverallValid))

	return result, nil
}

// IndividualViolation is one flagged allocation inside a conflict analysis.
type IndividualViolation struct {
	AllocationID  string   `json:"allocation_id"`
	StaffID       string   `json:"staff_id"`
	ShiftID       string   `json:"shift_id"`
	Violations    []string `json:"violations"`
	Warnings      []string `json:"warnings"`
	SeverityScore float64  `json:"severity_score"`
}

// ConflictSummary counts the findings of one conflict analysis.
type ConflictSummary struct {
	TotalAllocations      int `json:"total_allocations"`
	ConflictedAllocations int `json:"conflicted_allocations"`
	CriticalViolations    int `json:"critical_violations"`
	Warnings              int `json:"warnings"`
}

// ConflictAnalysis reports every conflict among the allocations whose
// shifts fall in a date range.
type ConflictAnalysis struct {
	GlobalConflicts      []rules.ConflictRecord `json:"global_conflicts"`
	IndividualViolations []IndividualViolation  `json:"individual_violations"`
	Summary              ConflictSummary        `json:"summary"`
}

// AnalyzeConflicts validates all allocations whose shifts fall inside the
// date range and reports per-allocation violations alongside the global
// double-booking conflicts.
func AnalyzeConflicts(
	ctx context.Context,
	store ValidationStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	dateRange string,
) (*ConflictAnalysis, error) {
	start, end := parseDateRange(dateRange)
	logger.Debug("Analyzing allocation conflicts", zap.String("start", start), zap.String("end", end))

	allAllocations, err := store.GetAllocations(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch allocations", err)
	}

	relevant := []model.AllocationRecord{}
	for _, allocation := range allAllocations {
		shift, err := store.GetShift(ctx, allocation.ShiftID)
		if err != nil {
			return nil, wrapStoreErr("fetch shift", err)
		}
		if shift != nil && dateInRange(shift.Date, start, end) {
			relevant = append(relevant, allocation)
		}
	}

	batch, err := ValidateMany(ctx, store, advisory, logger, relevant)
	if err != nil {
		return nil, err
	}

	analysis := &ConflictAnalysis{
		GlobalConflicts:      batch.GlobalConflicts,
		IndividualViolations: []IndividualViolation{},
		Summary:              ConflictSummary{TotalAllocations: len(relevant)},
	}

	for _, allocation := range relevant {
		validation, ok := batch.IndividualValidations[allocation.ID]
		if !ok || (validation.IsValid && len(validation.Warnings) == 0) {
			continue
		}
		analysis.IndividualViolations = append(analysis.IndividualViolations, IndividualViolation{
			AllocationID:  allocation.ID,
			StaffID:       allocation.StaffID,
			ShiftID:       allocation.ShiftID,
			Violations:    validation.Violations,
			Warnings:      validation.Warnings,
			SeverityScore: validation.SeverityScore,
		})
		if !validation.IsValid {
			analysis.Summary.ConflictedAllocations++
			analysis.Summary.CriticalViolations += len(validation.Violations)
		}
		analysis.Summary.Warnings += len(validation.Warnings)
	}

	if len(analysis.GlobalConflicts) > 0 || analysis.Summary.ConflictedAllocations > 0 {
		logger.Info("Conflict analysis found issues",
			zap.Int("global_conflicts", len(analysis.GlobalConflicts)),
			zap.Int("conflicted_allocations", analysis.Summary.ConflictedAllocations))
	}

	return analysis, nil
}
