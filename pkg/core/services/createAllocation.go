package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/rules"
)

// CreateAllocationStore defines the database operations needed to create
// a manual allocation.
type CreateAllocationStore interface {
	ValidationStore
	InsertAllocation(ctx context.Context, allocation *model.AllocationRecord) error
}

// CreateAllocation creates one manual staff-to-shift allocation. Returns
// nil without error when the staff member or shift does not exist.
//
// The record is validated before persisting: constraints_met records every
// rule that was evaluated (passed or not), potential_issues carries the
// violations and warnings, and the status is promoted to confirmed only
// when validation passes. An invalid allocation is still persisted as
// pending so it can be resolved manually.
func CreateAllocation(
	ctx context.Context,
	store CreateAllocationStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	staffID, shiftID string,
	confidenceScore float64,
	reasoning string,
) (*model.AllocationRecord, error) {
	logger.Debug("Creating allocation",
		zap.String("staff_id", staffID),
		zap.String("shift_id", shiftID),
		zap.Float64("confidence_score", confidenceScore))

	// Step 1: verify both references exist
	staff, err := store.GetStaffMember(ctx, staffID)
	if err != nil {
		return nil, wrapStoreErr("fetch staff member", err)
	}
	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}
	if staff == nil || shift == nil {
		logger.Warn("Cannot create allocation for missing entities",
			zap.String("staff_id", staffID),
			zap.String("shift_id", shiftID))
		return nil, nil
	}

	if reasoning == "" {
		reasoning = "Manual allocation"
	}

	// Step 2: build the pending record
	allocation := &model.AllocationRecord{
		ID:              model.NewID("allocation"),
		StaffID:         staffID,
		ShiftID:         shiftID,
		Status:          model.AllocationPending,
		ConfidenceScore: confidenceScore,
		Reasoning:       reasoning,
		ConstraintsMet:  []string{},
		PotentialIssues: []string{},
	}

	// Step 3: validate against the constraint rules
	validation, err := ValidateAllocation(ctx, store, advisory, logger, allocation)
	if err != nil {
		return nil, err
	}

	allocation.ConstraintsMet = evaluatedRuleNames(validation)
	allocation.PotentialIssues = append(append([]string{}, validation.Violations...), validation.Warnings...)

	// Step 4: auto-confirm when every critical rule passed
	if validation.IsValid {
		allocation.Status = model.AllocationConfirmed
		allocation.AssignedAt = model.NowTimestamp()
	}

	// Step 5: persist
	if err := store.InsertAllocation(ctx, allocation); err != nil {
		return nil, wrapStoreErr("insert allocation", err)
	}

	logger.Info("Created allocation",
		zap.String("allocation_id", allocation.ID),
		zap.String("status", string(allocation.Status)),
		zap.Int("potential_issues", len(allocation.PotentialIssues)))

	return allocation, nil
}

// evaluatedRuleNames lists every rule the validation evaluated, passed or
// not, in the engine's canonical order.
func evaluatedRuleNames(validation *rules.ValidationResult) []string {
	names := []string{}
	for _, name := range rules.DefaultEngine().RuleNames() {
		if _, evaluated := validation.ConstraintDetails[name]; evaluated {
			names = append(names, name)
		}
	}
	return names
}
