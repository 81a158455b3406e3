package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/clients/groqclient"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/optimizer"
)

// OptimizeStore defines the database operations needed to optimize a
// schedule window.
type OptimizeStore interface {
	GetShifts(ctx context.Context) ([]model.Shift, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAllocations(ctx context.Context) ([]model.AllocationRecord, error)
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
}

// OptimizeSchedule reworks the schedule window named by dateRange toward
// the requested strategy and returns the resulting report. Unknown
// strategy names fall back to the balanced strategy. Failures never
// escape: they surface as a failed report with a manual-fallback
// recommendation.
func OptimizeSchedule(
	ctx context.Context,
	store OptimizeStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	dateRange string,
	strategyName string,
) *optimizer.Report {
	start, end := parseDateRange(dateRange)
	strategy := optimizer.Normalize(strategyName)

	logger.Debug("Optimizing schedule",
		zap.String("start", start),
		zap.String("end", end),
		zap.String("strategy", string(strategy)))

	// Step 1: materialize the window
	allShifts, err := store.GetShifts(ctx)
	if err != nil {
		return optimizer.FailedReport(wrapStoreErr("fetch shifts", err))
	}
	shifts := []model.Shift{}
	for _, shift := range allShifts {
		if dateInRange(shift.Date, start, end) {
			shifts = append(shifts, shift)
		}
	}

	allAllocations, err := store.GetAllocations(ctx)
	if err != nil {
		return optimizer.FailedReport(wrapStoreErr("fetch allocations", err))
	}
	allocations := []model.AllocationRecord{}
	for _, allocation := range allAllocations {
		shift, err := store.GetShift(ctx, allocation.ShiftID)
		if err != nil {
			return optimizer.FailedReport(wrapStoreErr("fetch shift", err))
		}
		if shift != nil && dateInRange(shift.Date, start, end) {
			allocations = append(allocations, allocation)
		}
	}

	staff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return optimizer.FailedReport(wrapStoreErr("fetch staff members", err))
	}

	state := optimizer.AnalyzeCurrentState(shifts, allocations, staff)

	// Step 2: run the strategy
	var result optimizer.Result
	switch strategy {
	case optimizer.StrategyCost:
		result = optimizer.OptimizeForCost(shifts, allocations, staff)
	case optimizer.StrategyQuality:
		result = optimizer.OptimizeForQuality(shifts, staff)
	case optimizer.StrategySatisfaction:
		result = optimizer.OptimizeForSatisfaction(shifts, staff)
	default:
		result = optimizer.BalanceFromAdvisory(balanceAdvisory(ctx, advisory, logger, shifts, allocations, staff))
	}

	logger.Info("Schedule optimization complete",
		zap.String("strategy", string(strategy)),
		zap.Int("shifts", len(shifts)),
		zap.Int("allocations", len(allocations)))

	return optimizer.BuildReport(strategyName, state, result)
}

// balanceAdvisory fetches the advisory schedule optimization the balanced
// strategy consumes. Without a collaborator it substitutes the same
// degraded default the client would.
func balanceAdvisory(
	ctx context.Context,
	advisory AdvisoryClient,
	logger *zap.Logger,
	shifts []model.Shift,
	allocations []model.AllocationRecord,
	staff []model.StaffMember,
) *groqclient.ScheduleOptimization {
	if advisory == nil {
		logger.Debug("No advisory collaborator; balanced strategy degrades to empty plan")
		return &groqclient.ScheduleOptimization{
			OptimizedSchedule:  groqclient.OptimizedSchedule{Changes: []groqclient.ScheduleChange{}},
			PerformanceMetrics: map[string]any{},
			ImplementationPlan: []string{"Manual optimization required"},
		}
	}

	schedule := map[string]any{
		"shifts":      shifts,
		"allocations": allocations,
		"staff":       staff,
	}
	goals := []string{"balance cost, quality and staff satisfaction"}

	return advisory.OptimizeSchedule(ctx, schedule, goals)
}
