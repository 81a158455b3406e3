// Package optimizer reworks an existing schedule window toward a named goal.
// Each strategy proposes a fresh set of shift assignments and reports the
// metric it optimizes for; none of them mutate stored allocations. The
// balance strategy is the exception in that it defers to the advisory
// collaborator instead of scoring locally.
package optimizer

import (
	"slices"
	"strings"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/allocator"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// Strategy names an optimization goal.
type Strategy string

const (
	StrategyCost         Strategy = "cost"
	StrategyQuality      Strategy = "quality"
	StrategySatisfaction Strategy = "satisfaction"
	StrategyBalance      Strategy = "balance"
)

// Normalize maps unknown strategy names to the balanced strategy.
func Normalize(name string) Strategy {
	switch Strategy(name) {
	case StrategyCost, StrategyQuality, StrategySatisfaction, StrategyBalance:
		return Strategy(name)
	default:
		return StrategyBalance
	}
}

// Shifts are costed at eight hours regardless of their clock times.
const assumedShiftHours = 8

// Result is the outcome of one optimization strategy.
type Result interface {
	// StrategyName identifies the strategy that produced the result.
	StrategyName() string
	// Improvements reports the metric deltas the strategy claims.
	Improvements() map[string]float64
	// RecommendationList returns the strategy's follow-up recommendations.
	RecommendationList() []string
}

// CurrentState summarizes the schedule window before optimization.
type CurrentState struct {
	TotalShifts         int     `json:"total_shifts"`
	TotalAllocations    int     `json:"total_allocations"`
	TotalCost           float64 `json:"total_cost"`
	StaffUtilization    float64 `json:"staff_utilization"`
	ShiftCoverage       float64 `json:"shift_coverage"`
	AverageQualityScore float64 `json:"average_quality_score"`
}

// Report is the full optimization outcome returned to callers.
type Report struct {
	Success            bool               `json:"success"`
	StrategyUsed       string             `json:"strategy_used,omitempty"`
	CurrentState       *CurrentState      `json:"current_state,omitempty"`
	OptimizationResult Result             `json:"optimization_result,omitempty"`
	ImprovementMetrics map[string]float64 `json:"improvement_metrics,omitempty"`
	ImplementationPlan []string           `json:"implementation_plan,omitempty"`
	Recommendations    []string           `json:"recommendations"`
	Error              string             `json:"error,omitempty"`
}

// BuildReport assembles the success envelope for a strategy result.
// strategyUsed echoes the caller's requested name, which may differ from the
// strategy actually run when the request named an unknown strategy.
func BuildReport(strategyUsed string, state CurrentState, result Result) *Report {
	return &Report{
		Success:            true,
		StrategyUsed:       strategyUsed,
		CurrentState:       &state,
		OptimizationResult: result,
		ImprovementMetrics: ImprovementMetrics(result),
		ImplementationPlan: ImplementationPlan(result),
		Recommendations:    result.RecommendationList(),
	}
}

// FailedReport is returned when optimization cannot run at all.
func FailedReport(err error) *Report {
	return &Report{
		Success:         false,
		Error:           err.Error(),
		Recommendations: []string{"Manual optimization required due to error"},
	}
}

// AnalyzeCurrentState computes the pre-optimization metrics for a window.
func AnalyzeCurrentState(shifts []model.Shift, allocations []model.AllocationRecord, staff []model.StaffMember) CurrentState {
	return CurrentState{
		TotalShifts:         len(shifts),
		TotalAllocations:    len(allocations),
		TotalCost:           totalCost(allocations, staff),
		StaffUtilization:    staffUtilization(allocations, staff),
		ShiftCoverage:       shiftCoverage(shifts, allocations),
		AverageQualityScore: averageQuality(allocations, staff, shifts),
	}
}

// ImprovementMetrics merges a strategy's claimed deltas over the zeroed
// baseline metrics, so every report carries the same baseline keys.
func ImprovementMetrics(result Result) map[string]float64 {
	metrics := map[string]float64{
		"cost_change":         0.0,
		"quality_change":      0.0,
		"efficiency_change":   0.0,
		"satisfaction_change": 0.0,
	}
	for key, value := range result.Improvements() {
		metrics[key] = value
	}
	return metrics
}

// ImplementationPlan lists the rollout steps for a result, with one
// strategy-specific verification step spliced in after the first.
func ImplementationPlan(result Result) []string {
	plan := []string{
		"1. Review optimization recommendations with management",
		"2. Notify affected staff of proposed changes",
		"3. Check for any conflicts or objections",
		"4. Implement changes in scheduling system",
		"5. Monitor performance metrics post-implementation",
	}

	name := result.StrategyName()
	switch {
	case strings.Contains(name, "cost"):
		plan = slices.Insert(plan, 1, "1.5. Verify cost savings calculations")
	case strings.Contains(name, "quality"):
		plan = slices.Insert(plan, 1, "1.5. Ensure quality standards are maintained")
	case strings.Contains(name, "satisfaction"):
		plan = slices.Insert(plan, 1, "1.5. Gather staff feedback on proposed changes")
	}

	return plan
}

func totalCost(allocations []model.AllocationRecord, staff []model.StaffMember) float64 {
	total := 0.0
	for _, allocation := range allocations {
		if member := findStaff(staff, allocation.StaffID); member != nil {
			total += member.HourlyRate * assumedShiftHours
		}
	}
	return total
}

func staffUtilization(allocations []model.AllocationRecord, staff []model.StaffMember) float64 {
	if len(staff) == 0 {
		return 0.0
	}
	allocated := map[string]struct{}{}
	for _, allocation := range allocations {
		allocated[allocation.StaffID] = struct{}{}
	}
	return float64(len(allocated)) / float64(len(staff))
}

func shiftCoverage(shifts []model.Shift, allocations []model.AllocationRecord) float64 {
	if len(shifts) == 0 {
		return 0.0
	}
	covered := map[string]struct{}{}
	for _, allocation := range allocations {
		covered[allocation.ShiftID] = struct{}{}
	}
	return float64(len(covered)) / float64(len(shifts))
}

func averageQuality(allocations []model.AllocationRecord, staff []model.StaffMember, shifts []model.Shift) float64 {
	total := 0.0
	count := 0
	for _, allocation := range allocations {
		member := findStaff(staff, allocation.StaffID)
		shift := findShift(shifts, allocation.ShiftID)
		if member != nil && shift != nil {
			total += allocator.QualityScore(shift, member)
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return total / float64(count)
}

func findStaff(staff []model.StaffMember, id string) *model.StaffMember {
	for i := range staff {
		if staff[i].ID == id {
			return &staff[i]
		}
	}
	return nil
}

func findShift(shifts []model.Shift, id string) *model.Shift {
	for i := range shifts {
		if shifts[i].ID == id {
			return &shifts[i]
		}
	}
	return nil
}

// requiredRoles returns a shift's required role names in sorted order so
// selection is deterministic.
func requiredRoles(shift *model.Shift) []string {
	roles := make([]string, 0, len(shift.RequiredStaff))
	for role := range shift.RequiredStaff {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}

// takeForRole picks up to count staff of the given role from an already
// ordered candidate list.
func takeForRole(candidates []model.StaffMember, role string, count int) []model.StaffMember {
	picked := []model.StaffMember{}
	for _, member := range candidates {
		if len(picked) == count {
			break
		}
		if string(member.Role) == role {
			picked = append(picked, member)
		}
	}
	return picked
}
