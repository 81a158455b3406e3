package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// windowStaff returns a roster where staff_002 is the cheap doctor,
// staff_001 the expensive expert, staff_003 a nurse, and staff_004 an
// underqualified doctor who never passes the skill filter.
func windowStaff() []model.StaffMember {
	return []model.StaffMember{
		{
			ID: "staff_001", Name: "Dr. Reyes", Role: model.RoleDoctor,
			Department: model.DepartmentEmergency, SkillLevel: 9, ExperienceYears: 12,
			HourlyRate: 95.0, PreferredShifts: []string{"morning"},
		},
		{
			ID: "staff_002", Name: "Dr. Okafor", Role: model.RoleDoctor,
			Department: model.DepartmentEmergency, SkillLevel: 7, ExperienceYears: 5,
			HourlyRate: 60.0, PreferredShifts: []string{"night"},
		},
		{
			ID: "staff_003", Name: "Nurse Lindqvist", Role: model.RoleNurse,
			Department: model.DepartmentICU, SkillLevel: 8, ExperienceYears: 8,
			HourlyRate: 45.0, PreferredShifts: []string{"morning"},
		},
		{
			ID: "staff_004", Name: "Dr. Novak", Role: model.RoleDoctor,
			Department: model.DepartmentEmergency, SkillLevel: 4, ExperienceYears: 1,
			HourlyRate: 20.0, PreferredShifts: []string{"morning"},
		},
	}
}

func windowShifts() []model.Shift {
	return []model.Shift{
		{
			ID: "shift_001", Date: "2024-07-15", ShiftType: model.ShiftMorning,
			Department: "emergency", StartTime: "07:00", EndTime: "15:00",
			RequiredStaff: map[string]int{"doctor": 1}, MinimumSkillLevel: 6,
			Priority: model.PriorityHigh, MaxCapacity: 2,
		},
		{
			ID: "shift_002", Date: "2024-07-16", ShiftType: model.ShiftNight,
			Department: "icu", StartTime: "23:00", EndTime: "07:00",
			RequiredStaff: map[string]int{"nurse": 1}, MinimumSkillLevel: 6,
			Priority: model.PriorityMedium, MaxCapacity: 2,
		},
	}
}

func windowAllocations() []model.AllocationRecord {
	return []model.AllocationRecord{
		{ID: "alloc_001", StaffID: "staff_001", ShiftID: "shift_001", Status: model.AllocationConfirmed},
	}
}

func TestNormalizeFallsBackToBalance(t *testing.T) {
	assert.Equal(t, StrategyCost, Normalize("cost"))
	assert.Equal(t, StrategyQuality, Normalize("quality"))
	assert.Equal(t, StrategySatisfaction, Normalize("satisfaction"))
	assert.Equal(t, StrategyBalance, Normalize("balance"))
	assert.Equal(t, StrategyBalance, Normalize("cheapest-possible"), "unknown strategies should run as balance")
}

func TestAnalyzeCurrentState(t *testing.T) {
	state := AnalyzeCurrentState(windowShifts(), windowAllocations(), windowStaff())

	assert.Equal(t, 2, state.TotalShifts)
	assert.Equal(t, 1, state.TotalAllocations)
	// One allocation held by staff_001 at $95/hour for 8 hours.
	assert.Equal(t, 760.0, state.TotalCost)
	// 1 of 4 staff allocated.
	assert.Equal(t, 0.25, state.StaffUtilization)
	// 1 of 2 shifts covered.
	assert.Equal(t, 0.5, state.ShiftCoverage)
	// Quality of the single pairing: 0.9*0.4 + 0.8*0.3 + 0.2 + 0.8*0.1 = 0.88.
	assert.InDelta(t, 0.88, state.AverageQualityScore, 1e-9)
}

func TestAnalyzeCurrentStateEmptyWindow(t *testing.T) {
	state := AnalyzeCurrentState(nil, nil, nil)

	assert.Zero(t, state.TotalCost)
	assert.Zero(t, state.StaffUtilization)
	assert.Zero(t, state.ShiftCoverage)
	assert.Zero(t, state.AverageQualityScore)
}

func TestAnalyzeCurrentStateSkipsDanglingAllocations(t *testing.T) {
	allocations := []model.AllocationRecord{
		{ID: "alloc_404", StaffID: "staff_999", ShiftID: "shift_999"},
	}

	state := AnalyzeCurrentState(windowShifts(), allocations, windowStaff())

	assert.Equal(t, 1, state.TotalAllocations, "dangling allocations still count toward the total")
	assert.Zero(t, state.TotalCost, "unresolvable staff contribute no cost")
	assert.Zero(t, state.AverageQualityScore)
}

func TestImprovementMetricsKeepsBaselineKeys(t *testing.T) {
	result := &CostResult{CostSavings: 280.0, Strategy: "cost_optimization"}

	metrics := ImprovementMetrics(result)

	assert.Equal(t, 280.0, metrics["cost_change"])
	assert.Zero(t, metrics["quality_change"])
	assert.Zero(t, metrics["efficiency_change"])
	assert.Zero(t, metrics["satisfaction_change"])
	assert.Len(t, metrics, 4)
}

func TestImprovementMetricsMergesBalanceScores(t *testing.T) {
	result := BalanceFromAdvisory(emptyAdvisory())

	metrics := ImprovementMetrics(result)

	// Four baseline keys plus the four balance dimensions.
	assert.Len(t, metrics, 8)
	assert.Equal(t, 0.75, metrics["cost_efficiency"])
	assert.Equal(t, 0.82, metrics["quality_score"])
	assert.Equal(t, 0.68, metrics["satisfaction_score"])
	assert.Equal(t, 0.71, metrics["fairness_score"])
	assert.Zero(t, metrics["cost_change"])
}

func TestImplementationPlanInsertsStrategyStep(t *testing.T) {
	plan := ImplementationPlan(&CostResult{Strategy: "cost_optimization"})

	require.Len(t, plan, 6)
	assert.Equal(t, "1. Review optimization recommendations with management", plan[0])
	assert.Equal(t, "1.5. Verify cost savings calculations", plan[1])
	assert.Equal(t, "5. Monitor performance metrics post-implementation", plan[5])

	plan = ImplementationPlan(&QualityResult{Strategy: "quality_optimization"})
	require.Len(t, plan, 6)
	assert.Equal(t, "1.5. Ensure quality standards are maintained", plan[1])

	plan = ImplementationPlan(&SatisfactionResult{Strategy: "satisfaction_optimization"})
	require.Len(t, plan, 6)
	assert.Equal(t, "1.5. Gather staff feedback on proposed changes", plan[1])
}

func TestImplementationPlanBalanceHasNoExtraStep(t *testing.T) {
	plan := ImplementationPlan(BalanceFromAdvisory(emptyAdvisory()))

	require.Len(t, plan, 5)
	assert.Equal(t, "2. Notify affected staff of proposed changes", plan[1])
}

func TestBuildReportEchoesRequestedStrategy(t *testing.T) {
	state := AnalyzeCurrentState(windowShifts(), windowAllocations(), windowStaff())
	result := OptimizeForCost(windowShifts(), windowAllocations(), windowStaff())

	report := BuildReport("cost", state, result)

	assert.True(t, report.Success)
	assert.Equal(t, "cost", report.StrategyUsed)
	require.NotNil(t, report.CurrentState)
	assert.Equal(t, 2, report.CurrentState.TotalShifts)
	assert.Equal(t, result, report.OptimizationResult)
	assert.Equal(t, result.Recommendations, report.Recommendations)
	assert.Len(t, report.ImplementationPlan, 6)
	assert.Empty(t, report.Error)
}

func TestFailedReportShape(t *testing.T) {
	report := FailedReport(errors.New("no shifts found in range"))

	assert.False(t, report.Success)
	assert.Equal(t, "no shifts found in range", report.Error)
	assert.Equal(t, []string{"Manual optimization required due to error"}, report.Recommendations)
	assert.Nil(t, report.CurrentState)
	assert.Nil(t, report.OptimizationResult)
	assert.Empty(t, report.ImplementationPlan)
}
