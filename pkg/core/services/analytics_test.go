package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/memstore"
)

// analyticsStore holds 2 staff (1 doctor, 1 nurse, both emergency), 2
// shifts and 2 allocations on the first shift: the doctor confirmed, the
// nurse pending. The second shift has no allocations.
func analyticsStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	doctor := testStaff("staff_001", "Dr. Priya Raman", model.RoleDoctor, model.DepartmentEmergency, 9)
	require.NoError(t, store.InsertStaffMember(ctx, &doctor))
	nurse := testStaff("staff_002", "Nurse Kim", model.RoleNurse, model.DepartmentEmergency, 7)
	require.NoError(t, store.InsertStaffMember(ctx, &nurse))

	covered := testShift("shift_001", "2024-07-20", "emergency", 5, 3)
	covered.RequiredStaff = map[string]int{"doctor": 1, "nurse": 2}
	require.NoError(t, store.InsertShift(ctx, &covered))
	uncovered := testShift("shift_002", "2024-07-21", "icu", 5, 2)
	require.NoError(t, store.InsertShift(ctx, &uncovered))

	require.NoError(t, store.InsertAllocation(ctx, &model.AllocationRecord{
		ID: "allocation_001", StaffID: "staff_001", ShiftID: "shift_001",
		Status: model.AllocationConfirmed,
	}))
	require.NoError(t, store.InsertAllocation(ctx, &model.AllocationRecord{
		ID: "allocation_002", StaffID: "staff_002", ShiftID: "shift_001",
		Status: model.AllocationPending,
	}))

	return store
}

func TestAnalyzeUtilization_RatesAndBreakdowns(t *testing.T) {
	store := analyticsStore(t)

	analytics, err := AnalyzeUtilization(context.Background(), store, testLogger())
	require.NoError(t, err)

	// Both staff hold an allocation, one of two shifts is touched
	assert.Equal(t, 2, analytics.Overall.StaffUtilization.AllocatedStaff)
	assert.InDelta(t, 1.0, analytics.Overall.StaffUtilization.UtilizationRate, 0.001)
	assert.Equal(t, 0, analytics.Overall.StaffUtilization.UnallocatedStaff)
	assert.Equal(t, 1, analytics.Overall.ShiftCoverage.CoveredShifts)
	assert.InDelta(t, 0.5, analytics.Overall.ShiftCoverage.CoverageRate, 0.001)
	assert.Equal(t, 1, analytics.Overall.ShiftCoverage.UncoveredShifts)

	// Department breakdown counts allocations, role breakdown counts staff
	assert.Equal(t, GroupUtilization{TotalStaff: 2, AllocatedStaff: 2, UtilizationRate: 1.0}, analytics.ByDepartment["emergency"])
	assert.Equal(t, GroupUtilization{TotalStaff: 1, AllocatedStaff: 1, UtilizationRate: 1.0}, analytics.ByRole["doctor"])
	assert.Equal(t, GroupUtilization{TotalStaff: 1, AllocatedStaff: 1, UtilizationRate: 1.0}, analytics.ByRole["nurse"])

	assert.Equal(t, 2, analytics.Summary.TotalAllocations)
	assert.InDelta(t, 1.0, analytics.Summary.AverageAllocationsPerStaff, 0.001)
}

func TestAnalyzeUtilization_EmptyStore(t *testing.T) {
	analytics, err := AnalyzeUtilization(context.Background(), memstore.New(), testLogger())
	require.NoError(t, err)

	assert.Zero(t, analytics.Overall.StaffUtilization.UtilizationRate)
	assert.Zero(t, analytics.Overall.ShiftCoverage.CoverageRate)
	assert.Zero(t, analytics.Summary.AverageAllocationsPerStaff)
}

func TestAnalyzeCoverage_ConfirmedOnly(t *testing.T) {
	store := analyticsStore(t)

	analytics, err := AnalyzeCoverage(context.Background(), store, testLogger(), "", "")
	require.NoError(t, err)

	// shift_001 has a confirmed doctor but needs 2 nurses: partial.
	// shift_002 has no allocations at all.
	assert.Equal(t, 2, analytics.Summary.TotalShifts)
	assert.Equal(t, 1, analytics.Summary.CoveredShifts)
	assert.Equal(t, 1, analytics.Summary.UncoveredShifts)
	assert.Equal(t, 1, analytics.Summary.PartiallyCoveredShifts)
	assert.Equal(t, 0, analytics.Summary.FullyCoveredShifts)
	assert.InDelta(t, 0.5, analytics.Summary.CoverageRate, 0.001)

	assert.Equal(t, GroupCoverage{Total: 1, Covered: 1, FullyCovered: 0}, analytics.ByDepartment["emergency"])
	assert.Equal(t, "all", analytics.DateRange.StartDate)
}

func TestAnalyzeCoverage_DateWindow(t *testing.T) {
	store := analyticsStore(t)

	analytics, err := AnalyzeCoverage(context.Background(), store, testLogger(), "2024-07-21", "2024-07-21")
	require.NoError(t, err)

	assert.Equal(t, 1, analytics.Summary.TotalShifts)
	assert.Equal(t, 0, analytics.Summary.CoveredShifts)
	assert.Equal(t, "2024-07-21", analytics.DateRange.StartDate)
	assert.Equal(t, "2024-07-21", analytics.DateRange.EndDate)
}

func TestShiftRequirementsStatus_PartialFulfillment(t *testing.T) {
	store := analyticsStore(t)

	requirements, err := ShiftRequirementsStatus(context.Background(), store, testLogger(), "shift_001")
	require.NoError(t, err)
	require.NotNil(t, requirements)

	// Only the confirmed doctor counts toward fulfillment; the pending
	// nurse still occupies capacity.
	assert.Equal(t, map[string]int{"doctor": 1}, requirements.FulfilledStaff)
	assert.Equal(t, map[string]int{"doctor": 0, "nurse": 2}, requirements.RemainingRequirements)
	assert.Equal(t, 2, requirements.CurrentAllocations)
	assert.Equal(t, 1, requirements.CapacityRemaining)
	assert.False(t, requirements.IsFullyStaffed)
}

func TestShiftRequirementsStatus_UnknownShift(t *testing.T) {
	requirements, err := ShiftRequirementsStatus(context.Background(), memstore.New(), testLogger(), "shift_404")
	require.NoError(t, err)
	assert.Nil(t, requirements)
}

func TestSystemStatistics_Aggregates(t *testing.T) {
	store := analyticsStore(t)

	stats, err := SystemStatistics(context.Background(), store, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Overview.TotalStaff)
	assert.Equal(t, 2, stats.Overview.TotalShifts)
	assert.Equal(t, 2, stats.Overview.TotalAllocations)
	assert.InDelta(t, 0.5, stats.Overview.ShiftCoverageRate, 0.001)

	// skill 9 + 7 across 2 emergency staff
	assert.Equal(t, DepartmentStats{Count: 2, AvgSkill: 8.0, TotalSkill: 16}, stats.StaffByDepartment["emergency"])
	assert.Equal(t, RoleStats{Count: 1, AvgExperience: 8.0, TotalExperience: 8}, stats.StaffByRole["doctor"])
}
