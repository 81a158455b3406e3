package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

func TestAvailableStaffForDate_FiltersUnavailable(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	onLeave := testStaff("staff_002", "Mei Lin", model.RoleNurse, model.DepartmentEmergency, 8)
	onLeave.UnavailableDates = []string{"2024-07-20"}
	require.NoError(t, store.InsertStaffMember(ctx, &onLeave))

	surgery := testStaff("staff_003", "Dr. Chen", model.RoleDoctor, model.DepartmentSurgery, 10)
	require.NoError(t, store.InsertStaffMember(ctx, &surgery))

	available, err := AvailableStaffForDate(ctx, store, "2024-07-20", "emergency")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "staff_001", available[0].ID)

	// Without a department filter the surgery doctor appears
	available, err = AvailableStaffForDate(ctx, store, "2024-07-20", "")
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestAnalyzeStaffSkills_DistributionsAndGaps(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	junior := testStaff("staff_002", "Tom Hale", model.RoleNurse, model.DepartmentPediatrics, 5)
	junior.ExperienceYears = 2
	require.NoError(t, store.InsertStaffMember(ctx, &junior))

	analysis, err := AnalyzeStaffSkills(ctx, store, nil, testLogger(), "")
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.Equal(t, 2, analysis.TotalStaff)
	assert.InDelta(t, 7.0, analysis.AverageSkillLevel, 1e-9)
	assert.InDelta(t, 5.0, analysis.AverageExperience, 1e-9)
	assert.Equal(t, map[string]int{"9": 1, "5": 1}, analysis.SkillLevelDistribution)
	assert.Equal(t, map[string]int{"doctor": 1, "nurse": 1}, analysis.RoleDistribution)
	assert.Equal(t, map[string]int{"emergency": 1, "pediatrics": 1}, analysis.DepartmentDistribution)

	assert.Contains(t, analysis.SkillGaps, "Low average skill level in pediatrics department: 5.0")
	assert.Contains(t, analysis.SkillGaps, "Shortage of doctors")
	assert.Contains(t, analysis.SkillGaps, "Shortage of nurses")

	// Nil advisory falls back to the fixed recommendations
	assert.Equal(t, fallbackRecommendations, analysis.Recommendations)
}

func TestAnalyzeStaffSkills_DepartmentFilter(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	other := testStaff("staff_002", "Dr. Chen", model.RoleDoctor, model.DepartmentSurgery, 10)
	require.NoError(t, store.InsertStaffMember(ctx, &other))

	analysis, err := AnalyzeStaffSkills(ctx, store, nil, testLogger(), "emergency")
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.Equal(t, 1, analysis.TotalStaff)
	assert.Equal(t, map[string]int{"emergency": 1}, analysis.DepartmentDistribution)
}

func TestAnalyzeStaffSkills_NoStaff(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	analysis, err := AnalyzeStaffSkills(ctx, store, nil, testLogger(), "icu")
	require.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestAnalyzeStaffSkills_AdvisoryRecommendations(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	advisory := &mockAdvisory{
		response: `["Hire two more nurses", "Cross-train emergency staff"]`,
	}

	analysis, err := AnalyzeStaffSkills(ctx, store, advisory, testLogger(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, advisory.generateCalls)
	assert.Equal(t, []string{"Hire two more nurses", "Cross-train emergency staff"}, analysis.Recommendations)
}

func TestAnalyzeStaffWorkload_Categories(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	// staff_001 max 50h: 6 allocations = 48h -> 0.96 overloaded
	overloaded, err := store.GetStaffMember(ctx, "staff_001")
	require.NoError(t, err)
	require.NotNil(t, overloaded)

	balanced := testStaff("staff_002", "Gowsalya Devi", model.RoleNurse, model.DepartmentEmergency, 8)
	balanced.MaxHoursPerWeek = 40 // 4 allocations = 32h -> 0.8
	require.NoError(t, store.InsertStaffMember(ctx, &balanced))

	idle := testStaff("staff_003", "Jake Wilson", model.RoleTechnician, model.DepartmentEmergency, 7)
	require.NoError(t, store.InsertStaffMember(ctx, &idle))

	allocate := func(staffID string, count int) {
		for i := 0; i < count; i++ {
			allocation := model.AllocationRecord{
				ID:      model.NewID("allocation"),
				StaffID: staffID,
				ShiftID: "shift_001",
				Status:  model.AllocationConfirmed,
			}
			require.NoError(t, store.InsertAllocation(ctx, &allocation))
		}
	}
	allocate("staff_001", 6)
	allocate("staff_002", 4)

	analysis, err := AnalyzeStaffWorkload(ctx, store, "")
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.Summary.TotalStaff)
	assert.Equal(t, 1, analysis.Summary.OverloadedStaff)
	assert.Equal(t, 1, analysis.Summary.BalancedStaff)
	assert.Equal(t, 1, analysis.Summary.UnderutilizedStaff)

	byID := map[string]StaffWorkload{}
	for _, workload := range analysis.StaffWorkloads {
		byID[workload.StaffID] = workload
	}
	assert.Equal(t, "overloaded", byID["staff_001"].Category)
	assert.InDelta(t, 0.96, byID["staff_001"].UtilizationRate, 1e-9)
	assert.Equal(t, "balanced", byID["staff_002"].Category)
	assert.Equal(t, "underutilized", byID["staff_003"].Category)
	assert.Equal(t, 48.0, byID["staff_001"].AllocatedHours)
	assert.Equal(t, 6, byID["staff_001"].NumberOfShifts)
}

func TestAnalyzeStaffWorkload_SingleStaff(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	analysis, err := AnalyzeStaffWorkload(ctx, store, "staff_001")
	require.NoError(t, err)
	assert.Equal(t, 1, analysis.Summary.TotalStaff)

	analysis, err = AnalyzeStaffWorkload(ctx, store, "staff_missing")
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Summary.TotalStaff)
	assert.Empty(t, analysis.StaffWorkloads)
}

func TestSuggestStaffForShift_RanksCandidates(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	junior := testStaff("staff_002", "Tom Hale", model.RoleDoctor, model.DepartmentEmergency, 7)
	junior.ExperienceYears = 2
	require.NoError(t, store.InsertStaffMember(ctx, &junior))

	suggestions, err := SuggestStaffForShift(ctx, store, testLogger(), "shift_001")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "staff_001", suggestions[0].StaffID)
	assert.Greater(t, suggestions[0].SuitabilityScore, suggestions[1].SuitabilityScore)
	assert.Equal(t, "high", suggestions[0].Recommendation)
	assert.Contains(t, suggestions[0].Reasons, "Skill level 9/10")
}

func TestSuggestStaffForShift_UnknownShift(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	suggestions, err := SuggestStaffForShift(ctx, store, testLogger(), "shift_missing")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
