package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/clients/groqclient"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

func TestAutoAllocate_NoValidShifts(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := AutoAllocate(ctx, store, nil, nil, testLogger(), []string{"shift_missing"}, nil)

	assert.False(t, result.Success)
	assert.Equal(t, "No valid shifts found", result.Message)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, []string{"shift_missing"}, result.UnallocatedShifts)
	assert.Equal(t, 0.0, result.OptimizationScore)
}

func TestAutoAllocate_NilAdvisoryLeavesShiftsUnallocated(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := AutoAllocate(ctx, store, nil, nil, testLogger(), []string{"shift_001"}, nil)

	assert.False(t, result.Success)
	assert.Equal(t, "Successfully allocated 0 out of 1 shifts", result.Message)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, []string{"shift_001"}, result.UnallocatedShifts)
	assert.Contains(t, result.Recommendations, "Find staff for 1 unallocated shifts")
}

func TestAutoAllocate_ConfirmsValidProposal(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	confidence := 0.92
	advisory := &mockAdvisory{
		analysis: &groqclient.AllocationAnalysis{
			Recommendations: []groqclient.AllocationRecommendation{
				{
					ShiftID: "shift_001",
					StaffAllocations: []groqclient.StaffAllocationProposal{
						{StaffID: "staff_001", Confidence: &confidence, Reasoning: "Best skill match"},
					},
				},
			},
			OptimizationScore: 0.9,
		},
	}

	result := AutoAllocate(ctx, store, advisory, nil, testLogger(), []string{"shift_001"}, nil)

	assert.True(t, result.Success)
	assert.Equal(t, "Successfully allocated 1 out of 1 shifts", result.Message)
	require.Len(t, result.Allocations, 1)
	assert.Equal(t, model.AllocationConfirmed, result.Allocations[0].Status)
	assert.Equal(t, 0.92, result.Allocations[0].ConfidenceScore)
	assert.Equal(t, "Best skill match", result.Allocations[0].Reasoning)
	assert.Empty(t, result.UnallocatedShifts)
	assert.Equal(t, 1.0, result.OptimizationScore)
	// One 8-hour shift at 50/hour
	assert.Equal(t, 400.0, result.TotalCost)

	stored, err := store.GetAllocation(ctx, result.Allocations[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.AllocationConfirmed, stored.Status)
}

func TestAutoAllocate_RejectsInvalidProposal(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	unavailable := testStaff("staff_002", "Nilan Perera", model.RoleDoctor, model.DepartmentEmergency, 9)
	unavailable.UnavailableDates = []string{"2024-07-20"}
	require.NoError(t, store.InsertStaffMember(ctx, &unavailable))

	advisory := &mockAdvisory{
		analysis: &groqclient.AllocationAnalysis{
			Recommendations: []groqclient.AllocationRecommendation{
				{
					ShiftID: "shift_001",
					StaffAllocations: []groqclient.StaffAllocationProposal{
						{StaffID: "staff_002", Reasoning: "Proposed despite leave"},
					},
				},
			},
		},
	}

	result := AutoAllocate(ctx, store, advisory, nil, testLogger(), []string{"shift_001"}, nil)

	assert.False(t, result.Success)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, []string{"shift_001"}, result.UnallocatedShifts)
	assert.Contains(t, result.Recommendations, "Review 1 invalid allocations for constraint violations")

	// The rejected record is kept for audit
	allocations, err := store.GetAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, model.AllocationRejected, allocations[0].Status)
	assert.Equal(t, 0.5, allocations[0].ConfidenceScore)
}

func TestAutoAllocate_LowConfidenceRecommendation(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	confidence := 0.4
	advisory := &mockAdvisory{
		analysis: &groqclient.AllocationAnalysis{
			Recommendations: []groqclient.AllocationRecommendation{
				{
					ShiftID: "shift_001",
					StaffAllocations: []groqclient.StaffAllocationProposal{
						{StaffID: "staff_001", Confidence: &confidence},
					},
				},
			},
		},
	}

	result := AutoAllocate(ctx, store, advisory, nil, testLogger(), []string{"shift_001"}, nil)

	assert.True(t, result.Success)
	require.Len(t, result.Allocations, 1)
	assert.Equal(t, "AI recommendation", result.Allocations[0].Reasoning)
	assert.Contains(t, result.Recommendations, "Low confidence scores suggest reviewing allocation criteria")
}
