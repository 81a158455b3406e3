package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

func joined(allocID, staffID, shiftID, date string) JoinedAllocation {
	return JoinedAllocation{
		Allocation: model.AllocationRecord{ID: allocID, StaffID: staffID, ShiftID: shiftID},
		Shift:      &model.Shift{ID: shiftID, Date: date, StartTime: "07:00", EndTime: "15:00"},
	}
}

func TestFindConflictsNoOverlap(t *testing.T) {
	allocations := []JoinedAllocation{
		joined("alloc_1", "staff_001", "shift_1", "2024-07-15"),
		joined("alloc_2", "staff_001", "shift_2", "2024-07-16"),
		joined("alloc_3", "staff_002", "shift_1", "2024-07-15"),
	}

	conflicts := FindConflicts(allocations)

	assert.Empty(t, conflicts, "different dates and different staff should not conflict")
}

func TestFindConflictsDoubleBooking(t *testing.T) {
	allocations := []JoinedAllocation{
		joined("alloc_1", "staff_001", "shift_1", "2024-07-15"),
		joined("alloc_2", "staff_001", "shift_2", "2024-07-15"),
	}

	conflicts := FindConflicts(allocations)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "double_booking", conflicts[0].Type)
	assert.Equal(t, "staff_001", conflicts[0].StaffID)
	assert.Equal(t, []string{"alloc_1", "alloc_2"}, conflicts[0].ConflictingAllocations)
	assert.Equal(t, "Staff staff_001 double-booked on 2024-07-15", conflicts[0].Message)
}

func TestFindConflictsTripleBookingReportsEveryPair(t *testing.T) {
	allocations := []JoinedAllocation{
		joined("alloc_1", "staff_001", "shift_1", "2024-07-15"),
		joined("alloc_2", "staff_001", "shift_2", "2024-07-15"),
		joined("alloc_3", "staff_001", "shift_3", "2024-07-15"),
	}

	conflicts := FindConflicts(allocations)

	// Three allocations on one date pair up as (1,2), (1,3), (2,3)
	require.Len(t, conflicts, 3)
	assert.Equal(t, []string{"alloc_1", "alloc_2"}, conflicts[0].ConflictingAllocations)
	assert.Equal(t, []string{"alloc_1", "alloc_3"}, conflicts[1].ConflictingAllocations)
	assert.Equal(t, []string{"alloc_2", "alloc_3"}, conflicts[2].ConflictingAllocations)
}

func TestFindConflictsSkipsDanglingShifts(t *testing.T) {
	allocations := []JoinedAllocation{
		joined("alloc_1", "staff_001", "shift_1", "2024-07-15"),
		{Allocation: model.AllocationRecord{ID: "alloc_2", StaffID: "staff_001", ShiftID: "shift_gone"}},
	}

	conflicts := FindConflicts(allocations)

	assert.Empty(t, conflicts)
}

func TestFindConflictsEmptyInput(t *testing.T) {
	conflicts := FindConflicts(nil)

	assert.NotNil(t, conflicts, "callers serialize this list, so it should never be nil")
	assert.Empty(t, conflicts)
}
