package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
)

func testStaff(id string) *model.StaffMember {
	return &model.StaffMember{
		ID:                 id,
		Name:               "Dr. Test " + id,
		Role:               model.RoleDoctor,
		Department:         model.DepartmentEmergency,
		SkillLevel:         8,
		MaxHoursPerWeek:    40,
		PreferredShifts:    []string{"morning"},
		UnavailableDates:   []string{"2024-07-20"},
		CertificationLevel: "ACLS",
		ExperienceYears:    10,
		HourlyRate:         85.0,
	}
}

func testShift(id, date string) *model.Shift {
	return &model.Shift{
		ID:                id,
		Date:              date,
		ShiftType:         model.ShiftMorning,
		Department:        "emergency",
		StartTime:         "07:00",
		EndTime:           "15:00",
		RequiredStaff:     map[string]int{"doctor": 1},
		MinimumSkillLevel: 6,
		Priority:          model.PriorityHigh,
		MaxCapacity:       3,
		Status:            model.ShiftScheduled,
	}
}

func TestInsertStaffMemberInitializesAvailability(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))

	availability, err := store.GetAvailability(ctx, "staff_001")
	require.NoError(t, err)
	require.NotNil(t, availability, "expected availability record created on insert")

	assert.Equal(t, "avail_staff_001", availability.ID)
	assert.Equal(t, model.AvailabilityAvailable, availability.Status)
	assert.Equal(t, "emergency", availability.Location)
	assert.Equal(t, "Initialized as available", availability.Notes)
	assert.NotEmpty(t, availability.AvailableFrom)
	assert.NotEmpty(t, availability.LastUpdated)
}

func TestGetStaffMemberUnknownIDReturnsNil(t *testing.T) {
	store := New()

	member, err := store.GetStaffMember(context.Background(), "staff_999")

	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestUpdateStaffMemberUnknownIDReturnsNotFound(t *testing.T) {
	store := New()

	err := store.UpdateStaffMember(context.Background(), testStaff("staff_404"))

	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestInsertDuplicateStaffMemberFails(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))
	err := store.InsertStaffMember(ctx, testStaff("staff_001"))

	assert.ErrorContains(t, err, "staff_001")
}

func TestStaffListingKeepsInsertionOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, id := range []string{"staff_003", "staff_001", "staff_002"} {
		require.NoError(t, store.InsertStaffMember(ctx, testStaff(id)))
	}

	members, err := store.GetStaffMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, "staff_003", members[0].ID)
	assert.Equal(t, "staff_001", members[1].ID)
	assert.Equal(t, "staff_002", members[2].ID)
}

func TestDeleteStaffMemberRemovesFromListing(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))
	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_002")))

	require.NoError(t, store.DeleteStaffMember(ctx, "staff_001"))

	members, err := store.GetStaffMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "staff_002", members[0].ID)

	assert.ErrorIs(t, store.DeleteStaffMember(ctx, "staff_001"), db.ErrNotFound)
}

func TestDeleteStaffMemberCascadesDependents(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))
	require.NoError(t, store.InsertShift(ctx, testShift("shift_001", "2024-07-21")))
	require.NoError(t, store.InsertAllocation(ctx, &model.AllocationRecord{
		ID:      "allocation_001",
		StaffID: "staff_001",
		ShiftID: "shift_001",
		Status:  model.AllocationConfirmed,
	}))
	require.NoError(t, store.AppendTimeline(ctx, &model.AvailabilityTimeline{
		ID:        "timeline_001",
		StaffID:   "staff_001",
		Status:    model.AvailabilityWorking,
		ChangedAt: "2024-07-21T08:00:00",
	}))

	require.NoError(t, store.DeleteStaffMember(ctx, "staff_001"))

	availability, err := store.GetAvailability(ctx, "staff_001")
	require.NoError(t, err)
	assert.Nil(t, availability)

	all, err := store.GetAllAvailability(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	timeline, err := store.GetTimeline(ctx, "staff_001", 0)
	require.NoError(t, err)
	assert.Empty(t, timeline)

	allocations, err := store.GetAllocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, allocations)

	// Reinserting the same id starts a fresh availability record
	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))
	availability, err = store.GetAvailability(ctx, "staff_001")
	require.NoError(t, err)
	require.NotNil(t, availability)
	assert.Equal(t, model.AvailabilityAvailable, availability.Status)
}

func TestDeleteShiftCascadesAllocations(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))
	require.NoError(t, store.InsertShift(ctx, testShift("shift_001", "2024-07-21")))
	require.NoError(t, store.InsertShift(ctx, testShift("shift_002", "2024-07-22")))
	require.NoError(t, store.InsertAllocation(ctx, &model.AllocationRecord{
		ID:      "allocation_001",
		StaffID: "staff_001",
		ShiftID: "shift_001",
	}))
	require.NoError(t, store.InsertAllocation(ctx, &model.AllocationRecord{
		ID:      "allocation_002",
		StaffID: "staff_001",
		ShiftID: "shift_002",
	}))

	require.NoError(t, store.DeleteShift(ctx, "shift_001"))

	allocations, err := store.GetAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, "allocation_002", allocations[0].ID)
}

func TestGetShiftsByDateFilters(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertShift(ctx, testShift("shift_001", "2024-07-15")))
	require.NoError(t, store.InsertShift(ctx, testShift("shift_002", "2024-07-16")))
	require.NoError(t, store.InsertShift(ctx, testShift("shift_003", "2024-07-15")))

	shifts, err := store.GetShiftsByDate(ctx, "2024-07-15")
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	assert.Equal(t, "shift_001", shifts[0].ID)
	assert.Equal(t, "shift_003", shifts[1].ID)
}

func TestAllocationQueriesFilterByStaffAndShift(t *testing.T) {
	store := New()
	ctx := context.Background()

	allocations := []model.AllocationRecord{
		{ID: "alloc_001", StaffID: "staff_001", ShiftID: "shift_001", Status: model.AllocationConfirmed},
		{ID: "alloc_002", StaffID: "staff_002", ShiftID: "shift_001", Status: model.AllocationPending},
		{ID: "alloc_003", StaffID: "staff_001", ShiftID: "shift_002", Status: model.AllocationPending},
	}
	for i := range allocations {
		require.NoError(t, store.InsertAllocation(ctx, &allocations[i]))
	}

	byStaff, err := store.GetAllocationsByStaff(ctx, "staff_001")
	require.NoError(t, err)
	require.Len(t, byStaff, 2)
	assert.Equal(t, "alloc_001", byStaff[0].ID)
	assert.Equal(t, "alloc_003", byStaff[1].ID)

	byShift, err := store.GetAllocationsByShift(ctx, "shift_001")
	require.NoError(t, err)
	require.Len(t, byShift, 2)
	assert.Equal(t, "alloc_001", byShift[0].ID)
	assert.Equal(t, "alloc_002", byShift[1].ID)

	missing, err := store.GetAllocation(ctx, "alloc_999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertAvailabilityReplacesWholeRecord(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))

	require.NoError(t, store.UpsertAvailability(ctx, &model.StaffAvailability{
		ID:             "avail_staff_001",
		StaffID:        "staff_001",
		Status:         model.AvailabilityWorking,
		CurrentShiftID: "shift_001",
		LastUpdated:    "2024-07-15T08:00:00",
	}))

	records, err := store.GetAllAvailability(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1, "upsert must replace, not add")

	assert.Equal(t, model.AvailabilityWorking, records[0].Status)
	assert.Equal(t, "shift_001", records[0].CurrentShiftID)
	assert.Empty(t, records[0].Notes, "replacement record carries no stale fields")
}

func TestGetTimelineNewestFirstWithCap(t *testing.T) {
	store := New()
	ctx := context.Background()

	entries := []model.AvailabilityTimeline{
		{ID: "timeline_1", StaffID: "staff_001", Status: model.AvailabilityWorking, ChangedAt: "2024-07-15T08:00:00"},
		{ID: "timeline_2", StaffID: "staff_001", Status: model.AvailabilityAvailable, ChangedAt: "2024-07-15T16:00:00"},
		{ID: "timeline_3", StaffID: "staff_001", Status: model.AvailabilityOnBreak, ChangedAt: "2024-07-15T16:00:00"},
		{ID: "timeline_4", StaffID: "staff_002", Status: model.AvailabilityWorking, ChangedAt: "2024-07-15T09:00:00"},
	}
	for i := range entries {
		require.NoError(t, store.AppendTimeline(ctx, &entries[i]))
	}

	timeline, err := store.GetTimeline(ctx, "staff_001", 2)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	// Entries sharing 16:00:00 keep append order ahead of the 08:00 entry.
	assert.Equal(t, "timeline_2", timeline[0].ID)
	assert.Equal(t, "timeline_3", timeline[1].ID)

	full, err := store.GetTimeline(ctx, "staff_001", 0)
	require.NoError(t, err)
	assert.Len(t, full, 3)

	empty, err := store.GetTimeline(ctx, "staff_999", 50)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertStaffMember(ctx, testStaff("staff_001")))
	require.NoError(t, store.InsertShift(ctx, testShift("shift_001", "2024-07-15")))

	member, err := store.GetStaffMember(ctx, "staff_001")
	require.NoError(t, err)
	member.PreferredShifts[0] = "night"

	reread, err := store.GetStaffMember(ctx, "staff_001")
	require.NoError(t, err)
	assert.Equal(t, "morning", reread.PreferredShifts[0], "caller mutation must not leak into the store")

	shift, err := store.GetShift(ctx, "shift_001")
	require.NoError(t, err)
	shift.RequiredStaff["doctor"] = 99

	rereadShift, err := store.GetShift(ctx, "shift_001")
	require.NoError(t, err)
	assert.Equal(t, 1, rereadShift.RequiredStaff["doctor"])
}
