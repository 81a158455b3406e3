package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoursWorkedFullShift(t *testing.T) {
	allocation := AllocationRecord{
		CheckedInAt:  "2024-07-15T08:00:00",
		CheckedOutAt: "2024-07-15T16:00:00",
	}

	assert.Equal(t, 8.0, allocation.HoursWorked(), "an 8 hour shift should report exactly 8 hours")
}

func TestHoursWorkedRoundsToTwoDecimals(t *testing.T) {
	allocation := AllocationRecord{
		CheckedInAt:  "2024-07-15T08:00:00",
		CheckedOutAt: "2024-07-15T15:37:30",
	}

	assert.Equal(t, 7.63, allocation.HoursWorked(), "7h37m30s should round to 7.63")
}

func TestHoursWorkedZoneAwareTimestamps(t *testing.T) {
	allocation := AllocationRecord{
		CheckedInAt:  "2024-07-15T08:00:00Z",
		CheckedOutAt: "2024-07-15T18:30:00Z",
	}

	assert.Equal(t, 10.5, allocation.HoursWorked())
}

func TestHoursWorkedMissingCheckOut(t *testing.T) {
	allocation := AllocationRecord{
		CheckedInAt: "2024-07-15T08:00:00",
	}

	assert.Equal(t, 0.0, allocation.HoursWorked(), "open allocations should report zero hours")
}

func TestHoursWorkedUnparsableTimestamp(t *testing.T) {
	allocation := AllocationRecord{
		CheckedInAt:  "not a timestamp",
		CheckedOutAt: "2024-07-15T16:00:00",
	}

	assert.Equal(t, 0.0, allocation.HoursWorked(), "garbage timestamps should degrade to zero hours")
}

func TestNewIDFormat(t *testing.T) {
	id := NewID("staff")

	parts := strings.SplitN(id, "_", 2)
	assert.Len(t, parts, 2)
	assert.Equal(t, "staff", parts[0])
	assert.Len(t, parts[1], 8, "suffix should be 8 hex characters")

	other := NewID("staff")
	assert.NotEqual(t, id, other, "ids should be unique")
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleDoctor.IsValid())
	assert.True(t, RoleSupport.IsValid())
	assert.False(t, Role("surgeon").IsValid())
}

func TestShiftTypeIsValid(t *testing.T) {
	assert.True(t, ShiftOnCall.IsValid())
	assert.False(t, ShiftType("graveyard").IsValid())
}
