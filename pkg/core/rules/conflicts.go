package rules

import "fmt"

// ConflictRecord describes one cross-allocation conflict found in a batch
type ConflictRecord struct {
	Type                   string   `json:"type"`
	StaffID                string   `json:"staff_id"`
	ConflictingAllocations []string `json:"conflicting_allocations"`
	Message                string   `json:"message"`
}

// FindConflicts detects double-bookings across a batch of allocations.
//
// Allocations are grouped by staff member; every pair of a staff member's
// allocations whose shifts fall on the same date produces one conflict.
// Pairs are reported independently, so a staff member triple-booked on one
// date yields three conflicts, not one. Entries with a dangling shift
// reference are skipped.
func FindConflicts(allocations []JoinedAllocation) []ConflictRecord {
	conflicts := []ConflictRecord{}

	staffOrder := []string{}
	staffShifts := make(map[string][]JoinedAllocation)
	for _, entry := range allocations {
		staffID := entry.Allocation.StaffID
		if _, seen := staffShifts[staffID]; !seen {
			staffOrder = append(staffOrder, staffID)
			staffShifts[staffID] = []JoinedAllocation{}
		}
		if entry.Shift == nil {
			continue
		}
		staffShifts[staffID] = append(staffShifts[staffID], entry)
	}

	for _, staffID := range staffOrder {
		entries := staffShifts[staffID]
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if entries[i].Shift.Date != entries[j].Shift.Date {
					continue
				}
				conflicts = append(conflicts, ConflictRecord{
					Type:    "double_booking",
					StaffID: staffID,
					ConflictingAllocations: []string{
						entries[i].Allocation.ID,
						entries[j].Allocation.ID,
					},
					Message: fmt.Sprintf("Staff %s double-booked on %s", staffID, entries[i].Shift.Date),
				})
			}
		}
	}

	return conflicts
}
