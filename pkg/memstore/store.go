// Package memstore implements db.Database as a mutex-guarded in-memory
// store. It backs the development server, the demo-reset endpoint, and
// package tests; data lives for the process lifetime only.
//
// Reads return copies and writes store copies, so callers can mutate what
// they get back without racing the store. Listing order is insertion order,
// which keeps downstream scoring and reporting deterministic.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
)

// Store holds every entity collection behind one lock.
type Store struct {
	mu sync.RWMutex

	staff      map[string]model.StaffMember
	staffOrder []string

	shifts     map[string]model.Shift
	shiftOrder []string

	allocations map[string]model.AllocationRecord
	allocOrder  []string

	// availability is keyed by staff id; each staff member has at most
	// one live record. timeline holds entries oldest first.
	availability map[string]model.StaffAvailability
	availOrder   []string
	timeline     map[string][]model.AvailabilityTimeline
}

// New creates an empty store. Seed data is loaded separately so tests and
// the demo-reset endpoint can start from a clean slate.
func New() *Store {
	return &Store{
		staff:        make(map[string]model.StaffMember),
		shifts:       make(map[string]model.Shift),
		allocations:  make(map[string]model.AllocationRecord),
		availability: make(map[string]model.StaffAvailability),
		timeline:     make(map[string][]model.AvailabilityTimeline),
	}
}

var _ db.Database = (*Store)(nil)

// GetStaffMembers returns every staff member in insertion order.
func (s *Store) GetStaffMembers(_ context.Context) ([]model.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]model.StaffMember, 0, len(s.staffOrder))
	for _, id := range s.staffOrder {
		members = append(members, cloneStaff(s.staff[id]))
	}
	return members, nil
}

// GetStaffMember returns nil with no error when the id is unknown.
func (s *Store) GetStaffMember(_ context.Context, id string) (*model.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.staff[id]
	if !ok {
		return nil, nil
	}
	copied := cloneStaff(member)
	return &copied, nil
}

// InsertStaffMember stores a new staff member and initializes their
// availability record as available in their home department.
func (s *Store) InsertStaffMember(_ context.Context, staff *model.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.staff[staff.ID]; exists {
		return fmt.Errorf("staff member %s already exists", staff.ID)
	}

	s.staff[staff.ID] = cloneStaff(*staff)
	s.staffOrder = append(s.staffOrder, staff.ID)

	if _, exists := s.availability[staff.ID]; !exists {
		now := model.NowTimestamp()
		s.availability[staff.ID] = model.StaffAvailability{
			ID:            "avail_" + staff.ID,
			StaffID:       staff.ID,
			Status:        model.AvailabilityAvailable,
			AvailableFrom: now,
			LastUpdated:   now,
			Location:      string(staff.Department),
			Notes:         "Initialized as available",
		}
		s.availOrder = append(s.availOrder, staff.ID)
	}
	return nil
}

func (s *Store) UpdateStaffMember(_ context.Context, staff *model.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.staff[staff.ID]; !exists {
		return fmt.Errorf("staff member %s: %w", staff.ID, db.ErrNotFound)
	}
	s.staff[staff.ID] = cloneStaff(*staff)
	return nil
}

// DeleteStaffMember removes the staff member and everything keyed to them:
// allocations, the availability record and the timeline history, matching
// the postgres foreign-key cascades.
func (s *Store) DeleteStaffMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.staff[id]; !exists {
		return fmt.Errorf("staff member %s: %w", id, db.ErrNotFound)
	}
	delete(s.staff, id)
	s.staffOrder = slices.DeleteFunc(s.staffOrder, func(existing string) bool {
		return existing == id
	})

	delete(s.availability, id)
	s.availOrder = slices.DeleteFunc(s.availOrder, func(existing string) bool {
		return existing == id
	})
	delete(s.timeline, id)
	s.deleteAllocationsWhere(func(allocation model.AllocationRecord) bool {
		return allocation.StaffID == id
	})
	return nil
}

// deleteAllocationsWhere removes every matching allocation. Callers hold
// the write lock.
func (s *Store) deleteAllocationsWhere(match func(model.AllocationRecord) bool) {
	for id, allocation := range s.allocations {
		if match(allocation) {
			delete(s.allocations, id)
		}
	}
	s.allocOrder = slices.DeleteFunc(s.allocOrder, func(id string) bool {
		_, exists := s.allocations[id]
		return !exists
	})
}

// GetShifts returns every shift in insertion order.
func (s *Store) GetShifts(_ context.Context) ([]model.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts := make([]model.Shift, 0, len(s.shiftOrder))
	for _, id := range s.shiftOrder {
		shifts = append(shifts, cloneShift(s.shifts[id]))
	}
	return shifts, nil
}

// GetShift returns nil with no error when the id is unknown.
func (s *Store) GetShift(_ context.Context, id string) (*model.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shifts[id]
	if !ok {
		return nil, nil
	}
	copied := cloneShift(shift)
	return &copied, nil
}

func (s *Store) GetShiftsByDate(_ context.Context, date string) ([]model.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts := []model.Shift{}
	for _, id := range s.shiftOrder {
		if shift := s.shifts[id]; shift.Date == date {
			shifts = append(shifts, cloneShift(shift))
		}
	}
	return shifts, nil
}

func (s *Store) InsertShift(_ context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shifts[shift.ID]; exists {
		return fmt.Errorf("shift %s already exists", shift.ID)
	}
	s.shifts[shift.ID] = cloneShift(*shift)
	s.shiftOrder = append(s.shiftOrder, shift.ID)
	return nil
}

func (s *Store) UpdateShift(_ context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shifts[shift.ID]; !exists {
		return fmt.Errorf("shift %s: %w", shift.ID, db.ErrNotFound)
	}
	s.shifts[shift.ID] = cloneShift(*shift)
	return nil
}

// DeleteShift removes the shift and its allocations, matching the
// postgres foreign-key cascade.
func (s *Store) DeleteShift(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shifts[id]; !exists {
		return fmt.Errorf("shift %s: %w", id, db.ErrNotFound)
	}
	delete(s.shifts, id)
	s.shiftOrder = slices.DeleteFunc(s.shiftOrder, func(existing string) bool {
		return existing == id
	})

	s.deleteAllocationsWhere(func(allocation model.AllocationRecord) bool {
		return allocation.ShiftID == id
	})
	return nil
}

// GetAllocations returns every allocation in insertion order.
func (s *Store) GetAllocations(_ context.Context) ([]model.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allocations := make([]model.AllocationRecord, 0, len(s.allocOrder))
	for _, id := range s.allocOrder {
		allocations = append(allocations, cloneAllocation(s.allocations[id]))
	}
	return allocations, nil
}

// GetAllocation returns nil with no error when the id is unknown.
func (s *Store) GetAllocation(_ context.Context, id string) (*model.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allocation, ok := s.allocations[id]
	if !ok {
		return nil, nil
	}
	copied := cloneAllocation(allocation)
	return &copied, nil
}

func (s *Store) GetAllocationsByStaff(_ context.Context, staffID string) ([]model.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allocations := []model.AllocationRecord{}
	for _, id := range s.allocOrder {
		if allocation := s.allocations[id]; allocation.StaffID == staffID {
			allocations = append(allocations, cloneAllocation(allocation))
		}
	}
	return allocations, nil
}

func (s *Store) GetAllocationsByShift(_ context.Context, shiftID string) ([]model.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allocations := []model.AllocationRecord{}
	for _, id := range s.allocOrder {
		if allocation := s.allocations[id]; allocation.ShiftID == shiftID {
			allocations = append(allocations, cloneAllocation(allocation))
		}
	}
	return allocations, nil
}

func (s *Store) InsertAllocation(_ context.Context, allocation *model.AllocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.allocations[allocation.ID]; exists {
		return fmt.Errorf("allocation %s already exists", allocation.ID)
	}
	s.allocations[allocation.ID] = cloneAllocation(*allocation)
	s.allocOrder = append(s.allocOrder, allocation.ID)
	return nil
}

func (s *Store) UpdateAllocation(_ context.Context, allocation *model.AllocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.allocations[allocation.ID]; !exists {
		return fmt.Errorf("allocation %s: %w", allocation.ID, db.ErrNotFound)
	}
	s.allocations[allocation.ID] = cloneAllocation(*allocation)
	return nil
}

func (s *Store) DeleteAllocation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.allocations[id]; !exists {
		return fmt.Errorf("allocation %s: %w", id, db.ErrNotFound)
	}
	delete(s.allocations, id)
	s.allocOrder = slices.DeleteFunc(s.allocOrder, func(existing string) bool {
		return existing == id
	})
	return nil
}

// GetAvailability returns nil with no error when the staff id has no record.
func (s *Store) GetAvailability(_ context.Context, staffID string) (*model.StaffAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	availability, ok := s.availability[staffID]
	if !ok {
		return nil, nil
	}
	copied := availability
	return &copied, nil
}

func (s *Store) GetAllAvailability(_ context.Context) ([]model.StaffAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.StaffAvailability, 0, len(s.availOrder))
	for _, staffID := range s.availOrder {
		records = append(records, s.availability[staffID])
	}
	return records, nil
}

// UpsertAvailability replaces the whole availability record for the staff
// member, creating it if absent. Callers maintain LastUpdated.
func (s *Store) UpsertAvailability(_ context.Context, availability *model.StaffAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.availability[availability.StaffID]; !exists {
		s.availOrder = append(s.availOrder, availability.StaffID)
	}
	s.availability[availability.StaffID] = *availability
	return nil
}

func (s *Store) AppendTimeline(_ context.Context, entry *model.AvailabilityTimeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline[entry.StaffID] = append(s.timeline[entry.StaffID], *entry)
	return nil
}

// GetTimeline returns the staff member's history newest first, capped at
// limit. A non-positive limit returns the full history. Entries sharing a
// timestamp keep their append order.
func (s *Store) GetTimeline(_ context.Context, staffID string, limit int) ([]model.AvailabilityTimeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := slices.Clone(s.timeline[staffID])
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt > entries[j].ChangedAt
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []model.AvailabilityTimeline{}
	}
	return entries, nil
}

func cloneStaff(staff model.StaffMember) model.StaffMember {
	staff.PreferredShifts = slices.Clone(staff.PreferredShifts)
	staff.UnavailableDates = slices.Clone(staff.UnavailableDates)
	return staff
}

func cloneShift(shift model.Shift) model.Shift {
	shift.RequiredStaff = maps.Clone(shift.RequiredStaff)
	shift.SpecialRequirements = slices.Clone(shift.SpecialRequirements)
	return shift
}

func cloneAllocation(allocation model.AllocationRecord) model.AllocationRecord {
	allocation.ConstraintsMet = slices.Clone(allocation.ConstraintsMet)
	allocation.PotentialIssues = slices.Clone(allocation.PotentialIssues)
	return allocation
}
