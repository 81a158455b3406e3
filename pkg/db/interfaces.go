package db

import (
	"context"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// StaffStore defines the interface for staff database operations.
// Single-record getters return nil with no error when the id is unknown.
type StaffStore interface {
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
	GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error)
	InsertStaffMember(ctx context.Context, staff *model.StaffMember) error
	UpdateStaffMember(ctx context.Context, staff *model.StaffMember) error
	DeleteStaffMember(ctx context.Context, id string) error
}

// ShiftStore defines the interface for shift database operations
type ShiftStore interface {
	GetShifts(ctx context.Context) ([]model.Shift, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetShiftsByDate(ctx context.Context, date string) ([]model.Shift, error)
	InsertShift(ctx context.Context, shift *model.Shift) error
	UpdateShift(ctx context.Context, shift *model.Shift) error
	DeleteShift(ctx context.Context, id string) error
}

// AllocationStore defines the interface for allocation database operations
type AllocationStore interface {
	GetAllocations(ctx context.Context) ([]model.AllocationRecord, error)
	GetAllocation(ctx context.Context, id string) (*model.AllocationRecord, error)
	GetAllocationsByStaff(ctx context.Context, staffID string) ([]model.AllocationRecord, error)
	GetAllocationsByShift(ctx context.Context, shiftID string) ([]model.AllocationRecord, error)
	InsertAllocation(ctx context.Context, allocation *model.AllocationRecord) error
	UpdateAllocation(ctx context.Context, allocation *model.AllocationRecord) error
	DeleteAllocation(ctx context.Context, id string) error
}

// AvailabilityStore defines the interface for real-time availability operations.
// Timeline entries are append-only; GetTimeline returns newest first.
type AvailabilityStore interface {
	GetAvailability(ctx context.Context, staffID string) (*model.StaffAvailability, error)
	GetAllAvailability(ctx context.Context) ([]model.StaffAvailability, error)
	UpsertAvailability(ctx context.Context, availability *model.StaffAvailability) error
	AppendTimeline(ctx context.Context, entry *model.AvailabilityTimeline) error
	GetTimeline(ctx context.Context, staffID string, limit int) ([]model.AvailabilityTimeline, error)
}

// Database defines the interface for all database operations.
// Both the in-memory memstore.Store and postgres.DB implement this interface.
type Database interface {
	StaffStore
	ShiftStore
	AllocationStore
	AvailabilityStore
}
