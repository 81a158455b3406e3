package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// standardShiftHours is the shift length overtime is measured against.
const standardShiftHours = 8.0

// defaultTimelineLimit caps a timeline query when the caller does not
// supply a limit.
const defaultTimelineLimit = 50

// LifecycleStore defines the database operations the shift and staff
// lifecycle tracker needs.
type LifecycleStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetShifts(ctx context.Context) ([]model.Shift, error)
	UpdateShift(ctx context.Context, shift *model.Shift) error
	GetAllocationsByShift(ctx context.Context, shiftID string) ([]model.AllocationRecord, error)
	GetAllocationsByStaff(ctx context.Context, staffID string) ([]model.AllocationRecord, error)
	UpdateAllocation(ctx context.Context, allocation *model.AllocationRecord) error
	GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error)
	GetAvailability(ctx context.Context, staffID string) (*model.StaffAvailability, error)
	GetAllAvailability(ctx context.Context) ([]model.StaffAvailability, error)
	UpsertAvailability(ctx context.Context, availability *model.StaffAvailability) error
	AppendTimeline(ctx context.Context, entry *model.AvailabilityTimeline) error
	GetTimeline(ctx context.Context, staffID string, limit int) ([]model.AvailabilityTimeline, error)
}

// AvailabilityUpdate describes one change to a staff member's real-time
// availability. CurrentShiftID distinguishes leave-unchanged (nil) from
// clear (pointer to empty string).
type AvailabilityUpdate struct {
	Status         model.AvailabilityStatus
	CurrentShiftID *string
	AvailableFrom  string
	Location       string
	Notes          string
	ChangedBy      string
}

// UpdateStaffAvailability applies one availability change and appends the
// matching immutable timeline entry. Returns nil when no availability
// record exists for the staff member.
func UpdateStaffAvailability(
	ctx context.Context,
	store LifecycleStore,
	logger *zap.Logger,
	staffID string,
	update AvailabilityUpdate,
) (*model.StaffAvailability, error) {
	availability, err := store.GetAvailability(ctx, staffID)
	if err != nil {
		return nil, wrapStoreErr("fetch availability", err)
	}
	if availability == nil {
		return nil, nil
	}

	changedBy := update.ChangedBy
	if changedBy == "" {
		changedBy = "system"
	}

	shiftID := ""
	if update.CurrentShiftID != nil {
		shiftID = *update.CurrentShiftID
	}

	// Timeline first, so the log always carries the prior status
	entry := &model.AvailabilityTimeline{
		ID:        model.NewID("timeline"),
		StaffID:   staffID,
		Status:    update.Status,
		ChangedAt: model.NowTimestamp(),
		ChangedBy: changedBy,
		Reason:    fmt.Sprintf("Status changed from %s to %s", availability.Status, update.Status),
		ShiftID:   shiftID,
	}
	if err := store.AppendTimeline(ctx, entry); err != nil {
		return nil, wrapStoreErr("append timeline entry", err)
	}

	availability.Status = update.Status
	availability.LastUpdated = model.NowTimestamp()
	if update.CurrentShiftID != nil {
		availability.CurrentShiftID = *update.CurrentShiftID
	}
	if update.AvailableFrom != "" {
		availability.AvailableFrom = update.AvailableFrom
	}
	if update.Location != "" {
		availability.Location = update.Location
	}
	if update.Notes != "" {
		availability.Notes = update.Notes
	}

	if err := store.UpsertAvailability(ctx, availability); err != nil {
		return nil, wrapStoreErr("update availability", err)
	}

	logger.Debug("Updated staff availability",
		zap.String("staff_id", staffID),
		zap.String("status", string(update.Status)),
		zap.String("changed_by", changedBy))

	return availability, nil
}

// ShiftStatusUpdate carries the optional fields of one shift status change.
type ShiftStatusUpdate struct {
	ActualStartTime string
	ActualEndTime   string
	CompletionNotes string
}

// UpdateShiftStatus advances a shift's status and applies the side effects
// on staff availability: completion releases every confirmed staff member
// back to available, starting marks them working. is_extended is
// recomputed on every end-time write. Returns nil when the shift does not
// exist. Status never moves backward; a repeated update to the same status
// is a no-op apart from field writes, which keeps the auto-completion
// sweep idempotent.
func UpdateShiftStatus(
	ctx context.Context,
	store LifecycleStore,
	logger *zap.Logger,
	shiftID string,
	status model.ShiftStatus,
	update ShiftStatusUpdate,
) (*model.Shift, error) {
	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}
	if shift == nil {
		return nil, nil
	}

	if shiftStatusRank(status) < shiftStatusRank(shift.Status) {
		logger.Warn("Refusing backward shift status transition",
			zap.String("shift_id", shiftID),
			zap.String("from", string(shift.Status)),
			zap.String("to", string(status)))
		return shift, nil
	}

	alreadyThere := shift.Status == status
	shift.Status = status

	if update.ActualStartTime != "" {
		shift.ActualStartTime = update.ActualStartTime
	}
	if update.ActualEndTime != "" {
		shift.ActualEndTime = update.ActualEndTime
		// Raw string compare of a full timestamp against the HH:MM
		// scheduled end. Wrong as time arithmetic, but it is the wire
		// behavior existing consumers depend on.
		shift.IsExtended = shift.ActualEndTime > shift.EndTime
	}
	if update.CompletionNotes != "" {
		shift.CompletionNotes = update.CompletionNotes
	}

	if err := store.UpdateShift(ctx, shift); err != nil {
		return nil, wrapStoreErr("update shift", err)
	}

	if !alreadyThere {
		switch status {
		case model.ShiftCompleted:
			if err := releaseStaffFromShift(ctx, store, logger, shiftID); err != nil {
				return nil, err
			}
		case model.ShiftInProgress:
			if err := markStaffWorking(ctx, store, logger, shiftID); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Shift status updated",
		zap.String("shift_id", shiftID),
		zap.String("status", string(status)),
		zap.Bool("is_extended", shift.IsExtended))

	return shift, nil
}

func shiftStatusRank(status model.ShiftStatus) int {
	switch status {
	case model.ShiftScheduled:
		return 0
	case model.ShiftInProgress:
		return 1
	case model.ShiftCompleted:
		return 2
	case model.ShiftArchived:
		return 3
	default:
		return 0
	}
}

// markStaffWorking marks every confirmed staff member on a shift as working.
func markStaffWorking(ctx context.Context, store LifecycleStore, logger *zap.Logger, shiftID string) error {
	allocations, err := store.GetAllocationsByShift(ctx, shiftID)
	if err != nil {
		return wrapStoreErr("fetch shift allocations", err)
	}

	for _, allocation := range allocations {
		if allocation.Status != model.AllocationConfirmed {
			continue
		}
		shiftRef := shiftID
		_, err := UpdateStaffAvailability(ctx, store, logger, allocation.StaffID, AvailabilityUpdate{
			Status:         model.AvailabilityWorking,
			CurrentShiftID: &shiftRef,
			Notes:          fmt.Sprintf("Working shift %s", shiftID),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// releaseStaffFromShift returns every confirmed staff member on a shift to
// available.
func releaseStaffFromShift(ctx context.Context, store LifecycleStore, logger *zap.Logger, shiftID string) error {
	allocations, err := store.GetAllocationsByShift(ctx, shiftID)
	if err != nil {
		return wrapStoreErr("fetch shift allocations", err)
	}

	now := model.NowTimestamp()
	for _, allocation := range allocations {
		if allocation.Status != model.AllocationConfirmed {
			continue
		}
		cleared := ""
		_, err := UpdateStaffAvailability(ctx, store, logger, allocation.StaffID, AvailabilityUpdate{
			Status:         model.AvailabilityAvailable,
			CurrentShiftID: &cleared,
			AvailableFrom:  now,
			Notes:          fmt.Sprintf("Released from completed shift %s", shiftID),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckIn records a staff member's arrival for a shift: the allocation is
// stamped present, the staff member goes to working, and the first
// check-in on a scheduled shift starts it. Returns nil when no allocation
// binds the staff member to the shift.
func CheckIn(ctx context.Context, store LifecycleStore, logger *zap.Logger, staffID, shiftID string) (*model.AllocationRecord, error) {
	allocation, err := findAllocation(ctx, store, staffID, shiftID)
	if err != nil {
		return nil, err
	}
	if allocation == nil {
		logger.Debug("No allocation to check in",
			zap.String("staff_id", staffID), zap.String("shift_id", shiftID))
		return nil, nil
	}

	allocation.CheckedInAt = model.NowTimestamp()
	allocation.IsPresent = true
	if err := store.UpdateAllocation(ctx, allocation); err != nil {
		return nil, wrapStoreErr("update allocation", err)
	}

	shiftRef := shiftID
	_, err = UpdateStaffAvailability(ctx, store, logger, staffID, AvailabilityUpdate{
		Status:         model.AvailabilityWorking,
		CurrentShiftID: &shiftRef,
		Notes:          fmt.Sprintf("Checked in for shift %s", shiftID),
		ChangedBy:      staffID,
	})
	if err != nil {
		return nil, err
	}

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}
	if shift != nil && shift.Status == model.ShiftScheduled {
		_, err = UpdateShiftStatus(ctx, store, logger, shiftID, model.ShiftInProgress, ShiftStatusUpdate{
			ActualStartTime: allocation.CheckedInAt,
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Staff checked in",
		zap.String("staff_id", staffID),
		zap.String("shift_id", shiftID))

	return allocation, nil
}

// CheckOut records a staff member's departure from a shift: the allocation
// is stamped absent, overtime beyond the standard eight hours is recorded,
// and the staff member returns to available. Returns nil when no
// allocation binds the staff member to the shift.
func CheckOut(ctx context.Context, store LifecycleStore, logger *zap.Logger, staffID, shiftID string) (*model.AllocationRecord, error) {
	allocation, err := findAllocation(ctx, store, staffID, shiftID)
	if err != nil {
		return nil, err
	}
	if allocation == nil {
		logger.Debug("No allocation to check out",
			zap.String("staff_id", staffID), zap.String("shift_id", shiftID))
		return nil, nil
	}

	allocation.CheckedOutAt = model.NowTimestamp()
	allocation.IsPresent = false

	if worked := allocation.HoursWorked(); worked > standardShiftHours {
		allocation.OvertimeHours = worked - standardShiftHours
	}

	if err := store.UpdateAllocation(ctx, allocation); err != nil {
		return nil, wrapStoreErr("update allocation", err)
	}

	cleared := ""
	_, err = UpdateStaffAvailability(ctx, store, logger, staffID, AvailabilityUpdate{
		Status:         model.AvailabilityAvailable,
		CurrentShiftID: &cleared,
		AvailableFrom:  allocation.CheckedOutAt,
		Notes:          fmt.Sprintf("Checked out from shift %s", shiftID),
		ChangedBy:      staffID,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Staff checked out",
		zap.String("staff_id", staffID),
		zap.String("shift_id", shiftID),
		zap.Float64("overtime_hours", allocation.OvertimeHours))

	return allocation, nil
}

// findAllocation locates the allocation binding a staff member to a shift.
func findAllocation(ctx context.Context, store LifecycleStore, staffID, shiftID string) (*model.AllocationRecord, error) {
	allocations, err := store.GetAllocationsByStaff(ctx, staffID)
	if err != nil {
		return nil, wrapStoreErr("fetch staff allocations", err)
	}
	for i := range allocations {
		if allocations[i].ShiftID == shiftID {
			return &allocations[i], nil
		}
	}
	return nil, nil
}

// CompleteShift marks one shift completed with the given notes.
func CompleteShift(ctx context.Context, store LifecycleStore, logger *zap.Logger, shiftID, notes string) (*model.Shift, error) {
	if notes == "" {
		notes = "Completed"
	}
	return UpdateShiftStatus(ctx, store, logger, shiftID, model.ShiftCompleted, ShiftStatusUpdate{
		ActualEndTime:   model.NowTimestamp(),
		CompletionNotes: notes,
	})
}

// CompleteShifts bulk-completes shifts. A failure on one shift is recorded
// against that shift only and never aborts the rest of the batch.
func CompleteShifts(ctx context.Context, store LifecycleStore, logger *zap.Logger, shiftIDs []string) map[string]bool {
	results := make(map[string]bool, len(shiftIDs))
	for _, shiftID := range shiftIDs {
		shift, err := UpdateShiftStatus(ctx, store, logger, shiftID, model.ShiftCompleted, ShiftStatusUpdate{
			ActualEndTime:   model.NowTimestamp(),
			CompletionNotes: "Bulk completion",
		})
		if err != nil {
			logger.Warn("Bulk completion failed for shift",
				zap.String("shift_id", shiftID), zap.Error(err))
			results[shiftID] = false
			continue
		}
		results[shiftID] = shift != nil
	}
	return results
}

// SweepShifts auto-completes every in-progress shift whose scheduled end
// has passed. The sweep is pull-triggered and idempotent: completed shifts
// are skipped, so running it twice changes nothing. Shifts with
// unparsable times are skipped rather than failing the sweep.
func SweepShifts(ctx context.Context, store LifecycleStore, logger *zap.Logger, now time.Time) ([]string, error) {
	shifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch shifts", err)
	}

	completed := []string{}
	for _, shift := range shifts {
		if shift.Status != model.ShiftInProgress {
			continue
		}

		shiftEnd, err := time.ParseInLocation(DateFormat+" 15:04", shift.Date+" "+shift.EndTime, now.Location())
		if err != nil {
			logger.Warn("Skipping shift with unparsable end time",
				zap.String("shift_id", shift.ID),
				zap.String("date", shift.Date),
				zap.String("end_time", shift.EndTime))
			continue
		}

		if !now.After(shiftEnd) {
			continue
		}

		_, err = UpdateShiftStatus(ctx, store, logger, shift.ID, model.ShiftCompleted, ShiftStatusUpdate{
			ActualEndTime:   now.Format(model.TimestampLayout),
			CompletionNotes: "Shift automatically completed",
		})
		if err != nil {
			logger.Warn("Failed to auto-complete shift",
				zap.String("shift_id", shift.ID), zap.Error(err))
			continue
		}
		completed = append(completed, shift.ID)
	}

	if len(completed) > 0 {
		logger.Info("Auto-completed overdue shifts", zap.Strings("shift_ids", completed))
	}

	return completed, nil
}

// WorkingStaff returns every staff member currently working a shift. The
// auto-completion sweep runs first so stale in-progress shifts do not
// count their staff as working.
func WorkingStaff(ctx context.Context, store LifecycleStore, logger *zap.Logger, now time.Time) ([]model.StaffMember, error) {
	if _, err := SweepShifts(ctx, store, logger, now); err != nil {
		return nil, err
	}

	availability, err := store.GetAllAvailability(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch availability", err)
	}

	working := []model.StaffMember{}
	for _, record := range availability {
		if record.Status != model.AvailabilityWorking || record.CurrentShiftID == "" {
			continue
		}
		staff, err := store.GetStaffMember(ctx, record.StaffID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff member", err)
		}
		if staff != nil {
			working = append(working, *staff)
		}
	}
	return working, nil
}

// AvailableStaffNow returns every staff member whose real-time status is
// available. The auto-completion sweep runs first so staff on stale
// in-progress shifts are released before the filter.
func AvailableStaffNow(ctx context.Context, store LifecycleStore, logger *zap.Logger, now time.Time) ([]model.StaffMember, error) {
	if _, err := SweepShifts(ctx, store, logger, now); err != nil {
		return nil, err
	}

	availability, err := store.GetAllAvailability(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch availability", err)
	}

	available := []model.StaffMember{}
	for _, record := range availability {
		if record.Status != model.AvailabilityAvailable {
			continue
		}
		staff, err := store.GetStaffMember(ctx, record.StaffID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff member", err)
		}
		if staff != nil {
			available = append(available, *staff)
		}
	}
	return available, nil
}

// AvailabilityTimeline returns a staff member's status history, newest
// first, capped at limit (default 50).
func AvailabilityTimeline(ctx context.Context, store LifecycleStore, staffID string, limit int) ([]model.AvailabilityTimeline, error) {
	if limit <= 0 {
		limit = defaultTimelineLimit
	}
	timeline, err := store.GetTimeline(ctx, staffID, limit)
	if err != nil {
		return nil, wrapStoreErr("fetch availability timeline", err)
	}
	return timeline, nil
}
