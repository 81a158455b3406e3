package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// ShiftSeriesStore defines the database operations shift series expansion
// needs.
type ShiftSeriesStore interface {
	GetShiftsByDate(ctx context.Context, date string) ([]model.Shift, error)
	InsertShift(ctx context.Context, shift *model.Shift) error
}

// ShiftSeriesSpec describes a recurring run of shifts to materialize.
type ShiftSeriesSpec struct {
	Name              string
	RRule             string
	ShiftType         model.ShiftType
	Department        string
	StartTime         string
	EndTime           string
	RequiredStaff     map[string]int
	MinimumSkillLevel int
	Priority          model.Priority
	MaxCapacity       int
}

// DefineShiftSeries expands a recurrence rule over a window and creates
// one scheduled shift per occurrence. Dates that already carry a shift of
// the same type and department are skipped, so redefining an overlapping
// series is safe. Returns the shifts created.
func DefineShiftSeries(
	ctx context.Context,
	store ShiftSeriesStore,
	logger *zap.Logger,
	spec ShiftSeriesSpec,
	windowStart, windowEnd time.Time,
) ([]model.Shift, error) {
	rule, err := rrule.StrToRRule(spec.RRule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recurrence rule: %w", err)
	}
	rule.DTStart(windowStart)

	logger.Debug("Step 1: expanding recurrence rule",
		zap.String("series", spec.Name),
		zap.String("rrule", spec.RRule),
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd))

	occurrences := rule.Between(windowStart, windowEnd, true)

	priority := spec.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	maxCapacity := spec.MaxCapacity
	if maxCapacity <= 0 {
		maxCapacity = 1
	}
	requiredStaff := spec.RequiredStaff
	if requiredStaff == nil {
		requiredStaff = map[string]int{}
	}

	logger.Debug("Step 2: materializing shifts",
		zap.Int("occurrences", len(occurrences)))

	created := []model.Shift{}
	for _, occurrence := range occurrences {
		date := occurrence.Format(DateFormat)

		existing, err := store.GetShiftsByDate(ctx, date)
		if err != nil {
			return nil, wrapStoreErr("fetch shifts by date", err)
		}
		duplicate := false
		for _, shift := range existing {
			if shift.ShiftType == spec.ShiftType && shift.Department == spec.Department {
				duplicate = true
				break
			}
		}
		if duplicate {
			logger.Debug("Skipping occurrence with existing shift",
				zap.String("date", date), zap.String("series", spec.Name))
			continue
		}

		shift := model.Shift{
			ID:                model.NewID("shift"),
			Date:              date,
			ShiftType:         spec.ShiftType,
			Department:        spec.Department,
			StartTime:         spec.StartTime,
			EndTime:           spec.EndTime,
			RequiredStaff:     requiredStaff,
			MinimumSkillLevel: spec.MinimumSkillLevel,
			Priority:          priority,
			MaxCapacity:       maxCapacity,
			Status:            model.ShiftScheduled,
		}
		if err := store.InsertShift(ctx, &shift); err != nil {
			return nil, wrapStoreErr("insert shift", err)
		}
		created = append(created, shift)
	}

	logger.Info("Defined shift series",
		zap.String("series", spec.Name),
		zap.Int("shifts_created", len(created)))

	return created, nil
}
