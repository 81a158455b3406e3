package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// SummaryStore defines the database operations the allocation summary needs.
type SummaryStore interface {
	GetShifts(ctx context.Context) ([]model.Shift, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAllocations(ctx context.Context) ([]model.AllocationRecord, error)
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
	GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error)
}

// CostBreakdown splits allocation cost by department and by role.
type CostBreakdown struct {
	ByDepartment map[string]float64 `json:"by_department"`
	ByRole       map[string]float64 `json:"by_role"`
	Total        float64            `json:"total"`
}

// AllocationSummary aggregates allocation metrics over a date range.
type AllocationSummary struct {
	DateRange          string         `json:"date_range"`
	TotalShifts        int            `json:"total_shifts"`
	AllocatedShifts    int            `json:"allocated_shifts"`
	UnallocatedShifts  int            `json:"unallocated_shifts"`
	TotalStaffHours    float64        `json:"total_staff_hours"`
	AverageUtilization float64        `json:"average_utilization"`
	Departments        map[string]int `json:"departments"`
	CostBreakdown      CostBreakdown  `json:"cost_breakdown"`
}

// SummarizeAllocations builds an AllocationSummary for a date range. The
// range is "start to end" or a single date. Hours and cost use the fixed
// eight-hour shift length; utilization is staff hours over the workforce's
// pro-rated weekly capacity, capped at 1.0.
func SummarizeAllocations(ctx context.Context, store SummaryStore, logger *zap.Logger, dateRange string) (*AllocationSummary, error) {
	startDate, endDate := parseDateRange(dateRange)

	logger.Debug("Step 1: gathering shifts and allocations in range",
		zap.String("start_date", startDate), zap.String("end_date", endDate))

	shifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch shifts", err)
	}

	relevantShifts := []model.Shift{}
	for _, shift := range shifts {
		if dateInRange(shift.Date, startDate, endDate) {
			relevantShifts = append(relevantShifts, shift)
		}
	}

	allocations, err := store.GetAllocations(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch allocations", err)
	}

	relevantAllocations := []model.AllocationRecord{}
	for _, allocation := range allocations {
		shift, err := store.GetShift(ctx, allocation.ShiftID)
		if err != nil {
			return nil, wrapStoreErr("fetch shift", err)
		}
		if shift != nil && dateInRange(shift.Date, startDate, endDate) {
			relevantAllocations = append(relevantAllocations, allocation)
		}
	}

	logger.Debug("Step 2: computing coverage and hours",
		zap.Int("relevant_shifts", len(relevantShifts)),
		zap.Int("relevant_allocations", len(relevantAllocations)))

	allocatedSet := map[string]struct{}{}
	for _, allocation := range relevantAllocations {
		allocatedSet[allocation.ShiftID] = struct{}{}
	}

	totalStaffHours := float64(len(relevantAllocations)) * standardShiftHours

	staff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff", err)
	}

	averageUtilization := 0.0
	if capacity := workforceCapacity(staff, startDate, endDate); capacity > 0 {
		averageUtilization = totalStaffHours / capacity
		if averageUtilization > 1.0 {
			averageUtilization = 1.0
		}
	}

	logger.Debug("Step 3: building department and cost breakdowns")

	departments := map[string]int{}
	breakdown := CostBreakdown{
		ByDepartment: map[string]float64{},
		ByRole:       map[string]float64{},
	}
	for _, allocation := range relevantAllocations {
		shift, err := store.GetShift(ctx, allocation.ShiftID)
		if err != nil {
			return nil, wrapStoreErr("fetch shift", err)
		}
		member, err := store.GetStaffMember(ctx, allocation.StaffID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff member", err)
		}
		if shift == nil || member == nil {
			continue
		}

		departments[shift.Department]++

		cost := member.HourlyRate * standardShiftHours
		breakdown.ByDepartment[shift.Department] += cost
		breakdown.ByRole[string(member.Role)] += cost
		breakdown.Total += cost
	}

	return &AllocationSummary{
		DateRange:          dateRange,
		TotalShifts:        len(relevantShifts),
		AllocatedShifts:    len(allocatedSet),
		UnallocatedShifts:  len(relevantShifts) - len(allocatedSet),
		TotalStaffHours:    totalStaffHours,
		AverageUtilization: averageUtilization,
		Departments:        departments,
		CostBreakdown:      breakdown,
	}, nil
}

// workforceCapacity pro-rates the workforce's combined weekly hour limits
// over the number of days in the range, inclusive.
func workforceCapacity(staff []model.StaffMember, startDate, endDate string) float64 {
	start, err := time.Parse(DateFormat, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateFormat, endDate)
	if err != nil {
		return 0
	}

	weeklyHours := 0
	for _, member := range staff {
		weeklyHours += member.MaxHoursPerWeek
	}

	days := end.Sub(start).Hours()/24 + 1
	return float64(weeklyHours) * days / 7
}
