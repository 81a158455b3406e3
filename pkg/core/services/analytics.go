package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// AnalyticsStore defines the database operations the utilization and
// coverage analytics need.
type AnalyticsStore interface {
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
	GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error)
	GetShifts(ctx context.Context) ([]model.Shift, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAllocations(ctx context.Context) ([]model.AllocationRecord, error)
	GetAllocationsByShift(ctx context.Context, shiftID string) ([]model.AllocationRecord, error)
}

// StaffUtilization counts how much of the workforce holds at least one
// allocation.
type StaffUtilization struct {
	TotalStaff       int     `json:"total_staff"`
	AllocatedStaff   int     `json:"allocated_staff"`
	UtilizationRate  float64 `json:"utilization_rate"`
	UnallocatedStaff int     `json:"unallocated_staff"`
}

// ShiftCoverage counts how many shifts hold at least one allocation.
type ShiftCoverage struct {
	TotalShifts     int     `json:"total_shifts"`
	CoveredShifts   int     `json:"covered_shifts"`
	CoverageRate    float64 `json:"coverage_rate"`
	UncoveredShifts int     `json:"uncovered_shifts"`
}

// GroupUtilization is the allocation rate inside one department or role.
type GroupUtilization struct {
	TotalStaff      int     `json:"total_staff"`
	AllocatedStaff  int     `json:"allocated_staff"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// UtilizationSummary carries the headline counts of one utilization report.
type UtilizationSummary struct {
	TotalStaff                 int     `json:"total_staff"`
	TotalShifts                int     `json:"total_shifts"`
	TotalAllocations           int     `json:"total_allocations"`
	AverageAllocationsPerStaff float64 `json:"average_allocations_per_staff"`
}

// UtilizationOverall pairs the workforce and shift headline rates.
type UtilizationOverall struct {
	StaffUtilization StaffUtilization `json:"staff_utilization"`
	ShiftCoverage    ShiftCoverage    `json:"shift_coverage"`
}

// UtilizationAnalytics reports workforce utilization overall and broken
// down by department and role.
type UtilizationAnalytics struct {
	Overall      UtilizationOverall          `json:"overall"`
	ByDepartment map[string]GroupUtilization `json:"by_department"`
	ByRole       map[string]GroupUtilization `json:"by_role"`
	Summary      UtilizationSummary          `json:"summary"`
}

// staffUtilization derives the headline workforce rate. Any allocation
// counts, regardless of status.
func staffUtilization(staff []model.StaffMember, allocations []model.AllocationRecord) StaffUtilization {
	allocated := map[string]bool{}
	for _, allocation := range allocations {
		allocated[allocation.StaffID] = true
	}

	utilization := StaffUtilization{
		TotalStaff:       len(staff),
		AllocatedStaff:   len(allocated),
		UnallocatedStaff: len(staff) - len(allocated),
	}
	if utilization.TotalStaff > 0 {
		utilization.UtilizationRate = float64(utilization.AllocatedStaff) / float64(utilization.TotalStaff)
	}
	return utilization
}

// shiftCoverage derives the headline shift rate. Any allocation counts.
func shiftCoverage(shifts []model.Shift, allocations []model.AllocationRecord) ShiftCoverage {
	covered := map[string]bool{}
	for _, allocation := range allocations {
		covered[allocation.ShiftID] = true
	}

	coverage := ShiftCoverage{
		TotalShifts:     len(shifts),
		CoveredShifts:   len(covered),
		UncoveredShifts: len(shifts) - len(covered),
	}
	if coverage.TotalShifts > 0 {
		coverage.CoverageRate = float64(coverage.CoveredShifts) / float64(coverage.TotalShifts)
	}
	return coverage
}

// AnalyzeUtilization builds the full workforce utilization report. The
// department breakdown counts every allocation a department's staff hold,
// the role breakdown counts distinct allocated staff.
func AnalyzeUtilization(ctx context.Context, store AnalyticsStore, logger *zap.Logger) (*UtilizationAnalytics, error) {
	allStaff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff members", err)
	}
	allShifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch shifts", err)
	}
	allAllocations, err := store.GetAllocations(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch allocations", err)
	}

	analytics := &UtilizationAnalytics{
		Overall: UtilizationOverall{
			StaffUtilization: staffUtilization(allStaff, allAllocations),
			ShiftCoverage:    shiftCoverage(allShifts, allAllocations),
		},
		ByDepartment: map[string]GroupUtilization{},
		ByRole:       map[string]GroupUtilization{},
		Summary: UtilizationSummary{
			TotalStaff:       len(allStaff),
			TotalShifts:      len(allShifts),
			TotalAllocations: len(allAllocations),
		},
	}
	if len(allStaff) > 0 {
		analytics.Summary.AverageAllocationsPerStaff = float64(len(allAllocations)) / float64(len(allStaff))
	}

	staffByID := map[string]*model.StaffMember{}
	for i := range allStaff {
		staff := &allStaff[i]
		staffByID[staff.ID] = staff

		dept := analytics.ByDepartment[string(staff.Department)]
		dept.TotalStaff++
		analytics.ByDepartment[string(staff.Department)] = dept

		role := analytics.ByRole[string(staff.Role)]
		role.TotalStaff++
		analytics.ByRole[string(staff.Role)] = role
	}

	for _, allocation := range allAllocations {
		staff, ok := staffByID[allocation.StaffID]
		if !ok {
			continue
		}
		dept := analytics.ByDepartment[string(staff.Department)]
		dept.AllocatedStaff++
		analytics.ByDepartment[string(staff.Department)] = dept
	}

	allocatedStaffIDs := map[string]bool{}
	for _, allocation := range allAllocations {
		allocatedStaffIDs[allocation.StaffID] = true
	}
	for i := range allStaff {
		if !allocatedStaffIDs[allStaff[i].ID] {
			continue
		}
		role := analytics.ByRole[string(allStaff[i].Role)]
		role.AllocatedStaff++
		analytics.ByRole[string(allStaff[i].Role)] = role
	}

	for key, dept := range analytics.ByDepartment {
		if dept.TotalStaff > 0 {
			dept.UtilizationRate = float64(dept.AllocatedStaff) / float64(dept.TotalStaff)
		}
		analytics.ByDepartment[key] = dept
	}
	for key, role := range analytics.ByRole {
		if role.TotalStaff > 0 {
			role.UtilizationRate = float64(role.AllocatedStaff) / float64(role.TotalStaff)
		}
		analytics.ByRole[key] = role
	}

	logger.Debug("Built utilization analytics",
		zap.Int("staff", len(allStaff)),
		zap.Int("shifts", len(allShifts)),
		zap.Int("allocations", len(allAllocations)))

	return analytics, nil
}

// GroupCoverage is the coverage of one department or priority bucket.
type GroupCoverage struct {
	Total        int `json:"total"`
	Covered      int `json:"covered"`
	FullyCovered int `json:"fully_covered"`
}

// CoverageSummary carries the headline counts of one coverage report.
type CoverageSummary struct {
	TotalShifts            int     `json:"total_shifts"`
	CoveredShifts          int     `json:"covered_shifts"`
	UncoveredShifts        int     `json:"uncovered_shifts"`
	FullyCoveredShifts     int     `json:"fully_covered_shifts"`
	PartiallyCoveredShifts int     `json:"partially_covered_shifts"`
	CoverageRate           float64 `json:"coverage_rate"`
	FullCoverageRate       float64 `json:"full_coverage_rate"`
}

// CoverageAnalytics reports role-requirement fulfillment over a shift
// window, broken down by department and priority.
type CoverageAnalytics struct {
	Summary      CoverageSummary          `json:"summary"`
	ByDepartment map[string]GroupCoverage `json:"coverage_by_department"`
	ByPriority   map[string]GroupCoverage `json:"coverage_by_priority"`
	DateRange    CoverageDateRange        `json:"date_range"`
}

// CoverageDateRange echoes the requested window; "all" means unbounded.
type CoverageDateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AnalyzeCoverage builds the shift coverage report for an optional date
// window. A shift is covered when it holds a confirmed allocation and
// fully covered when every role requirement is met by confirmed staff.
func AnalyzeCoverage(ctx context.Context, store AnalyticsStore, logger *zap.Logger, startDate, endDate string) (*CoverageAnalytics, error) {
	allShifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch shifts", err)
	}
	allAllocations, err := store.GetAllocations(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch allocations", err)
	}

	shifts := []model.Shift{}
	for _, shift := range allShifts {
		if startDate != "" && shift.Date < startDate {
			continue
		}
		if endDate != "" && shift.Date > endDate {
			continue
		}
		shifts = append(shifts, shift)
	}

	analytics := &CoverageAnalytics{
		Summary:      CoverageSummary{TotalShifts: len(shifts)},
		ByDepartment: map[string]GroupCoverage{},
		ByPriority:   map[string]GroupCoverage{},
		DateRange:    CoverageDateRange{StartDate: orAll(startDate), EndDate: orAll(endDate)},
	}

	for _, shift := range shifts {
		confirmed := []model.AllocationRecord{}
		for _, allocation := range allAllocations {
			if allocation.ShiftID == shift.ID && allocation.Status == model.AllocationConfirmed {
				confirmed = append(confirmed, allocation)
			}
		}

		allocatedRoles := map[string]int{}
		for _, allocation := range confirmed {
			staff, err := store.GetStaffMember(ctx, allocation.StaffID)
			if err != nil {
				return nil, wrapStoreErr("fetch staff member", err)
			}
			if staff != nil {
				allocatedRoles[string(staff.Role)]++
			}
		}

		requirementsMet := 0
		for role, required := range shift.RequiredStaff {
			if allocatedRoles[role] >= required {
				requirementsMet++
			}
		}
		fullyMet := requirementsMet == len(shift.RequiredStaff)

		if len(confirmed) > 0 {
			analytics.Summary.CoveredShifts++
			if fullyMet {
				analytics.Summary.FullyCoveredShifts++
			} else {
				analytics.Summary.PartiallyCoveredShifts++
			}
		}

		dept := analytics.ByDepartment[shift.Department]
		dept.Total++
		if len(confirmed) > 0 {
			dept.Covered++
		}
		if fullyMet {
			dept.FullyCovered++
		}
		analytics.ByDepartment[shift.Department] = dept

		priority := analytics.ByPriority[string(shift.Priority)]
		priority.Total++
		if len(confirmed) > 0 {
			priority.Covered++
		}
		if fullyMet {
			priority.FullyCovered++
		}
		analytics.ByPriority[string(shift.Priority)] = priority
	}

	analytics.Summary.UncoveredShifts = analytics.Summary.TotalShifts - analytics.Summary.CoveredShifts
	if analytics.Summary.TotalShifts > 0 {
		analytics.Summary.CoverageRate = float64(analytics.Summary.CoveredShifts) / float64(analytics.Summary.TotalShifts)
		analytics.Summary.FullCoverageRate = float64(analytics.Summary.FullyCoveredShifts) / float64(analytics.Summary.TotalShifts)
	}

	logger.Debug("Built coverage analytics",
		zap.Int("shifts", len(shifts)),
		zap.Int("covered", analytics.Summary.CoveredShifts),
		zap.Int("fully_covered", analytics.Summary.FullyCoveredShifts))

	return analytics, nil
}

func orAll(date string) string {
	if date == "" {
		return "all"
	}
	return date
}

// ShiftRequirements reports how far a shift's role requirements are
// fulfilled by its confirmed allocations.
type ShiftRequirements struct {
	ShiftID               string         `json:"shift_id"`
	ShiftDetails          *model.Shift   `json:"shift_details"`
	RequiredStaff         map[string]int `json:"required_staff"`
	FulfilledStaff        map[string]int `json:"fulfilled_staff"`
	RemainingRequirements map[string]int `json:"remaining_requirements"`
	CurrentAllocations    int            `json:"current_allocations"`
	CapacityRemaining     int            `json:"capacity_remaining"`
	IsFullyStaffed        bool           `json:"is_fully_staffed"`
}

// ShiftRequirementsStatus reports a shift's requirement fulfillment.
// Returns nil when the shift does not exist. Capacity counts every
// allocation; fulfillment counts only confirmed staff.
func ShiftRequirementsStatus(ctx context.Context, store AnalyticsStore, logger *zap.Logger, shiftID string) (*ShiftRequirements, error) {
	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}
	if shift == nil {
		return nil, nil
	}

	allocations, err := store.GetAllocationsByShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift allocations", err)
	}

	fulfilled := map[string]int{}
	for _, allocation := range allocations {
		if allocation.Status != model.AllocationConfirmed {
			continue
		}
		staff, err := store.GetStaffMember(ctx, allocation.StaffID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff member", err)
		}
		if staff != nil {
			fulfilled[string(staff.Role)]++
		}
	}

	remaining := map[string]int{}
	fullyStaffed := true
	for role, required := range shift.RequiredStaff {
		missing := required - fulfilled[role]
		if missing < 0 {
			missing = 0
		}
		remaining[role] = missing
		if missing > 0 {
			fullyStaffed = false
		}
	}

	logger.Debug("Computed shift requirements",
		zap.String("shift_id", shiftID),
		zap.Int("allocations", len(allocations)),
		zap.Bool("fully_staffed", fullyStaffed))

	return &ShiftRequirements{
		ShiftID:               shiftID,
		ShiftDetails:          shift,
		RequiredStaff:         shift.RequiredStaff,
		FulfilledStaff:        fulfilled,
		RemainingRequirements: remaining,
		CurrentAllocations:    len(allocations),
		CapacityRemaining:     shift.MaxCapacity - len(allocations),
		IsFullyStaffed:        fullyStaffed,
	}, nil
}

// DepartmentStats aggregates headcount and skill for one department.
type DepartmentStats struct {
	Count      int     `json:"count"`
	AvgSkill   float64 `json:"avg_skill"`
	TotalSkill int     `json:"total_skill"`
}

// RoleStats aggregates headcount and experience for one role.
type RoleStats struct {
	Count           int     `json:"count"`
	AvgExperience   float64 `json:"avg_experience"`
	TotalExperience int     `json:"total_experience"`
}

// SystemOverview carries the headline counts and rates of the system.
type SystemOverview struct {
	TotalStaff           int     `json:"total_staff"`
	TotalShifts          int     `json:"total_shifts"`
	TotalAllocations     int     `json:"total_allocations"`
	StaffUtilizationRate float64 `json:"staff_utilization_rate"`
	ShiftCoverageRate    float64 `json:"shift_coverage_rate"`
}

// SystemStats is the system-wide statistics report.
type SystemStats struct {
	Overview          SystemOverview             `json:"overview"`
	StaffByDepartment map[string]DepartmentStats `json:"staff_by_department"`
	StaffByRole       map[string]RoleStats       `json:"staff_by_role"`
	Utilization       StaffUtilization           `json:"utilization"`
	Coverage          ShiftCoverage              `json:"coverage"`
}

// SystemStatistics builds the system-wide statistics report.
func SystemStatistics(ctx context.Context, store AnalyticsStore, logger *zap.Logger) (*SystemStats, error) {
	allStaff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff members", err)
	}
	allShifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch shifts", err)
	}
	allAllocations, err := store.GetAllocations(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch allocations", err)
	}

	utilization := staffUtilization(allStaff, allAllocations)
	coverage := shiftCoverage(allShifts, allAllocations)

	stats := &SystemStats{
		Overview: SystemOverview{
			TotalStaff:           len(allStaff),
			TotalShifts:          len(allShifts),
			TotalAllocations:     len(allAllocations),
			StaffUtilizationRate: utilization.UtilizationRate,
			ShiftCoverageRate:    coverage.CoverageRate,
		},
		StaffByDepartment: map[string]DepartmentStats{},
		StaffByRole:       map[string]RoleStats{},
		Utilization:       utilization,
		Coverage:          coverage,
	}

	for _, staff := range allStaff {
		dept := stats.StaffByDepartment[string(staff.Department)]
		dept.Count++
		dept.TotalSkill += staff.SkillLevel
		stats.StaffByDepartment[string(staff.Department)] = dept

		role := stats.StaffByRole[string(staff.Role)]
		role.Count++
		role.TotalExperience += staff.ExperienceYears
		stats.StaffByRole[string(staff.Role)] = role
	}
	for key, dept := range stats.StaffByDepartment {
		dept.AvgSkill = round2(float64(dept.TotalSkill) / float64(dept.Count))
		stats.StaffByDepartment[key] = dept
	}
	for key, role := range stats.StaffByRole {
		role.AvgExperience = round2(float64(role.TotalExperience) / float64(role.Count))
		stats.StaffByRole[key] = role
	}

	logger.Debug("Built system statistics",
		zap.Int("staff", len(allStaff)),
		zap.Int("shifts", len(allShifts)),
		zap.Int("allocations", len(allAllocations)))

	return stats, nil
}
