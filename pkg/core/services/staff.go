package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/allocator"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

// Utilization thresholds for workload categorization.
const (
	overloadedThreshold    = 0.9
	underutilizedThreshold = 0.6
)

// maxStaffRecommendations caps advisory-sourced staffing recommendations.
const maxStaffRecommendations = 5

// fallbackRecommendations are returned when the advisory collaborator is
// absent or its output is unusable.
var fallbackRecommendations = []string{
	"Conduct skill assessment for all staff",
	"Consider cross-training to improve flexibility",
	"Review workload distribution across departments",
	"Evaluate hiring needs based on patient volume trends",
}

// StaffAnalyticsStore defines the database operations the staff analytics
// services need.
type StaffAnalyticsStore interface {
	GetStaffMembers(ctx context.Context) ([]model.StaffMember, error)
	GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAllocationsByStaff(ctx context.Context, staffID string) ([]model.AllocationRecord, error)
}

// AvailableStaffForDate returns the staff not marked unavailable on a date,
// optionally restricted to one department.
func AvailableStaffForDate(ctx context.Context, store StaffAnalyticsStore, date, department string) ([]model.StaffMember, error) {
	staff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff", err)
	}
	return allocator.AvailableStaff(staff, date, department), nil
}

// SkillsAnalysis summarizes the skill profile of a staff population.
type SkillsAnalysis struct {
	TotalStaff             int            `json:"total_staff"`
	AverageSkillLevel      float64        `json:"average_skill_level"`
	AverageExperience      float64        `json:"average_experience"`
	SkillLevelDistribution map[string]int `json:"skill_level_distribution"`
	RoleDistribution       map[string]int `json:"role_distribution"`
	DepartmentDistribution map[string]int `json:"department_distribution"`
	SkillGaps              []string       `json:"skill_gaps"`
	Recommendations        []string       `json:"recommendations"`
}

// AnalyzeStaffSkills builds a skill-distribution analysis over the whole
// workforce or one department. Returns nil when no staff match.
func AnalyzeStaffSkills(
	ctx context.Context,
	store StaffAnalyticsStore,
	advisory AdvisoryClient,
	logger *zap.Logger,
	department string,
) (*SkillsAnalysis, error) {
	staff, err := store.GetStaffMembers(ctx)
	if err != nil {
		return nil, wrapStoreErr("fetch staff", err)
	}

	if department != "" {
		filtered := []model.StaffMember{}
		for _, member := range staff {
			if string(member.Department) == department {
				filtered = append(filtered, member)
			}
		}
		staff = filtered
	}

	if len(staff) == 0 {
		return nil, nil
	}

	logger.Debug("Step 1: computing skill distributions",
		zap.Int("staff_count", len(staff)), zap.String("department", department))

	skillSum, expSum := 0, 0
	skillDist := map[string]int{}
	roleDist := map[string]int{}
	deptDist := map[string]int{}
	for _, member := range staff {
		skillSum += member.SkillLevel
		expSum += member.ExperienceYears
		skillDist[strconv.Itoa(member.SkillLevel)]++
		roleDist[string(member.Role)]++
		deptDist[string(member.Department)]++
	}
	if department != "" {
		deptDist = map[string]int{department: len(staff)}
	}

	logger.Debug("Step 2: identifying skill gaps")
	gaps := identifySkillGaps(staff)

	logger.Debug("Step 3: generating staffing recommendations")
	recommendations := staffingRecommendations(ctx, advisory, logger, staff)

	return &SkillsAnalysis{
		TotalStaff:             len(staff),
		AverageSkillLevel:      float64(skillSum) / float64(len(staff)),
		AverageExperience:      float64(expSum) / float64(len(staff)),
		SkillLevelDistribution: skillDist,
		RoleDistribution:       roleDist,
		DepartmentDistribution: deptDist,
		SkillGaps:              gaps,
		Recommendations:        recommendations,
	}, nil
}

// identifySkillGaps flags departments averaging below skill level 7 and
// shortages of core clinical roles.
func identifySkillGaps(staff []model.StaffMember) []string {
	gaps := []string{}

	deptSkills := map[string][]int{}
	deptOrder := []string{}
	for _, member := range staff {
		dept := string(member.Department)
		if _, seen := deptSkills[dept]; !seen {
			deptOrder = append(deptOrder, dept)
		}
		deptSkills[dept] = append(deptSkills[dept], member.SkillLevel)
	}
	for _, dept := range deptOrder {
		skills := deptSkills[dept]
		sum := 0
		for _, level := range skills {
			sum += level
		}
		avg := float64(sum) / float64(len(skills))
		if avg < 7 {
			gaps = append(gaps, fmt.Sprintf("Low average skill level in %s department: %.1f", dept, avg))
		}
	}

	roleCounts := map[string]int{}
	for _, member := range staff {
		roleCounts[string(member.Role)]++
	}
	if roleCounts["doctor"] < 3 {
		gaps = append(gaps, "Shortage of doctors")
	}
	if roleCounts["nurse"] < 6 {
		gaps = append(gaps, "Shortage of nurses")
	}

	return gaps
}

// staffingRecommendations asks the advisory collaborator for staffing
// recommendations, falling back to a fixed list when it cannot help.
func staffingRecommendations(ctx context.Context, advisory AdvisoryClient, logger *zap.Logger, staff []model.StaffMember) []string {
	if advisory == nil {
		return fallbackRecommendations
	}

	type staffDatum struct {
		Role            string `json:"role"`
		Department      string `json:"department"`
		SkillLevel      int    `json:"skill_level"`
		ExperienceYears int    `json:"experience_years"`
		MaxHoursPerWeek int    `json:"max_hours_per_week"`
	}
	data := make([]staffDatum, 0, len(staff))
	for _, member := range staff {
		data = append(data, staffDatum{
			Role:            string(member.Role),
			Department:      string(member.Department),
			SkillLevel:      member.SkillLevel,
			ExperienceYears: member.ExperienceYears,
			MaxHoursPerWeek: member.MaxHoursPerWeek,
		})
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fallbackRecommendations
	}

	prompt := fmt.Sprintf(`Analyze the following hospital staffing data and provide recommendations:

STAFF DATA:
%s

Please provide:
1. Staffing level assessment
2. Skill gap analysis
3. Recommendations for hiring priorities
4. Training suggestions
5. Schedule optimization opportunities

Respond with a JSON array of recommendation strings.`, encoded)

	systemMessage := "You are a hospital staffing consultant AI. Analyze the provided staffing data and provide actionable recommendations for improving hospital operations."

	response, err := advisory.GenerateResponse(ctx, prompt, systemMessage)
	if err != nil {
		logger.Warn("Advisory staffing recommendations unavailable", zap.Error(err))
		return fallbackRecommendations
	}

	var recommendations []string
	if err := json.Unmarshal([]byte(response), &recommendations); err == nil {
		return recommendations
	}

	// Not JSON; salvage non-heading lines from the raw text
	lines := []string{}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return fallbackRecommendations
	}
	if len(lines) > maxStaffRecommendations {
		lines = lines[:maxStaffRecommendations]
	}
	return lines
}

// StaffWorkload is one staff member's allocation load.
type StaffWorkload struct {
	StaffID         string  `json:"staff_id"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	Department      string  `json:"department"`
	MaxHoursPerWeek int     `json:"max_hours_per_week"`
	AllocatedHours  float64 `json:"allocated_hours"`
	UtilizationRate float64 `json:"utilization_rate"`
	Category        string  `json:"category"`
	NumberOfShifts  int     `json:"number_of_shifts"`
}

// WorkloadSummary counts staff per workload category.
type WorkloadSummary struct {
	TotalStaff         int `json:"total_staff"`
	OverloadedStaff    int `json:"overloaded_staff"`
	UnderutilizedStaff int `json:"underutilized_staff"`
	BalancedStaff      int `json:"balanced_staff"`
}

// WorkloadAnalysis is the per-staff workload breakdown with its summary.
type WorkloadAnalysis struct {
	StaffWorkloads []StaffWorkload `json:"staff_workloads"`
	Summary        WorkloadSummary `json:"summary"`
}

// AnalyzeStaffWorkload categorizes staff utilization across the workforce,
// or one staff member when staffID is set. Hours count allocations at the
// fixed eight-hour shift length.
func AnalyzeStaffWorkload(ctx context.Context, store StaffAnalyticsStore, staffID string) (*WorkloadAnalysis, error) {
	var staff []model.StaffMember
	if staffID != "" {
		member, err := store.GetStaffMember(ctx, staffID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff member", err)
		}
		if member != nil {
			staff = []model.StaffMember{*member}
		}
	} else {
		all, err := store.GetStaffMembers(ctx)
		if err != nil {
			return nil, wrapStoreErr("fetch staff", err)
		}
		staff = all
	}

	analysis := &WorkloadAnalysis{
		StaffWorkloads: []StaffWorkload{},
		Summary:        WorkloadSummary{TotalStaff: len(staff)},
	}

	for _, member := range staff {
		allocations, err := store.GetAllocationsByStaff(ctx, member.ID)
		if err != nil {
			return nil, wrapStoreErr("fetch staff allocations", err)
		}

		allocatedHours := float64(len(allocations)) * standardShiftHours
		utilization := 0.0
		if member.MaxHoursPerWeek > 0 {
			utilization = allocatedHours / float64(member.MaxHoursPerWeek)
			if utilization > 1.0 {
				utilization = 1.0
			}
		}

		category := "balanced"
		switch {
		case utilization > overloadedThreshold:
			category = "overloaded"
			analysis.Summary.OverloadedStaff++
		case utilization < underutilizedThreshold:
			category = "underutilized"
			analysis.Summary.UnderutilizedStaff++
		default:
			analysis.Summary.BalancedStaff++
		}

		analysis.StaffWorkloads = append(analysis.StaffWorkloads, StaffWorkload{
			StaffID:         member.ID,
			Name:            member.Name,
			Role:            string(member.Role),
			Department:      string(member.Department),
			MaxHoursPerWeek: member.MaxHoursPerWeek,
			AllocatedHours:  allocatedHours,
			UtilizationRate: round2(utilization),
			Category:        category,
			NumberOfShifts:  len(allocations),
		})
	}

	return analysis, nil
}

// SuggestStaffForShift ranks available staff for a shift, best first. An
// unknown shift yields an empty list.
func SuggestStaffForShift(ctx context.Context, store StaffAnalyticsStore, logger *zap.Logger, shiftID string) ([]allocator.StaffSuggestion, error) {
	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, wrapStoreErr("fetch shift", err)
	}
	if shift == nil {
		return []allocator.StaffSuggestion{}, nil
	}

	available, err := AvailableStaffForDate(ctx, store, shift.Date, shift.Department)
	if err != nil {
		return nil, err
	}

	suggestions := allocator.RankStaffForShift(available, shift)
	logger.Debug("Ranked staff for shift",
		zap.String("shift_id", shiftID),
		zap.Int("candidates", len(available)),
		zap.Int("suggestions", len(suggestions)))
	return suggestions, nil
}
