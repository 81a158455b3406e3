// Package seed loads the demo dataset: six staff members across four
// departments, five shifts and two confirmed allocations. The development
// server starts from it and the demo-reset endpoint reloads it.
package seed

import (
	"context"
	"fmt"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
)

// Staff returns the demo staff members.
func Staff() []model.StaffMember {
	return []model.StaffMember{
		{
			ID:                 "staff_001",
			Name:               "Arivanan",
			Role:               model.RoleDoctor,
			Department:         model.DepartmentEmergency,
			SkillLevel:         9,
			MaxHoursPerWeek:    50,
			PreferredShifts:    []string{"morning", "evening"},
			UnavailableDates:   []string{"2024-07-20"},
			CertificationLevel: "senior",
			ExperienceYears:    8,
			HourlyRate:         85.0,
		},
		{
			ID:                 "staff_002",
			Name:               "Gowsalya",
			Role:               model.RoleNurse,
			Department:         model.DepartmentEmergency,
			SkillLevel:         8,
			MaxHoursPerWeek:    40,
			PreferredShifts:    []string{"morning", "evening"},
			UnavailableDates:   []string{},
			CertificationLevel: "advanced",
			ExperienceYears:    6,
			HourlyRate:         35.0,
		},
		{
			ID:                 "staff_003",
			Name:               "Dr. Michael Chen",
			Role:               model.RoleDoctor,
			Department:         model.DepartmentSurgery,
			SkillLevel:         10,
			MaxHoursPerWeek:    45,
			PreferredShifts:    []string{"morning"},
			UnavailableDates:   []string{"2024-07-18", "2024-07-19"},
			CertificationLevel: "expert",
			ExperienceYears:    12,
			HourlyRate:         120.0,
		},
		{
			ID:                 "staff_004",
			Name:               "Technician Jake Wilson",
			Role:               model.RoleTechnician,
			Department:         model.DepartmentEmergency,
			SkillLevel:         7,
			MaxHoursPerWeek:    40,
			PreferredShifts:    []string{"afternoon", "evening"},
			UnavailableDates:   []string{},
			CertificationLevel: "intermediate",
			ExperienceYears:    4,
			HourlyRate:         28.0,
		},
		{
			ID:                 "staff_005",
			Name:               "Nurse Lisa Martinez",
			Role:               model.RoleNurse,
			Department:         model.DepartmentPediatrics,
			SkillLevel:         8,
			MaxHoursPerWeek:    36,
			PreferredShifts:    []string{"morning", "afternoon"},
			UnavailableDates:   []string{"2024-07-21"},
			CertificationLevel: "advanced",
			ExperienceYears:    5,
			HourlyRate:         32.0,
		},
		{
			ID:                 "staff_006",
			Name:               "Dr. Amanda Rodriguez",
			Role:               model.RoleDoctor,
			Department:         model.DepartmentCardiology,
			SkillLevel:         9,
			MaxHoursPerWeek:    48,
			PreferredShifts:    []string{"morning"},
			UnavailableDates:   []string{},
			CertificationLevel: "senior",
			ExperienceYears:    10,
			HourlyRate:         95.0,
		},
	}
}

// Shifts returns the demo shifts.
func Shifts() []model.Shift {
	return []model.Shift{
		{
			ID:                  "shift_001",
			Date:                "2025-07-10",
			ShiftType:           model.ShiftMorning,
			Department:          "emergency",
			StartTime:           "08:00",
			EndTime:             "16:00",
			RequiredStaff:       map[string]int{"doctor": 10, "nurse": 0, "technician": 0},
			MinimumSkillLevel:   6,
			Priority:            model.PriorityMedium,
			SpecialRequirements: []string{"trauma_certified"},
			MaxCapacity:         8,
			Status:              model.ShiftScheduled,
		},
		{
			ID:                  "shift_002",
			Date:                "2025-07-13",
			ShiftType:           model.ShiftNight,
			Department:          "emergency",
			StartTime:           "20:00",
			EndTime:             "08:00",
			RequiredStaff:       map[string]int{"doctor": 1, "nurse": 1},
			MinimumSkillLevel:   7,
			Priority:            model.PriorityCritical,
			SpecialRequirements: []string{"icu_certified"},
			MaxCapacity:         6,
			Status:              model.ShiftScheduled,
		},
		{
			ID:                  "shift_003",
			Date:                "2024-07-16",
			ShiftType:           model.ShiftMorning,
			Department:          "surgery",
			StartTime:           "07:00",
			EndTime:             "15:00",
			RequiredStaff:       map[string]int{"doctor": 3, "nurse": 2, "technician": 1},
			MinimumSkillLevel:   8,
			Priority:            model.PriorityHigh,
			SpecialRequirements: []string{"surgery_certified"},
			MaxCapacity:         7,
			Status:              model.ShiftScheduled,
		},
		{
			ID:                  "shift_004",
			Date:                "2024-07-16",
			ShiftType:           model.ShiftAfternoon,
			Department:          "pediatrics",
			StartTime:           "14:00",
			EndTime:             "22:00",
			RequiredStaff:       map[string]int{"doctor": 1, "nurse": 2},
			MinimumSkillLevel:   6,
			Priority:            model.PriorityMedium,
			SpecialRequirements: []string{"pediatric_certified"},
			MaxCapacity:         4,
			Status:              model.ShiftScheduled,
		},
		{
			ID:                  "shift_005",
			Date:                "2024-07-17",
			ShiftType:           model.ShiftMorning,
			Department:          "cardiology",
			StartTime:           "08:00",
			EndTime:             "16:00",
			RequiredStaff:       map[string]int{"doctor": 2, "nurse": 1, "technician": 1},
			MinimumSkillLevel:   7,
			Priority:            model.PriorityMedium,
			SpecialRequirements: []string{"cardiology_certified"},
			MaxCapacity:         5,
			Status:              model.ShiftScheduled,
		},
	}
}

// Allocations returns the demo allocations.
func Allocations() []model.AllocationRecord {
	return []model.AllocationRecord{
		{
			ID:              "allocation_001",
			StaffID:         "staff_001",
			ShiftID:         "shift_001",
			Status:          model.AllocationConfirmed,
			AssignedAt:      "2024-07-13T10:30:00",
			ConfidenceScore: 0.92,
			Reasoning:       "Dr. Johnson is highly skilled in emergency care and available during this time slot",
			ConstraintsMet:  []string{"skill_level", "availability", "department_match"},
			PotentialIssues: []string{},
		},
		{
			ID:              "allocation_002",
			StaffID:         "staff_002",
			ShiftID:         "shift_002",
			Status:          model.AllocationConfirmed,
			AssignedAt:      "2024-07-13T10:35:00",
			ConfidenceScore: 0.88,
			Reasoning:       "Nurse Davis specializes in ICU care and prefers night shifts",
			ConstraintsMet:  []string{"skill_level", "availability", "department_match", "shift_preference"},
			PotentialIssues: []string{},
		},
	}
}

// Load inserts the demo dataset into an empty database. Staff insertion
// also initializes each member's availability record.
func Load(ctx context.Context, database db.Database) error {
	for _, member := range Staff() {
		staff := member
		if err := database.InsertStaffMember(ctx, &staff); err != nil {
			return fmt.Errorf("failed to seed staff member %s: %w", staff.ID, err)
		}
	}
	for _, entry := range Shifts() {
		shift := entry
		if err := database.InsertShift(ctx, &shift); err != nil {
			return fmt.Errorf("failed to seed shift %s: %w", shift.ID, err)
		}
	}
	for _, entry := range Allocations() {
		allocation := entry
		if err := database.InsertAllocation(ctx, &allocation); err != nil {
			return fmt.Errorf("failed to seed allocation %s: %w", allocation.ID, err)
		}
	}
	return nil
}
