package model

import (
	"math"
	"time"
)

type Role string

const (
	RoleDoctor         Role = "doctor"
	RoleNurse          Role = "nurse"
	RoleTechnician     Role = "technician"
	RoleAdministrative Role = "administrative"
	RoleSupport        Role = "support"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleTechnician, RoleAdministrative, RoleSupport:
		return true
	}
	return false
}

type Department string

const (
	DepartmentEmergency  Department = "emergency"
	DepartmentICU        Department = "icu"
	DepartmentSurgery    Department = "surgery"
	DepartmentPediatrics Department = "pediatrics"
	DepartmentCardiology Department = "cardiology"
	DepartmentGeneral    Department = "general"
)

func (d Department) IsValid() bool {
	switch d {
	case DepartmentEmergency, DepartmentICU, DepartmentSurgery, DepartmentPediatrics, DepartmentCardiology, DepartmentGeneral:
		return true
	}
	return false
}

type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftEvening   ShiftType = "evening"
	ShiftNight     ShiftType = "night"
	ShiftOnCall    ShiftType = "on_call"
)

func (s ShiftType) IsValid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftNight, ShiftOnCall:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type ShiftStatus string

const (
	ShiftScheduled  ShiftStatus = "scheduled"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftArchived   ShiftStatus = "archived"
)

type AllocationStatus string

const (
	AllocationPending   AllocationStatus = "pending"
	AllocationConfirmed AllocationStatus = "confirmed"
	AllocationRejected  AllocationStatus = "rejected"
	AllocationCompleted AllocationStatus = "completed"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityWorking     AvailabilityStatus = "working"
	AvailabilityOnBreak     AvailabilityStatus = "on_break"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// StaffMember is a hospital staff member's identity and capability profile
type StaffMember struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Role               Role       `json:"role"`
	Department         Department `json:"department"`
	SkillLevel         int        `json:"skill_level"`        // 1-10
	MaxHoursPerWeek    int        `json:"max_hours_per_week"` // 20-60
	PreferredShifts    []string   `json:"preferred_shifts"`   // shift type tags
	UnavailableDates   []string   `json:"unavailable_dates"`  // YYYY-MM-DD
	CertificationLevel string     `json:"certification_level"`
	ExperienceYears    int        `json:"experience_years"`
	HourlyRate         float64    `json:"hourly_rate"`
}

// Shift is a staffing need for a date/time window
type Shift struct {
	ID                  string         `json:"id"`
	Date                string         `json:"date"` // YYYY-MM-DD
	ShiftType           ShiftType      `json:"shift_type"`
	Department          string         `json:"department"`     // free-form, not the staff enum
	StartTime           string         `json:"start_time"`     // HH:MM
	EndTime             string         `json:"end_time"`       // HH:MM
	RequiredStaff       map[string]int `json:"required_staff"` // role -> headcount
	MinimumSkillLevel   int            `json:"minimum_skill_level"`
	Priority            Priority       `json:"priority"`
	SpecialRequirements []string       `json:"special_requirements"`
	MaxCapacity         int            `json:"max_capacity"`

	Status          ShiftStatus `json:"status"`
	ActualStartTime string      `json:"actual_start_time,omitempty"`
	ActualEndTime   string      `json:"actual_end_time,omitempty"`
	IsExtended      bool        `json:"is_extended"`
	CompletionNotes string      `json:"completion_notes,omitempty"`
}

// AllocationRecord binds one staff member to one shift
type AllocationRecord struct {
	ID              string           `json:"id"`
	StaffID         string           `json:"staff_id"`
	ShiftID         string           `json:"shift_id"`
	Status          AllocationStatus `json:"status"`
	AssignedAt      string           `json:"assigned_at,omitempty"`
	ConfidenceScore float64          `json:"confidence_score"`
	Reasoning       string           `json:"reasoning"`
	ConstraintsMet  []string         `json:"constraints_met"`
	PotentialIssues []string         `json:"potential_issues"`

	CheckedInAt   string  `json:"checked_in_at,omitempty"`
	CheckedOutAt  string  `json:"checked_out_at,omitempty"`
	IsPresent     bool    `json:"is_present"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// HoursWorked derives the hours between check-in and check-out, rounded to
// 2 decimals. Returns 0 if either timestamp is missing or unparsable.
func (a AllocationRecord) HoursWorked() float64 {
	if a.CheckedInAt == "" || a.CheckedOutAt == "" {
		return 0
	}

	checkIn, err := ParseTimestamp(a.CheckedInAt)
	if err != nil {
		return 0
	}
	checkOut, err := ParseTimestamp(a.CheckedOutAt)
	if err != nil {
		return 0
	}

	hours := checkOut.Sub(checkIn).Hours()
	return math.Round(hours*100) / 100
}

// StaffAvailability is the current real-time status of one staff member
type StaffAvailability struct {
	ID             string             `json:"id"`
	StaffID        string             `json:"staff_id"`
	Status         AvailabilityStatus `json:"status"`
	CurrentShiftID string             `json:"current_shift_id,omitempty"`
	AvailableFrom  string             `json:"available_from,omitempty"`
	LastUpdated    string             `json:"last_updated"`
	Location       string             `json:"location,omitempty"`
	Notes          string             `json:"notes,omitempty"`
}

// AvailabilityTimeline is one append-only entry in a staff member's status history
type AvailabilityTimeline struct {
	ID        string             `json:"id"`
	StaffID   string             `json:"staff_id"`
	Status    AvailabilityStatus `json:"status"`
	ChangedAt string             `json:"changed_at"`
	ChangedBy string             `json:"changed_by"`
	Reason    string             `json:"reason,omitempty"`
	ShiftID   string             `json:"shift_id,omitempty"`
}

// TimestampLayout is the zone-less layout event timestamps are written in.
const TimestampLayout = "2006-01-02T15:04:05"

// timestampLayouts are the accepted wire formats for event timestamps.
// Zone-less timestamps appear whenever the original writer used local time.
var timestampLayouts = []string{
	time.RFC3339,
	TimestampLayout,
}

// NowTimestamp returns the current local time in TimestampLayout.
func NowTimestamp() string {
	return time.Now().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp with or without a zone offset.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
