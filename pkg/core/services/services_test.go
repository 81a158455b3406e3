package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/clients/groqclient"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/memstore"
)

// mockAdvisory implements AdvisoryClient for testing. Each method returns
// the configured value and counts its calls.
type mockAdvisory struct {
	analysis     *groqclient.AllocationAnalysis
	evaluation   *groqclient.ConstraintEvaluation
	optimization *groqclient.ScheduleOptimization
	response     string
	responseErr  error

	analyzeCalls  int
	evaluateCalls int
	optimizeCalls int
	generateCalls int
}

func (m *mockAdvisory) AnalyzeStaffAllocation(_ context.Context, _, _ any) *groqclient.AllocationAnalysis {
	m.analyzeCalls++
	if m.analysis != nil {
		return m.analysis
	}
	return &groqclient.AllocationAnalysis{Recommendations: []groqclient.AllocationRecommendation{}}
}

func (m *mockAdvisory) EvaluateAllocationConstraints(_ context.Context, _ any) *groqclient.ConstraintEvaluation {
	m.evaluateCalls++
	if m.evaluation != nil {
		return m.evaluation
	}
	return &groqclient.ConstraintEvaluation{IsValid: true}
}

func (m *mockAdvisory) OptimizeSchedule(_ context.Context, _ any, _ []string) *groqclient.ScheduleOptimization {
	m.optimizeCalls++
	if m.optimization != nil {
		return m.optimization
	}
	return &groqclient.ScheduleOptimization{ImplementationPlan: []string{}}
}

func (m *mockAdvisory) GenerateResponse(_ context.Context, _, _ string) (string, error) {
	m.generateCalls++
	return m.response, m.responseErr
}

func testStaff(id, name string, role model.Role, department model.Department, skillLevel int) model.StaffMember {
	return model.StaffMember{
		ID:                 id,
		Name:               name,
		Role:               role,
		Department:         department,
		SkillLevel:         skillLevel,
		MaxHoursPerWeek:    50,
		PreferredShifts:    []string{"morning"},
		UnavailableDates:   []string{},
		CertificationLevel: "senior",
		ExperienceYears:    8,
		HourlyRate:         50.0,
	}
}

func testShift(id, date string, department string, minSkill, maxCapacity int) model.Shift {
	return model.Shift{
		ID:                id,
		Date:              date,
		ShiftType:         model.ShiftMorning,
		Department:        department,
		StartTime:         "07:00",
		EndTime:           "15:00",
		RequiredStaff:     map[string]int{"doctor": 1},
		MinimumSkillLevel: minSkill,
		Priority:          model.PriorityHigh,
		MaxCapacity:       maxCapacity,
		Status:            model.ShiftScheduled,
	}
}

// seededStore builds a store with one emergency doctor and one emergency
// morning shift that together validate cleanly.
func seededStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	doctor := testStaff("staff_001", "Dr. Priya Raman", model.RoleDoctor, model.DepartmentEmergency, 9)
	require.NoError(t, store.InsertStaffMember(ctx, &doctor))

	shift := testShift("shift_001", "2024-07-20", "emergency", 7, 3)
	require.NoError(t, store.InsertShift(ctx, &shift))

	return store
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
