package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/memstore"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/seed"
)

func testHandler(t *testing.T) (*Handler, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, seed.Load(context.Background(), store))

	h, err := NewHandler(store, nil, nil, zap.NewNop())
	require.NoError(t, err)
	h.RegisterRoutes()
	return h, store
}

func doRequest(t *testing.T, h *Handler, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealth_ReportsSeedCounts(t *testing.T) {
	h, _ := testHandler(t)

	rec, resp := doRequest(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "disabled", data["advisory"])

	database := data["database"].(map[string]any)
	assert.EqualValues(t, 6, database["staff_count"])
	assert.EqualValues(t, 5, database["shift_count"])
	assert.EqualValues(t, 2, database["allocation_count"])
}

func TestGetStaff_NotFound(t *testing.T) {
	h, _ := testHandler(t)

	rec, resp := doRequest(t, h, http.MethodGet, "/api/staff/staff_404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Staff member not found", resp.Message)
}

func TestCreateStaff_ValidationError(t *testing.T) {
	h, _ := testHandler(t)

	// skill_level above the 1-10 range
	payload := `{"name":"Dr. New","role":"doctor","department":"icu","skill_level":11,"max_hours_per_week":40,"hourly_rate":60}`
	rec, resp := doRequest(t, h, http.MethodPost, "/api/staff/", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "SkillLevel")
}

func TestCreateStaff_InitializesAvailability(t *testing.T) {
	h, store := testHandler(t)

	payload := `{"name":"Dr. New","role":"doctor","department":"icu","skill_level":8,"max_hours_per_week":40,"hourly_rate":60}`
	rec, resp := doRequest(t, h, http.MethodPost, "/api/staff/", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	created := resp.Data.(map[string]any)
	staffID := created["id"].(string)
	assert.True(t, strings.HasPrefix(staffID, "staff_"))

	availability, err := store.GetAvailability(context.Background(), staffID)
	require.NoError(t, err)
	require.NotNil(t, availability)
	assert.Equal(t, "available", string(availability.Status))
}

func TestSearchShifts_Filters(t *testing.T) {
	h, _ := testHandler(t)

	_, resp := doRequest(t, h, http.MethodGet, "/api/shifts/search?department=emergency&shift_type=morning", "")
	require.True(t, resp.Success)

	shifts := resp.Data.([]any)
	require.Len(t, shifts, 1)
	shift := shifts[0].(map[string]any)
	assert.Equal(t, "shift_001", shift["id"])
}

func TestCreateAllocation_MissingEntities(t *testing.T) {
	h, _ := testHandler(t)

	payload := `{"staff_id":"staff_404","shift_id":"shift_001"}`
	rec, resp := doRequest(t, h, http.MethodPost, "/api/allocations/create", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Check if staff and shift exist")
}

func TestUpdateAllocationStatus_Invalid(t *testing.T) {
	h, _ := testHandler(t)

	rec, resp := doRequest(t, h, http.MethodPut, "/api/allocations/allocation_001/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestUpdateAllocationStatus_Rejects(t *testing.T) {
	h, store := testHandler(t)

	rec, resp := doRequest(t, h, http.MethodPut, "/api/allocations/allocation_001/status", `{"status":"rejected"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	allocation, err := store.GetAllocation(context.Background(), "allocation_001")
	require.NoError(t, err)
	assert.Equal(t, "rejected", string(allocation.Status))
}

func TestGetAlternatives_UnknownShift(t *testing.T) {
	h, _ := testHandler(t)

	rec, resp := doRequest(t, h, http.MethodGet, "/api/allocations/alternatives/shift/shift_404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestGetShiftRequirements_Seeded(t *testing.T) {
	h, _ := testHandler(t)

	_, resp := doRequest(t, h, http.MethodGet, "/api/shifts/shift_001/requirements", "")
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "shift_001", data["shift_id"])
	assert.NotNil(t, data["remaining_requirements"])
}

func TestResetDemoData_RestoresCounts(t *testing.T) {
	h, store := testHandler(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteAllocation(ctx, "allocation_001"))
	require.NoError(t, store.DeleteAllocation(ctx, "allocation_002"))

	rec, resp := doRequest(t, h, http.MethodPost, "/api/demo/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 6, data["staff_count"])
	assert.EqualValues(t, 5, data["shift_count"])
	assert.EqualValues(t, 2, data["allocation_count"])
}

func TestResetDemoData_ClearsAvailabilityHistory(t *testing.T) {
	h, store := testHandler(t)
	ctx := context.Background()

	_, err := services.UpdateStaffAvailability(ctx, store, h.logger, "staff_001", services.AvailabilityUpdate{
		Status: model.AvailabilityUnavailable,
		Notes:  "Called in sick",
	})
	require.NoError(t, err)

	rec, resp := doRequest(t, h, http.MethodPost, "/api/demo/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	availability, err := store.GetAvailability(ctx, "staff_001")
	require.NoError(t, err)
	require.NotNil(t, availability)
	assert.Equal(t, model.AvailabilityAvailable, availability.Status)

	timeline, err := store.GetTimeline(ctx, "staff_001", 0)
	require.NoError(t, err)
	assert.Empty(t, timeline)
}

func TestGetUtilizationAnalytics_Seeded(t *testing.T) {
	h, _ := testHandler(t)

	_, resp := doRequest(t, h, http.MethodGet, "/api/allocations/analytics/utilization", "")
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.EqualValues(t, 6, summary["total_staff"])
	assert.EqualValues(t, 2, summary["total_allocations"])
}
