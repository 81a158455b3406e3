package handler

import (
	"net/http"
	"time"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

type healthStats struct {
	StaffCount      int `json:"staff_count"`
	ShiftCount      int `json:"shift_count"`
	AllocationCount int `json:"allocation_count"`
}

type healthReport struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Database  healthStats `json:"database"`
	Advisory  string      `json:"advisory"`
}

// Health reports whether the store is reachable and whether an advisory
// client is configured. The advisory is never probed with a live call.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	staff, err := h.store.GetStaffMembers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	shifts, err := h.store.GetShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	allocations, err := h.store.GetAllocations(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	advisoryStatus := "disabled"
	if h.advisory != nil {
		advisoryStatus = "configured"
	}

	h.successResponse(w, r, "Service healthy", healthReport{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database: healthStats{
			StaffCount:      len(staff),
			ShiftCount:      len(shifts),
			AllocationCount: len(allocations),
		},
		Advisory: advisoryStatus,
	})
}

func (h *Handler) SystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.SystemStatistics(r.Context(), h.store, h.logger)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "System statistics retrieved", stats)
}

func (h *Handler) ResetDemoData(w http.ResponseWriter, r *http.Request) {
	if err := h.resetDemoData(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staff, err := h.store.GetStaffMembers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	shifts, err := h.store.GetShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	allocations, err := h.store.GetAllocations(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Demo data reset successfully", healthStats{
		StaffCount:      len(staff),
		ShiftCount:      len(shifts),
		AllocationCount: len(allocations),
	})
}
