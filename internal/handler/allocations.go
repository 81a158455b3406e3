package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

type allocationPayload struct {
	StaffID         string  `json:"staff_id" validate:"required"`
	ShiftID         string  `json:"shift_id" validate:"required"`
	ConfidenceScore float64 `json:"confidence_score" validate:"omitempty,min=0,max=1"`
	Reasoning       string  `json:"reasoning"`
}

func (h *Handler) GetAllAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.store.GetAllocations(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Allocations retrieved", allocations)
}

func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.store.GetAllocation(r.Context(), chi.URLParam(r, "allocationID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if allocation == nil {
		h.notFound(w, r, "Allocation not found")
		return
	}
	h.successResponse(w, r, "Allocation retrieved", allocation)
}

func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var req allocationPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.ConfidenceScore == 0 {
		req.ConfidenceScore = 0.5
	}

	allocation, err := services.CreateAllocation(r.Context(), h.store, h.advisory, h.logger,
		req.StaffID, req.ShiftID, req.ConfidenceScore, req.Reasoning)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if allocation == nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Failed to create allocation. Check if staff and shift exist.")
		return
	}
	h.successResponse(w, r, "Allocation created", allocation)
}

type batchResult struct {
	Success    bool                    `json:"success"`
	Allocation *model.AllocationRecord `json:"allocation"`
	Message    string                  `json:"message"`
}

type batchSummary struct {
	TotalRequests int `json:"total_requests"`
	Successful    int `json:"successful"`
	Failed        int `json:"failed"`
}

// CreateBatchAllocations creates allocations one by one; a failed item
// never aborts the rest of the batch.
func (h *Handler) CreateBatchAllocations(w http.ResponseWriter, r *http.Request) {
	var reqs []allocationPayload
	if err := h.readJSON(r, &reqs); err != nil {
		h.badRequest(w, r, err)
		return
	}

	results := make([]batchResult, 0, len(reqs))
	successful := 0
	for _, req := range reqs {
		if req.ConfidenceScore == 0 {
			req.ConfidenceScore = 0.5
		}
		reasoning := req.Reasoning
		if reasoning == "" {
			reasoning = "Batch allocation"
		}

		allocation, err := services.CreateAllocation(r.Context(), h.store, h.advisory, h.logger,
			req.StaffID, req.ShiftID, req.ConfidenceScore, reasoning)
		switch {
		case err != nil:
			results = append(results, batchResult{Success: false, Message: fmt.Sprintf("Error: %s", err)})
		case allocation == nil:
			results = append(results, batchResult{Success: false, Message: "Failed to create allocation"})
		default:
			results = append(results, batchResult{Success: true, Allocation: allocation, Message: "Allocation created successfully"})
			successful++
		}
	}

	h.successResponse(w, r, "Batch allocation complete", map[string]any{
		"summary": batchSummary{
			TotalRequests: len(reqs),
			Successful:    successful,
			Failed:        len(reqs) - successful,
		},
		"results": results,
	})
}

type autoAllocatePayload struct {
	ShiftIDs    []string       `json:"shift_ids" validate:"required,min=1"`
	Preferences map[string]any `json:"preferences"`
}

func (h *Handler) AutoAllocate(w http.ResponseWriter, r *http.Request) {
	var req autoAllocatePayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result := services.AutoAllocate(r.Context(), h.store, h.advisory, h.publisher, h.logger,
		req.ShiftIDs, req.Preferences)
	h.successResponse(w, r, result.Message, result)
}

func (h *Handler) GetAllocationsByStaff(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.store.GetAllocationsByStaff(r.Context(), chi.URLParam(r, "staffID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Allocations retrieved", allocations)
}

func (h *Handler) GetAllocationsByShift(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.store.GetAllocationsByShift(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Allocations retrieved", allocations)
}

// GetAllocationsByDate resolves the shifts on a date and collects their
// allocations.
func (h *Handler) GetAllocationsByDate(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.store.GetShiftsByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	allocations := []model.AllocationRecord{}
	for _, shift := range shifts {
		forShift, err := h.store.GetAllocationsByShift(r.Context(), shift.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		allocations = append(allocations, forShift...)
	}
	h.successResponse(w, r, "Allocations retrieved", allocations)
}

type statusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed rejected completed"`
}

func (h *Handler) UpdateAllocationStatus(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.store.GetAllocation(r.Context(), chi.URLParam(r, "allocationID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if allocation == nil {
		h.notFound(w, r, "Allocation not found")
		return
	}

	var req statusPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	allocation.Status = model.AllocationStatus(req.Status)
	if allocation.Status == model.AllocationConfirmed && allocation.AssignedAt == "" {
		allocation.AssignedAt = model.NowTimestamp()
	}
	if err := h.store.UpdateAllocation(r.Context(), allocation); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Allocation status updated", allocation)
}

func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	allocationID := chi.URLParam(r, "allocationID")
	existing, err := h.store.GetAllocation(r.Context(), allocationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if existing == nil {
		h.notFound(w, r, "Allocation not found")
		return
	}

	if err := h.store.DeleteAllocation(r.Context(), allocationID); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Allocation deleted", nil)
}

func (h *Handler) GetAllocationSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := services.SummarizeAllocations(r.Context(), h.store, h.logger, chi.URLParam(r, "dateRange"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Allocation summary retrieved", summary)
}

func (h *Handler) ValidateAllocation(w http.ResponseWriter, r *http.Request) {
	result, err := services.ValidateAllocationByID(r.Context(), h.store, h.advisory, h.logger, chi.URLParam(r, "allocationID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if result == nil {
		h.notFound(w, r, "Allocation not found")
		return
	}
	h.successResponse(w, r, "Validation complete", result)
}

func (h *Handler) GetAlternativeAllocations(w http.ResponseWriter, r *http.Request) {
	excluded := []string{}
	if raw := r.URL.Query().Get("exclude_staff"); raw != "" {
		excluded = strings.Split(raw, ",")
	}

	alternatives, err := services.SuggestAlternatives(r.Context(), h.store, h.logger, chi.URLParam(r, "shiftID"), excluded)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(alternatives) == 0 {
		h.notFound(w, r, "No alternatives found or shift not found")
		return
	}
	h.successResponse(w, r, "Alternatives retrieved", alternatives)
}

type optimizePayload struct {
	DateRange string `json:"date_range" validate:"required"`
	Strategy  string `json:"strategy" validate:"omitempty,oneof=cost quality balance satisfaction"`
}

func (h *Handler) OptimizeAllocations(w http.ResponseWriter, r *http.Request) {
	var req optimizePayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Strategy == "" {
		req.Strategy = "balance"
	}

	report := services.OptimizeSchedule(r.Context(), h.store, h.advisory, h.logger, req.DateRange, req.Strategy)
	h.successResponse(w, r, "Optimization complete", report)
}

func (h *Handler) GetConflictAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := services.AnalyzeConflicts(r.Context(), h.store, h.advisory, h.logger, chi.URLParam(r, "dateRange"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Conflict analysis retrieved", analysis)
}

func (h *Handler) GetUtilizationAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := services.AnalyzeUtilization(r.Context(), h.store, h.logger)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Utilization analytics retrieved", analytics)
}
