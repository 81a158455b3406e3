package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

type shiftPayload struct {
	Date                string         `json:"date" validate:"required,datetime=2006-01-02"`
	ShiftType           string         `json:"shift_type" validate:"required,oneof=morning afternoon evening night on_call"`
	Department          string         `json:"department" validate:"required"`
	StartTime           string         `json:"start_time" validate:"required,datetime=15:04"`
	EndTime             string         `json:"end_time" validate:"required,datetime=15:04"`
	RequiredStaff       map[string]int `json:"required_staff"`
	MinimumSkillLevel   int            `json:"minimum_skill_level" validate:"omitempty,min=1,max=10"`
	Priority            string         `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	SpecialRequirements []string       `json:"special_requirements"`
	MaxCapacity         int            `json:"max_capacity" validate:"required,min=1"`
}

func (p *shiftPayload) toModel(id string) *model.Shift {
	required := p.RequiredStaff
	if required == nil {
		required = map[string]int{}
	}
	special := p.SpecialRequirements
	if special == nil {
		special = []string{}
	}
	priority := model.Priority(p.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	minSkill := p.MinimumSkillLevel
	if minSkill == 0 {
		minSkill = 1
	}
	return &model.Shift{
		ID:                  id,
		Date:                p.Date,
		ShiftType:           model.ShiftType(p.ShiftType),
		Department:          p.Department,
		StartTime:           p.StartTime,
		EndTime:             p.EndTime,
		RequiredStaff:       required,
		MinimumSkillLevel:   minSkill,
		Priority:            priority,
		SpecialRequirements: special,
		MaxCapacity:         p.MaxCapacity,
		Status:              model.ShiftScheduled,
	}
}

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.store.GetShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Shifts retrieved", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift, err := h.store.GetShift(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if shift == nil {
		h.notFound(w, r, "Shift not found")
		return
	}
	h.successResponse(w, r, "Shift retrieved", shift)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shiftPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := req.toModel(model.NewID("shift"))
	if err := h.store.InsertShift(r.Context(), shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Shift created", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")
	existing, err := h.store.GetShift(r.Context(), shiftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if existing == nil {
		h.notFound(w, r, "Shift not found")
		return
	}

	var req shiftPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Lifecycle fields survive the update untouched
	shift := req.toModel(shiftID)
	shift.Status = existing.Status
	shift.ActualStartTime = existing.ActualStartTime
	shift.ActualEndTime = existing.ActualEndTime
	shift.IsExtended = existing.IsExtended
	shift.CompletionNotes = existing.CompletionNotes

	if err := h.store.UpdateShift(r.Context(), shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")
	existing, err := h.store.GetShift(r.Context(), shiftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if existing == nil {
		h.notFound(w, r, "Shift not found")
		return
	}

	if err := h.store.DeleteShift(r.Context(), shiftID); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Shift deleted", nil)
}

func (h *Handler) GetShiftsByDate(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.store.GetShiftsByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Shifts retrieved", shifts)
}

func (h *Handler) GetShiftsByDepartment(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	all, err := h.store.GetShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts := []model.Shift{}
	for _, shift := range all {
		if strings.EqualFold(shift.Department, department) {
			shifts = append(shifts, shift)
		}
	}
	h.successResponse(w, r, "Shifts retrieved", shifts)
}

// SearchShifts filters shifts by any combination of date, department,
// shift_type and priority query parameters.
func (h *Handler) SearchShifts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date := query.Get("date")
	department := query.Get("department")
	shiftType := query.Get("shift_type")
	priority := query.Get("priority")

	all, err := h.store.GetShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts := []model.Shift{}
	for _, shift := range all {
		if date != "" && shift.Date != date {
			continue
		}
		if department != "" && !strings.EqualFold(shift.Department, department) {
			continue
		}
		if shiftType != "" && !strings.EqualFold(string(shift.ShiftType), shiftType) {
			continue
		}
		if priority != "" && !strings.EqualFold(string(shift.Priority), priority) {
			continue
		}
		shifts = append(shifts, shift)
	}
	h.successResponse(w, r, "Shifts retrieved", shifts)
}

func (h *Handler) GetShiftRequirements(w http.ResponseWriter, r *http.Request) {
	requirements, err := services.ShiftRequirementsStatus(r.Context(), h.store, h.logger, chi.URLParam(r, "shiftID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if requirements == nil {
		h.notFound(w, r, "Shift not found")
		return
	}
	h.successResponse(w, r, "Shift requirements retrieved", requirements)
}

func (h *Handler) GetCoverageAnalytics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	analytics, err := services.AnalyzeCoverage(r.Context(), h.store, h.logger, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Coverage analytics retrieved", analytics)
}
