package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
)

type staffPayload struct {
	Name               string   `json:"name" validate:"required"`
	Role               string   `json:"role" validate:"required,oneof=doctor nurse technician administrative support"`
	Department         string   `json:"department" validate:"required,oneof=emergency icu surgery pediatrics cardiology general"`
	SkillLevel         int      `json:"skill_level" validate:"required,min=1,max=10"`
	MaxHoursPerWeek    int      `json:"max_hours_per_week" validate:"required,min=20,max=60"`
	PreferredShifts    []string `json:"preferred_shifts"`
	UnavailableDates   []string `json:"unavailable_dates"`
	CertificationLevel string   `json:"certification_level"`
	ExperienceYears    int      `json:"experience_years" validate:"min=0"`
	HourlyRate         float64  `json:"hourly_rate" validate:"required,gt=0"`
}

func (p *staffPayload) toModel(id string) *model.StaffMember {
	preferred := p.PreferredShifts
	if preferred == nil {
		preferred = []string{}
	}
	unavailable := p.UnavailableDates
	if unavailable == nil {
		unavailable = []string{}
	}
	return &model.StaffMember{
		ID:                 id,
		Name:               p.Name,
		Role:               model.Role(p.Role),
		Department:         model.Department(p.Department),
		SkillLevel:         p.SkillLevel,
		MaxHoursPerWeek:    p.MaxHoursPerWeek,
		PreferredShifts:    preferred,
		UnavailableDates:   unavailable,
		CertificationLevel: p.CertificationLevel,
		ExperienceYears:    p.ExperienceYears,
		HourlyRate:         p.HourlyRate,
	}
}

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.store.GetStaffMembers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Staff members retrieved", staff)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.store.GetStaffMember(r.Context(), chi.URLParam(r, "staffID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if staff == nil {
		h.notFound(w, r, "Staff member not found")
		return
	}
	h.successResponse(w, r, "Staff member retrieved", staff)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff := req.toModel(model.NewID("staff"))
	if err := h.store.InsertStaffMember(r.Context(), staff); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Staff member created", staff)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	existing, err := h.store.GetStaffMember(r.Context(), staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if existing == nil {
		h.notFound(w, r, "Staff member not found")
		return
	}

	var req staffPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff := req.toModel(staffID)
	if err := h.store.UpdateStaffMember(r.Context(), staff); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Staff member updated", staff)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	existing, err := h.store.GetStaffMember(r.Context(), staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if existing == nil {
		h.notFound(w, r, "Staff member not found")
		return
	}

	if err := h.store.DeleteStaffMember(r.Context(), staffID); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Staff member deleted", nil)
}

func (h *Handler) GetStaffByDepartment(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	all, err := h.store.GetStaffMembers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staff := []model.StaffMember{}
	for _, member := range all {
		if string(member.Department) == department {
			staff = append(staff, member)
		}
	}
	h.successResponse(w, r, "Staff members retrieved", staff)
}

func (h *Handler) GetStaffByRole(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	all, err := h.store.GetStaffMembers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staff := []model.StaffMember{}
	for _, member := range all {
		if string(member.Role) == role {
			staff = append(staff, member)
		}
	}
	h.successResponse(w, r, "Staff members retrieved", staff)
}

func (h *Handler) GetWorkingStaff(w http.ResponseWriter, r *http.Request) {
	working, err := services.WorkingStaff(r.Context(), h.store, h.logger, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Working staff retrieved", working)
}

func (h *Handler) GetCurrentlyAvailableStaff(w http.ResponseWriter, r *http.Request) {
	available, err := services.AvailableStaffNow(r.Context(), h.store, h.logger, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Available staff retrieved", available)
}

func (h *Handler) GetAvailableStaffForDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	department := r.URL.Query().Get("department")

	staff, err := services.AvailableStaffForDate(r.Context(), h.store, date, department)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Available staff retrieved", staff)
}

func (h *Handler) GetSkillsAnalysis(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")

	analysis, err := services.AnalyzeStaffSkills(r.Context(), h.store, h.advisory, h.logger, department)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if analysis == nil {
		h.notFound(w, r, "No staff found for analysis")
		return
	}
	h.successResponse(w, r, "Skills analysis complete", analysis)
}

func (h *Handler) GetWorkloadAnalysis(w http.ResponseWriter, r *http.Request) {
	staffID := r.URL.Query().Get("staff_id")

	analysis, err := services.AnalyzeStaffWorkload(r.Context(), h.store, staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Workload analysis complete", analysis)
}

func (h *Handler) GetStaffSuggestionsForShift(w http.ResponseWriter, r *http.Request) {
	suggestions, err := services.SuggestStaffForShift(r.Context(), h.store, h.logger, chi.URLParam(r, "shiftID"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(suggestions) == 0 {
		h.notFound(w, r, "No suitable staff found or shift not found")
		return
	}
	h.successResponse(w, r, "Staff suggestions retrieved", suggestions)
}

func (h *Handler) GetAvailabilityTimeline(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		limit = parsed
	}

	timeline, err := services.AvailabilityTimeline(r.Context(), h.store, chi.URLParam(r, "staffID"), limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Availability timeline retrieved", timeline)
}
