// Package handler exposes the allocation engine over HTTP. Every response
// uses the {success, message, data} envelope; request payloads are
// validated with go-playground/validator and errors are translated to
// English before they reach the client.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/notify"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/seed"
)

type Handler struct {
	validate   *validator.Validate
	translator ut.Translator
	store      db.Database
	advisory   services.AdvisoryClient
	publisher  *notify.Publisher
	logger     *zap.Logger

	Mux *chi.Mux
}

// NewHandler wires the HTTP layer. The advisory client and publisher may
// be nil; the affected operations degrade to their deterministic paths.
func NewHandler(store db.Database, advisory services.AdvisoryClient, publisher *notify.Publisher, logger *zap.Logger) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		translator: trans,
		store:      store,
		advisory:   advisory,
		publisher:  publisher,
		logger:     logger,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)

	h.Mux.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.SystemStats)
		r.Post("/demo/reset", h.ResetDemoData)

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.GetAllStaff)
			r.Post("/", h.CreateStaff)
			r.Get("/working", h.GetWorkingStaff)
			r.Get("/department/{department}", h.GetStaffByDepartment)
			r.Get("/role/{role}", h.GetStaffByRole)
			r.Get("/available/current", h.GetCurrentlyAvailableStaff)
			r.Get("/available/for-date/{date}", h.GetAvailableStaffForDate)
			r.Get("/analysis/skills", h.GetSkillsAnalysis)
			r.Get("/analysis/workload", h.GetWorkloadAnalysis)
			r.Get("/suggestions/shift/{shiftID}", h.GetStaffSuggestionsForShift)
			r.Route("/{staffID}", func(r chi.Router) {
				r.Get("/", h.GetStaff)
				r.Put("/", h.UpdateStaff)
				r.Delete("/", h.DeleteStaff)
				r.Get("/timeline", h.GetAvailabilityTimeline)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetAllShifts)
			r.Post("/", h.CreateShift)
			r.Get("/search", h.SearchShifts)
			r.Get("/date/{date}", h.GetShiftsByDate)
			r.Get("/department/{department}", h.GetShiftsByDepartment)
			r.Get("/analytics/coverage", h.GetCoverageAnalytics)
			r.Route("/{shiftID}", func(r chi.Router) {
				r.Get("/", h.GetShift)
				r.Put("/", h.UpdateShift)
				r.Delete("/", h.DeleteShift)
				r.Get("/requirements", h.GetShiftRequirements)
			})
		})

		r.Route("/allocations", func(r chi.Router) {
			r.Get("/", h.GetAllAllocations)
			r.Post("/create", h.CreateAllocation)
			r.Post("/batch-create", h.CreateBatchAllocations)
			r.Post("/auto-allocate", h.AutoAllocate)
			r.Post("/optimize", h.OptimizeAllocations)
			r.Get("/staff/{staffID}", h.GetAllocationsByStaff)
			r.Get("/shift/{shiftID}", h.GetAllocationsByShift)
			r.Get("/date/{date}", h.GetAllocationsByDate)
			r.Get("/summary/{dateRange}", h.GetAllocationSummary)
			r.Get("/conflicts/{dateRange}", h.GetConflictAnalysis)
			r.Get("/alternatives/shift/{shiftID}", h.GetAlternativeAllocations)
			r.Get("/analytics/utilization", h.GetUtilizationAnalytics)
			r.Route("/{allocationID}", func(r chi.Router) {
				r.Get("/", h.GetAllocation)
				r.Delete("/", h.DeleteAllocation)
				r.Put("/status", h.UpdateAllocationStatus)
				r.Get("/validate", h.ValidateAllocation)
			})
		})
	})
}

// resetDemoData wipes every entity and reloads the demo dataset.
func (h *Handler) resetDemoData(ctx context.Context) error {
	allocations, err := h.store.GetAllocations(ctx)
	if err != nil {
		return err
	}
	for _, allocation := range allocations {
		if err := h.store.DeleteAllocation(ctx, allocation.ID); err != nil {
			return err
		}
	}

	shifts, err := h.store.GetShifts(ctx)
	if err != nil {
		return err
	}
	for _, shift := range shifts {
		if err := h.store.DeleteShift(ctx, shift.ID); err != nil {
			return err
		}
	}

	staff, err := h.store.GetStaffMembers(ctx)
	if err != nil {
		return err
	}
	for _, member := range staff {
		if err := h.store.DeleteStaffMember(ctx, member.ID); err != nil {
			return err
		}
	}

	return seed.Load(ctx, h.store)
}
