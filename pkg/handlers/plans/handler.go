package plans

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/lifecycle"
	planstore "github.com/de-tools/audit-atlas/pkg/store/memory/auditplans"
)

const actorRoleHeader = "X-Actor-Role"

type Handler struct {
	engine *lifecycle.PlanEngine
	store  planstore.Store
}

func NewHandler(engine *lifecycle.PlanEngine, store planstore.Store) *Handler {
	return &Handler{engine: engine, store: store}
}

func actorRole(r *http.Request) domain.Role {
	return domain.Role(r.Header.Get(actorRoleHeader))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var ve *lifecycle.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, planstore.ErrNotFound):
		writeJSON(w, logger, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrTransitionRejected):
		writeJSON(w, logger, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		logger.Error().Err(err).Msg("command failed")
		writeJSON(w, logger, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	records, err := h.store.List(ctx)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	response := make([]api.AuditPlan, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapAuditPlanDomainToApi(adapters.MapStoreAuditPlanToDomain(rec)))
	}

	writeJSON(w, logger, http.StatusOK, response)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	rec, err := h.store.Get(ctx, id)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAuditPlanDomainToApi(adapters.MapStoreAuditPlanToDomain(rec)))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CreateAuditPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	start, err := adapters.ParseDate(req.StartDate)
	if err != nil && req.StartDate != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid start date: " + req.StartDate})
		return
	}
	end, err := adapters.ParseDate(req.EndDate)
	if err != nil && req.EndDate != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid end date: " + req.EndDate})
		return
	}
	plan, err := h.engine.Create(ctx, actorRole(r), lifecycle.CreateAuditPlan{
		StartDate:      start,
		EndDate:        end,
		Auditors:       req.Auditors,
		Auditees:       req.Auditees,
		AttachmentName: req.AttachmentName,
		AuditType:      domain.AuditType(req.AuditType),
		ProcessName:    req.ProcessName,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if plan.ID == "" {
		writeJSON(w, logger, http.StatusForbidden, map[string]string{"error": "role not permitted"})
		return
	}

	writeJSON(w, logger, http.StatusCreated, adapters.MapAuditPlanDomainToApi(plan))
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	var req api.EditAuditPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	start, err := adapters.ParseDate(req.StartDate)
	if err != nil && req.StartDate != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid start date: " + req.StartDate})
		return
	}
	end, err := adapters.ParseDate(req.EndDate)
	if err != nil && req.EndDate != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid end date: " + req.EndDate})
		return
	}
	plan, err := h.engine.Edit(ctx, actorRole(r), id, lifecycle.EditAuditPlan{
		StartDate:      start,
		EndDate:        end,
		Auditors:       req.Auditors,
		Auditees:       req.Auditees,
		AttachmentName: req.AttachmentName,
		AuditType:      domain.AuditType(req.AuditType),
		ProcessName:    req.ProcessName,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAuditPlanDomainToApi(plan))
}

// Advance moves a plan one stage forward in its fixed Draft -> Planned ->
// Actual Audit -> Closed order.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	plan, err := h.engine.Advance(ctx, actorRole(r), id)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAuditPlanDomainToApi(plan))
}
