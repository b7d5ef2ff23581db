package findings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/lifecycle"
	"github.com/de-tools/audit-atlas/pkg/services/tat"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	findingstore "github.com/de-tools/audit-atlas/pkg/store/memory/findings"
)

const actorRoleHeader = "X-Actor-Role"

type Handler struct {
	engine *lifecycle.Engine
	store  findingstore.Store
	plans  actionplans.Store
	now    func() time.Time
}

func NewHandler(engine *lifecycle.Engine, store findingstore.Store, plans actionplans.Store) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
		plans:  plans,
		now:    time.Now,
	}
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
	case errors.Is(err, findingstore.ErrNotFound):
		writeJSON(w, logger, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrTransitionRejected):
		writeJSON(w, logger, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		logger.Error().Err(err).Msg("command failed")
		writeJSON(w, logger, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return adapters.ParseDate(s)
}

func (h *Handler) toAPI(f domain.Finding) api.Finding {
	return adapters.MapFindingDomainToApi(f, tat.DaysRemaining(f.Deadline, h.now()))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	records, err := h.store.List(ctx)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	status := r.URL.Query().Get("status")
	auditType := r.URL.Query().Get("audit_type")

	response := make([]api.Finding, 0, len(records))
	for _, rec := range records {
		f := adapters.MapStoreFindingToDomain(rec)
		if status != "" && f.Status.Normalize() != domain.FindingStatus(status).Normalize() {
			continue
		}
		if auditType != "" && string(f.AuditType) != auditType {
			continue
		}
		response = append(response, h.toAPI(f))
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

	writeJSON(w, logger, http.StatusOK, h.toAPI(adapters.MapStoreFindingToDomain(rec)))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CreateFindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil && req.Deadline != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid deadline: " + req.Deadline})
		return
	}
	finding, err := h.engine.CreateFinding(ctx, actorRole(r), lifecycle.CreateFinding{
		AuditPlanID:    req.AuditPlanID,
		Statement:      req.Statement,
		Requirement:    req.Requirement,
		Evidence:       req.Evidence,
		Type:           domain.FindingType(req.FindingType),
		ClauseNumber:   req.ClauseNumber,
		Area:           req.Area,
		Auditor:        req.Auditor,
		Auditee:        req.Auditee,
		Deadline:       deadline,
		AttachmentName: req.AttachmentName,
		AuditType:      domain.AuditType(req.AuditType),
		ProcessName:    req.ProcessName,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if finding.ID == "" {
		// role outside the raising matrix, swallowed by the engine
		writeJSON(w, logger, http.StatusForbidden, map[string]string{"error": "role not permitted"})
		return
	}

	writeJSON(w, logger, http.StatusCreated, h.toAPI(finding))
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	var req api.EditFindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil && req.Deadline != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid deadline: " + req.Deadline})
		return
	}
	finding, err := h.engine.EditFinding(ctx, actorRole(r), id, lifecycle.EditFinding{
		Statement:      req.Statement,
		Requirement:    req.Requirement,
		Evidence:       req.Evidence,
		Type:           domain.FindingType(req.FindingType),
		ClauseNumber:   req.ClauseNumber,
		Area:           req.Area,
		Auditee:        req.Auditee,
		Deadline:       deadline,
		AttachmentName: req.AttachmentName,
		AuditType:      domain.AuditType(req.AuditType),
		ProcessName:    req.ProcessName,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, h.toAPI(finding))
}

func (h *Handler) SubmitPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	var req api.SubmitActionPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	dueDate, err := parseDeadline(req.DueDate)
	if err != nil && req.DueDate != "" {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid due date: " + req.DueDate})
		return
	}
	finding, plan, err := h.engine.SubmitActionPlan(ctx, actorRole(r), id, lifecycle.SubmitActionPlan{
		ImmediateCorrection: req.ImmediateCorrection,
		ResponsiblePerson:   req.ResponsiblePerson,
		RootCause:           req.RootCause,
		CorrectiveAction:    req.CorrectiveAction,
		DueDate:             dueDate,
		Remarks:             req.Remarks,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, api.SubmitActionPlanResponse{
		Finding:    h.toAPI(finding),
		ActionPlan: adapters.MapActionPlanDomainToApi(plan),
	})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	finding, err := h.engine.Approve(ctx, actorRole(r), id)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, h.toAPI(finding))
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	var req api.RejectFindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	finding, err := h.engine.Reject(ctx, actorRole(r), id, req.Remarks)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, h.toAPI(finding))
}

// PlanHistory returns every corrective-action submission for a finding in
// submission order; the last entry is the current plan.
func (h *Handler) PlanHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if _, err := h.store.Get(ctx, id); err != nil {
		writeError(w, logger, err)
		return
	}

	records, err := h.plans.ListByFinding(ctx, id)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	response := make([]api.ActionPlan, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapActionPlanDomainToApi(adapters.MapStoreActionPlanToDomain(rec)))
	}

	writeJSON(w, logger, http.StatusOK, response)
}
