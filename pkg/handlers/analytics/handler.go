package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/services/kpi"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/services/tat"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	findingstore "github.com/de-tools/audit-atlas/pkg/store/memory/findings"
)

type Handler struct {
	findings  findingstore.Store
	plans     actionplans.Store
	dir       *directory.Directory
	feed      *notify.Feed
	threshold int
	now       func() time.Time
}

func NewHandler(
	findings findingstore.Store,
	plans actionplans.Store,
	dir *directory.Directory,
	feed *notify.Feed,
	thresholdDays int,
) *Handler {
	if thresholdDays <= 0 {
		thresholdDays = tat.DefaultThresholdDays
	}
	return &Handler{
		findings:  findings,
		plans:     plans,
		dir:       dir,
		feed:      feed,
		threshold: thresholdDays,
		now:       time.Now,
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func internalError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	logger.Error().Err(err).Msg("analytics query failed")
	writeJSON(w, logger, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// thresholdDays reads an optional ?threshold= override; values below 1 fall
// back to the configured default.
func (h *Handler) thresholdDays(r *http.Request) int {
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return h.threshold
}

func (h *Handler) loadFindings(ctx context.Context, r *http.Request) ([]domain.Finding, error) {
	records, err := h.findings.List(ctx)
	if err != nil {
		return nil, err
	}
	findings := adapters.MapStoreFindingsToDomain(records)
	if auditType := r.URL.Query().Get("audit_type"); auditType != "" {
		findings = kpi.FilterByAuditType(findings, domain.AuditType(auditType))
	}
	return findings, nil
}

func (h *Handler) loadPlans(ctx context.Context) ([]domain.ActionPlan, error) {
	records, err := h.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreActionPlansToDomain(records), nil
}

func (h *Handler) managerKPIs(r *http.Request) ([]domain.ManagerKPI, error) {
	ctx := r.Context()
	findings, err := h.loadFindings(ctx, r)
	if err != nil {
		return nil, err
	}
	plans, err := h.loadPlans(ctx)
	if err != nil {
		return nil, err
	}
	return kpi.ManagerKPIs(findings, plans, h.dir), nil
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	findings, err := h.loadFindings(r.Context(), r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	stats := kpi.Summary(findings, h.thresholdDays(r), h.now())
	writeJSON(w, logger, http.StatusOK, adapters.MapSummaryStatsDomainToApi(stats))
}

func (h *Handler) Managers(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	kpis, err := h.managerKPIs(r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapManagerKPIsDomainToApi(kpis))
}

func (h *Handler) DepartmentHeads(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	kpis, err := h.managerKPIs(r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	heads := kpi.DeptHeadKPIs(kpis, h.dir)
	writeJSON(w, logger, http.StatusOK, adapters.MapDeptHeadKPIsDomainToApi(heads))
}

// Rollup returns the full reporting tree with scores averaged upward from
// manager leaves.
func (h *Handler) Rollup(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	kpis, err := h.managerKPIs(r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	nodes := kpi.Rollup(kpis, h.dir)
	response := make([]api.RollupNode, 0, len(nodes))
	for _, n := range nodes {
		response = append(response, adapters.MapRollupNodeDomainToApi(n))
	}
	writeJSON(w, logger, http.StatusOK, response)
}

func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	findings, err := h.loadFindings(r.Context(), r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapDeptPerformanceDomainToApi(kpi.DeptPerformance(findings)))
}

func (h *Handler) Processes(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	findings, err := h.loadFindings(r.Context(), r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapProcessNoncomplianceDomainToApi(kpi.ProcessNoncompliance(findings)))
}

func (h *Handler) TAT(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	findings, err := h.loadFindings(r.Context(), r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAuditTypeTATDomainToApi(kpi.TATByAuditType(findings)))
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	recent := h.feed.Recent()
	response := make([]api.Notification, 0, len(recent))
	for _, n := range recent {
		response = append(response, adapters.MapNotificationDomainToApi(n))
	}
	writeJSON(w, logger, http.StatusOK, response)
}

// ExportManagers streams the manager scorecard as an xlsx workbook.
func (h *Handler) ExportManagers(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	kpis, err := h.managerKPIs(r)
	if err != nil {
		internalError(w, logger, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Managers"
	f.SetSheetName("Sheet1", sheet)

	headings := []string{"Manager", "Department", "Total NCARs", "Escalated", "Avg Response TAT", "CAP Timeliness", "Score"}
	for i, heading := range headings {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, heading)
	}

	for i, k := range kpis {
		row := i + 2
		avgTAT := "N/A"
		if k.AvgResponseTAT != nil {
			avgTAT = fmt.Sprintf("%.1f", *k.AvgResponseTAT)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), k.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), k.Dept)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), k.TotalFindings)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), k.Escalated)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), avgTAT)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), k.CAPTimeliness)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), k.Score)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=manager-kpis.xlsx")
	if err := f.Write(w); err != nil {
		logger.Error().Err(err).Msg("failed to write workbook")
	}
}
