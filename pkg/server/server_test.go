package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/services/lifecycle"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	auditplanstore "github.com/de-tools/audit-atlas/pkg/store/memory/auditplans"
	findingstore "github.com/de-tools/audit-atlas/pkg/store/memory/findings"
)

func newTestConfig(t *testing.T) Config {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))

	dir, err := directory.New([]domain.User{
		{ID: "u1", Name: "Priya Nair", Role: domain.RoleAuditee, Dept: "Operations", Designation: domain.DesignationManager, ReportsTo: "u2"},
		{ID: "u2", Name: "Rashid Khan", Role: domain.RoleAuditee, Dept: "Operations", Designation: domain.DesignationDepartmentHead},
		{ID: "u3", Name: "Lena Fischer", Role: domain.RoleLeadAuditor, Dept: "Quality", Designation: domain.DesignationStaff},
	})
	require.NoError(t, err)

	findings := findingstore.NewStore(nil)
	plans := actionplans.NewStore(nil)
	auditPlans := auditplanstore.NewStore(nil)
	feed := notify.NewFeed(logger, 0)

	return Config{
		Addr:             ":8080",
		ShutdownTimeout:  10 * time.Second,
		TATThresholdDays: 5,
		Dependencies: Dependencies{
			Engine: lifecycle.NewEngine(lifecycle.Config{
				Findings:    findings,
				ActionPlans: plans,
				Sink:        feed,
			}),
			PlanEngine: lifecycle.NewPlanEngine(lifecycle.PlanConfig{
				Plans: auditPlans,
				Sink:  feed,
			}),
			Findings:    findings,
			ActionPlans: plans,
			AuditPlans:  auditPlans,
			Directory:   dir,
			Feed:        feed,
			Logger:      logger,
		},
	}
}

func doJSON(t *testing.T, client *http.Client, method, url, role string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if role != "" {
		req.Header.Set("X-Actor-Role", role)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestWebAPI_FindingLifecycle(t *testing.T) {
	testServer := httptest.NewServer(ConfigureRouter(newTestConfig(t)))
	defer testServer.Close()
	client := testServer.Client()
	base := testServer.URL + "/api/v1"

	createReq := api.CreateFindingRequest{
		Statement:   "Calibration records missing for line 3",
		Requirement: "ISO 9001 Clause 7.1.5",
		Evidence:    "Sampled 5 devices, none had current certificates",
		FindingType: "Major",
		Area:        "Operations",
		Auditor:     "Lena Fischer",
		Auditee:     "Priya Nair",
		Deadline:    time.Now().AddDate(0, 0, 14).Format(time.RFC3339),
		AuditType:   "Quality/InfoSec",
		ProcessName: "Calibration",
	}

	resp := doJSON(t, client, http.MethodPost, base+"/findings", "LEAD_AUDITOR", createReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.Finding](t, resp)
	assert.Equal(t, "Open", created.Status)
	assert.Equal(t, "7.1.5", created.StandardClause)
	assert.NotEmpty(t, created.ID)

	// a malformed deadline is rejected up front, not mistaken for a missing one
	badDates := createReq
	badDates.Deadline = "next tuesday"
	resp = doJSON(t, client, http.MethodPost, base+"/findings", "LEAD_AUDITOR", badDates)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// an auditee cannot raise findings
	resp = doJSON(t, client, http.MethodPost, base+"/findings", "AUDITEE", createReq)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	planReq := api.SubmitActionPlanRequest{
		ImmediateCorrection: "Quarantined affected devices",
		ResponsiblePerson:   "Priya Nair",
		RootCause:           "Calibration schedule not maintained after vendor change",
		CorrectiveAction:    "Reinstate calibration schedule with quarterly review",
		DueDate:             time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
	}

	resp = doJSON(t, client, http.MethodPost, base+"/findings/"+created.ID+"/plan", "AUDITEE", planReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	submitted := decode[api.SubmitActionPlanResponse](t, resp)
	assert.Equal(t, "Action Plan Submitted", submitted.Finding.Status)
	assert.Equal(t, created.ID, submitted.ActionPlan.FindingID)

	resp = doJSON(t, client, http.MethodPost, base+"/findings/"+created.ID+"/reject", "LEAD_AUDITOR",
		api.RejectFindingRequest{Remarks: "Root cause too shallow"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rejected := decode[api.Finding](t, resp)
	assert.Equal(t, "Reopened", rejected.Status)
	assert.Equal(t, "Root cause too shallow", rejected.RejectionRemarks)

	resp = doJSON(t, client, http.MethodPost, base+"/findings/"+created.ID+"/plan", "AUDITEE", planReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, base+"/findings/"+created.ID+"/approve", "LEAD_AUDITOR", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	closed := decode[api.Finding](t, resp)
	assert.Equal(t, "Closed", closed.Status)
	assert.Empty(t, closed.RejectionRemarks)

	resp = doJSON(t, client, http.MethodGet, base+"/findings/"+created.ID+"/plans", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[[]api.ActionPlan](t, resp)
	assert.Len(t, history, 2)

	resp = doJSON(t, client, http.MethodGet, base+"/findings/NCAR_999999_202501", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestWebAPI_AuditPlanStages(t *testing.T) {
	testServer := httptest.NewServer(ConfigureRouter(newTestConfig(t)))
	defer testServer.Close()
	client := testServer.Client()
	base := testServer.URL + "/api/v1"

	resp := doJSON(t, client, http.MethodPost, base+"/plans", "LEAD_AUDITOR", api.CreateAuditPlanRequest{
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-05",
		Auditors:    []string{"Lena Fischer"},
		Auditees:    []string{"Priya Nair"},
		AuditType:   "Financial",
		ProcessName: "Procurement",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plan := decode[api.AuditPlan](t, resp)
	assert.Equal(t, "Draft", plan.Status)

	for _, want := range []string{"Planned", "Actual Audit", "Closed"} {
		resp = doJSON(t, client, http.MethodPost, base+"/plans/"+plan.ID+"/advance", "LEAD_AUDITOR", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		advanced := decode[api.AuditPlan](t, resp)
		assert.Equal(t, want, advanced.Status)
	}

	// advancing a closed plan is a silent no-op
	resp = doJSON(t, client, http.MethodPost, base+"/plans/"+plan.ID+"/advance", "LEAD_AUDITOR", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	still := decode[api.AuditPlan](t, resp)
	assert.Equal(t, "Closed", still.Status)

	// only the lead auditor advances stages
	resp = doJSON(t, client, http.MethodPost, base+"/plans/"+plan.ID+"/advance", "AUDITEE", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// drafting plans is lead-auditor only too
	resp = doJSON(t, client, http.MethodPost, base+"/plans", "AUDITOR", api.CreateAuditPlanRequest{
		StartDate: "2026-10-01",
		EndDate:   "2026-10-03",
		Auditors:  []string{"Lena Fischer"},
		Auditees:  []string{"Priya Nair"},
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestWebAPI_Analytics(t *testing.T) {
	testServer := httptest.NewServer(ConfigureRouter(newTestConfig(t)))
	defer testServer.Close()
	client := testServer.Client()
	base := testServer.URL + "/api/v1"

	resp := doJSON(t, client, http.MethodPost, base+"/findings", "AUDITOR", api.CreateFindingRequest{
		Statement:   "Access reviews overdue",
		Requirement: "ISO 27001 Clause 9.2",
		Evidence:    "Last review 9 months ago",
		FindingType: "Minor",
		Area:        "Operations",
		Auditor:     "Lena Fischer",
		Auditee:     "Priya Nair",
		Deadline:    time.Now().AddDate(0, 0, 30).Format(time.RFC3339),
		AuditType:   "Quality/InfoSec",
		ProcessName: "Access Management",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodGet, base+"/analytics/summary", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[api.SummaryStats](t, resp)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Open)

	resp = doJSON(t, client, http.MethodGet, base+"/analytics/managers", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	managers := decode[[]api.ManagerKPI](t, resp)
	require.Len(t, managers, 1)
	assert.Equal(t, "Priya Nair", managers[0].Name)
	// one open finding costs 5 points
	assert.Equal(t, 95, managers[0].Score)

	resp = doJSON(t, client, http.MethodGet, base+"/analytics/heads", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	heads := decode[[]api.DeptHeadKPI](t, resp)
	require.Len(t, heads, 1)
	assert.Equal(t, "Rashid Khan", heads[0].Name)
	assert.Equal(t, 95, heads[0].AvgManagerScore)

	resp = doJSON(t, client, http.MethodGet, base+"/analytics/summary?audit_type=Financial", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	filtered := decode[api.SummaryStats](t, resp)
	assert.Equal(t, 0, filtered.Total)

	resp = doJSON(t, client, http.MethodGet, base+"/analytics/managers/export", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodGet, base+"/notifications", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notifications := decode[[]api.Notification](t, resp)
	require.NotEmpty(t, notifications)
	assert.Equal(t, "NCAR raised and assigned.", notifications[0].Message)
}
