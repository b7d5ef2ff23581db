package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	"github.com/de-tools/audit-atlas/pkg/store/memory/findings"
)

var testClock = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, strict bool) (*Engine, findings.Store, actionplans.Store) {
	t.Helper()
	findingsStore := findings.NewStore(nil)
	plansStore := actionplans.NewStore(nil)
	engine := NewEngine(Config{
		Findings:    findingsStore,
		ActionPlans: plansStore,
		Sink:        notify.Discard{},
		Strict:      strict,
		Now:         func() time.Time { return testClock },
	})
	return engine, findingsStore, plansStore
}

func validCreate() CreateFinding {
	return CreateFinding{
		Statement:   "Supplier evaluations not performed",
		Requirement: "ISO 9001 Clause 8.4.1",
		Evidence:    "No evaluation records for 3 of 10 sampled suppliers",
		Type:        domain.FindingTypeMajor,
		Area:        "Procurement",
		Auditor:     "Lena Fischer",
		Auditee:     "Priya Nair",
		Deadline:    testClock.AddDate(0, 0, 14),
		AuditType:   domain.AuditTypeQualityInfoSec,
		ProcessName: "Supplier Management",
	}
}

func validPlan() SubmitActionPlan {
	return SubmitActionPlan{
		ImmediateCorrection: "Evaluated the 3 suppliers",
		ResponsiblePerson:   "Priya Nair",
		RootCause:           "Evaluation step dropped during ERP migration",
		CorrectiveAction:    "Add evaluation gate to supplier onboarding workflow",
		DueDate:             testClock.AddDate(0, 1, 0),
	}
}

func TestCreateFinding(t *testing.T) {
	engine, _, _ := newTestEngine(t, false)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleLeadAuditor, validCreate())
	require.NoError(t, err)

	assert.Equal(t, "NCAR_000001_202601", f.ID)
	assert.Equal(t, domain.FindingStatusOpen, f.Status)
	assert.Equal(t, "8.4.1", f.StandardClause)
	assert.False(t, f.IsEscalated)
	assert.Nil(t, f.ResponseAt)
	assert.Equal(t, testClock, f.CreatedAt)

	second, err := engine.CreateFinding(ctx, domain.RoleAuditor, validCreate())
	require.NoError(t, err)
	assert.Equal(t, "NCAR_000002_202601", second.ID)
}

func TestCreateFinding_RoleAndValidation(t *testing.T) {
	engine, store, _ := newTestEngine(t, false)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleAuditee, validCreate())
	require.NoError(t, err)
	assert.Empty(t, f.ID)
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	cmd := validCreate()
	cmd.Statement = ""
	cmd.Evidence = ""
	_, err = engine.CreateFinding(ctx, domain.RoleLeadAuditor, cmd)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"Statement", "Evidence"}, ve.Fields)
}

func TestSubmitApproveRejectCycle(t *testing.T) {
	engine, _, plansStore := newTestEngine(t, false)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleLeadAuditor, validCreate())
	require.NoError(t, err)

	// first submission stamps ResponseAt
	updated, plan, err := engine.SubmitActionPlan(ctx, domain.RoleAuditee, f.ID, validPlan())
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusPlanSubmitted, updated.Status)
	assert.Equal(t, "ACT_000001_202601", plan.ID)
	require.NotNil(t, updated.ResponseAt)
	firstResponse := *updated.ResponseAt

	rejectedF, err := engine.Reject(ctx, domain.RoleLeadAuditor, f.ID, "Corrective action lacks verification step")
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusReopened, rejectedF.Status)
	assert.Equal(t, "Corrective action lacks verification step", rejectedF.RejectionRemarks)

	// resubmission reuses ResponseAt and clears the remarks
	updated, plan, err = engine.SubmitActionPlan(ctx, domain.RoleAuditee, f.ID, validPlan())
	require.NoError(t, err)
	assert.Equal(t, "ACT_000002_202601", plan.ID)
	assert.Empty(t, updated.RejectionRemarks)
	require.NotNil(t, updated.ResponseAt)
	assert.Equal(t, firstResponse, *updated.ResponseAt)

	history, err := plansStore.ListByFinding(ctx, f.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	current, ok, err := plansStore.Current(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ACT_000002_202601", current.ID)

	closedF, err := engine.Approve(ctx, domain.RoleLeadAuditor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusClosed, closedF.Status)
}

func TestIllegalCommandsAreSilentNoOps(t *testing.T) {
	engine, _, _ := newTestEngine(t, false)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleLeadAuditor, validCreate())
	require.NoError(t, err)

	// approve before a plan exists
	got, err := engine.Approve(ctx, domain.RoleLeadAuditor, f.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusOpen, got.Status)

	// wrong actor for submission
	got, _, err = engine.SubmitActionPlan(ctx, domain.RoleLeadAuditor, f.ID, validPlan())
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusOpen, got.Status)

	// auditee cannot approve a submitted plan
	_, _, err = engine.SubmitActionPlan(ctx, domain.RoleAuditee, f.ID, validPlan())
	require.NoError(t, err)
	got, err = engine.Approve(ctx, domain.RoleAuditee, f.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusPlanSubmitted, got.Status)
}

func TestStrictModeSurfacesRejections(t *testing.T) {
	engine, _, _ := newTestEngine(t, true)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleLeadAuditor, validCreate())
	require.NoError(t, err)

	_, err = engine.Approve(ctx, domain.RoleLeadAuditor, f.ID)
	assert.ErrorIs(t, err, ErrTransitionRejected)

	_, err = engine.CreateFinding(ctx, domain.RoleAuditee, validCreate())
	assert.ErrorIs(t, err, ErrTransitionRejected)
}

func TestRejectRequiresRemarks(t *testing.T) {
	engine, _, _ := newTestEngine(t, false)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleLeadAuditor, validCreate())
	require.NoError(t, err)
	_, _, err = engine.SubmitActionPlan(ctx, domain.RoleAuditee, f.ID, validPlan())
	require.NoError(t, err)

	for _, remarks := range []string{"", "   ", "\t\n"} {
		_, err = engine.Reject(ctx, domain.RoleLeadAuditor, f.ID, remarks)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Remarks"}, ve.Fields)
	}

	got, err := engine.Reject(ctx, domain.RoleLeadAuditor, f.ID, "  needs detail  ")
	require.NoError(t, err)
	assert.Equal(t, "  needs detail  ", got.RejectionRemarks)
}

func TestEditFinding_OnlyWhileOpen(t *testing.T) {
	engine, _, _ := newTestEngine(t, false)
	ctx := context.Background()

	f, err := engine.CreateFinding(ctx, domain.RoleLeadAuditor, validCreate())
	require.NoError(t, err)

	edit := EditFinding{
		Statement:   "Supplier evaluations not performed for critical suppliers",
		Requirement: "ISO 9001 Clause 8.4.2",
		Evidence:    "Updated sample of 12 suppliers",
		Type:        domain.FindingTypeMinor,
		Area:        "Procurement",
		Auditee:     "Priya Nair",
		Deadline:    testClock.AddDate(0, 0, 21),
		AuditType:   domain.AuditTypeQualityInfoSec,
		ProcessName: "Supplier Management",
	}
	got, err := engine.EditFinding(ctx, domain.RoleLeadAuditor, f.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "8.4.2", got.StandardClause)
	assert.Equal(t, domain.FindingStatusOpen, got.Status)

	_, _, err = engine.SubmitActionPlan(ctx, domain.RoleAuditee, f.ID, validPlan())
	require.NoError(t, err)

	// read-only once a plan is awaiting review
	got, err = engine.EditFinding(ctx, domain.RoleLeadAuditor, f.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingStatusPlanSubmitted, got.Status)
	assert.Equal(t, "8.4.2", got.StandardClause)
}

func TestUnknownFinding(t *testing.T) {
	engine, _, _ := newTestEngine(t, false)
	ctx := context.Background()

	_, err := engine.Approve(ctx, domain.RoleLeadAuditor, "NCAR_000042_202601")
	assert.ErrorIs(t, err, findings.ErrNotFound)
}
