// Package lifecycle enforces the corrective-action workflow on findings and
// the staged progression of audit plans. Commands issued outside the legal
// state x role matrix are silent no-ops unless the engine runs in strict
// mode.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	"github.com/de-tools/audit-atlas/pkg/store/memory/findings"
)

// CreateFinding carries the descriptive fields of a new NCAR. The tagged
// fields are the ones the workflow refuses to accept empty.
type CreateFinding struct {
	AuditPlanID    string
	Statement      string    `validate:"required"`
	Requirement    string    `validate:"required"`
	Evidence       string    `validate:"required"`
	Type           domain.FindingType
	ClauseNumber   string
	Area           string    `validate:"required"`
	Auditor        string
	Auditee        string    `validate:"required"`
	Deadline       time.Time `validate:"required"`
	AttachmentName string
	AuditType      domain.AuditType
	ProcessName    string
}

type EditFinding struct {
	Statement      string    `validate:"required"`
	Requirement    string    `validate:"required"`
	Evidence       string    `validate:"required"`
	Type           domain.FindingType
	ClauseNumber   string
	Area           string    `validate:"required"`
	Auditee        string    `validate:"required"`
	Deadline       time.Time `validate:"required"`
	AttachmentName string
	AuditType      domain.AuditType
	ProcessName    string
}

type SubmitActionPlan struct {
	ImmediateCorrection string    `validate:"required"`
	ResponsiblePerson   string    `validate:"required"`
	RootCause           string    `validate:"required"`
	CorrectiveAction    string    `validate:"required"`
	DueDate             time.Time `validate:"required"`
	Remarks             string
}

type Engine struct {
	findings findings.Store
	plans    actionplans.Store
	sink     notify.Sink
	validate *validator.Validate
	now      func() time.Time
	strict   bool
}

type Config struct {
	Findings    findings.Store
	ActionPlans actionplans.Store
	Sink        notify.Sink
	// Strict surfaces ErrTransitionRejected instead of swallowing illegal
	// commands.
	Strict bool
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

func NewEngine(cfg Config) *Engine {
	if cfg.Sink == nil {
		cfg.Sink = notify.Discard{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		findings: cfg.Findings,
		plans:    cfg.ActionPlans,
		sink:     cfg.Sink,
		validate: validator.New(),
		now:      cfg.Now,
		strict:   cfg.Strict,
	}
}

func (e *Engine) checkPayload(payload any) error {
	err := e.validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fe.Field())
	}
	return ve
}

func (e *Engine) rejected() error {
	if e.strict {
		return ErrTransitionRejected
	}
	return nil
}

func findingID(seq int, now time.Time) string {
	return fmt.Sprintf("NCAR_%06d_%s", seq, now.Format("200601"))
}

func actionPlanID(seq int, now time.Time) string {
	return fmt.Sprintf("ACT_%06d_%s", seq, now.Format("200601"))
}

// CreateFinding raises a new NCAR in the Open state. Only auditors and lead
// auditors may raise findings.
func (e *Engine) CreateFinding(ctx context.Context, actor domain.Role, cmd CreateFinding) (domain.Finding, error) {
	if !canRaiseFinding(actor) {
		return domain.Finding{}, e.rejected()
	}
	if err := e.checkPayload(cmd); err != nil {
		return domain.Finding{}, err
	}

	count, err := e.findings.Count(ctx)
	if err != nil {
		return domain.Finding{}, err
	}

	now := e.now()
	f := domain.Finding{
		ID:             findingID(count+1, now),
		AuditPlanID:    cmd.AuditPlanID,
		Statement:      cmd.Statement,
		Requirement:    cmd.Requirement,
		Evidence:       cmd.Evidence,
		Type:           cmd.Type,
		StandardClause: standardClause(cmd.Requirement),
		ClauseNumber:   cmd.ClauseNumber,
		Area:           cmd.Area,
		Auditor:        cmd.Auditor,
		Auditee:        cmd.Auditee,
		CreatedAt:      now,
		Status:         domain.FindingStatusOpen,
		Deadline:       cmd.Deadline,
		AttachmentName: cmd.AttachmentName,
		AuditType:      cmd.AuditType,
		ProcessName:    cmd.ProcessName,
		IsEscalated:    false,
	}

	if err := e.findings.Add(ctx, adapters.MapDomainFindingToStore(f)); err != nil {
		return domain.Finding{}, err
	}

	e.sink.Notify("NCAR raised and assigned.", domain.NotificationSuccess)
	return f, nil
}

// standardClause extracts the trailing clause token from a requirement
// reference, e.g. "ISO 27001 Clause 8.1" -> "8.1".
func standardClause(requirement string) string {
	parts := strings.Fields(requirement)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// EditFinding updates the descriptive fields of a finding that is still Open.
// Once a plan is awaiting review the finding is read-only. Editing never
// changes status.
func (e *Engine) EditFinding(ctx context.Context, actor domain.Role, id string, cmd EditFinding) (domain.Finding, error) {
	if !canRaiseFinding(actor) {
		return domain.Finding{}, e.rejected()
	}

	rec, err := e.findings.Get(ctx, id)
	if err != nil {
		return domain.Finding{}, err
	}
	current := adapters.MapStoreFindingToDomain(rec)
	if current.Status.Normalize() != domain.FindingStatusOpen {
		return current, e.rejected()
	}

	if err := e.checkPayload(cmd); err != nil {
		return domain.Finding{}, err
	}

	updated, err := e.findings.Update(ctx, id, func(f store.Finding) store.Finding {
		f.Statement = cmd.Statement
		f.Requirement = cmd.Requirement
		f.Evidence = cmd.Evidence
		f.FindingType = string(cmd.Type)
		f.StandardClause = standardClause(cmd.Requirement)
		f.ClauseNumber = cmd.ClauseNumber
		f.Area = cmd.Area
		f.Auditee = cmd.Auditee
		f.Deadline = cmd.Deadline
		f.AttachmentName = cmd.AttachmentName
		f.AuditType = string(cmd.AuditType)
		f.ProcessName = cmd.ProcessName
		return f
	})
	if err != nil {
		return domain.Finding{}, err
	}

	e.sink.Notify(fmt.Sprintf("NCAR %s updated.", id), domain.NotificationSuccess)
	return adapters.MapStoreFindingToDomain(updated), nil
}

// SubmitActionPlan records a corrective-action submission from the finding's
// auditee and moves the finding to Action Plan Submitted. Submissions are
// append-only; the latest one becomes the current plan. The first submission
// stamps ResponseAt, later ones never move it.
func (e *Engine) SubmitActionPlan(
	ctx context.Context,
	actor domain.Role,
	findingID string,
	cmd SubmitActionPlan,
) (domain.Finding, domain.ActionPlan, error) {
	rec, err := e.findings.Get(ctx, findingID)
	if err != nil {
		return domain.Finding{}, domain.ActionPlan{}, err
	}
	current := adapters.MapStoreFindingToDomain(rec)

	next, ok := NextStatus(current.Status, CommandSubmitPlan, actor)
	if !ok {
		return current, domain.ActionPlan{}, e.rejected()
	}

	if err := e.checkPayload(cmd); err != nil {
		return domain.Finding{}, domain.ActionPlan{}, err
	}

	count, err := e.plans.Count(ctx)
	if err != nil {
		return domain.Finding{}, domain.ActionPlan{}, err
	}

	now := e.now()
	plan := domain.ActionPlan{
		ID:                  actionPlanID(count+1, now),
		FindingID:           findingID,
		ImmediateCorrection: cmd.ImmediateCorrection,
		ResponsiblePerson:   cmd.ResponsiblePerson,
		RootCause:           cmd.RootCause,
		CorrectiveAction:    cmd.CorrectiveAction,
		DueDate:             cmd.DueDate,
		SubmittedAt:         now,
		Remarks:             cmd.Remarks,
	}
	if err := e.plans.Add(ctx, adapters.MapDomainActionPlanToStore(plan)); err != nil {
		return domain.Finding{}, domain.ActionPlan{}, err
	}

	updated, err := e.findings.Update(ctx, findingID, func(f store.Finding) store.Finding {
		f.Status = string(next)
		f.RejectionRemarks = ""
		if f.ResponseAt == nil {
			t := now
			f.ResponseAt = &t
		}
		return f
	})
	if err != nil {
		return domain.Finding{}, domain.ActionPlan{}, err
	}

	e.sink.Notify(
		fmt.Sprintf("Action Plan for %s submitted successfully.", findingID),
		domain.NotificationSuccess,
	)
	return adapters.MapStoreFindingToDomain(updated), plan, nil
}

// Approve closes a finding whose plan is awaiting review. Terminal.
func (e *Engine) Approve(ctx context.Context, actor domain.Role, id string) (domain.Finding, error) {
	rec, err := e.findings.Get(ctx, id)
	if err != nil {
		return domain.Finding{}, err
	}
	current := adapters.MapStoreFindingToDomain(rec)

	next, ok := NextStatus(current.Status, CommandApprove, actor)
	if !ok {
		return current, e.rejected()
	}

	updated, err := e.findings.Update(ctx, id, func(f store.Finding) store.Finding {
		f.Status = string(next)
		f.RejectionRemarks = ""
		return f
	})
	if err != nil {
		return domain.Finding{}, err
	}

	e.sink.Notify(fmt.Sprintf("NCAR %s Approved and Closed.", id), domain.NotificationSuccess)
	return adapters.MapStoreFindingToDomain(updated), nil
}

// Reject reopens a finding whose plan is awaiting review. The remarks are
// mandatory and stored verbatim until the next submission or approval clears
// them.
func (e *Engine) Reject(ctx context.Context, actor domain.Role, id, remarks string) (domain.Finding, error) {
	rec, err := e.findings.Get(ctx, id)
	if err != nil {
		return domain.Finding{}, err
	}
	current := adapters.MapStoreFindingToDomain(rec)

	next, ok := NextStatus(current.Status, CommandReject, actor)
	if !ok {
		return current, e.rejected()
	}

	if strings.TrimSpace(remarks) == "" {
		return current, &ValidationError{Fields: []string{"Remarks"}}
	}

	updated, err := e.findings.Update(ctx, id, func(f store.Finding) store.Finding {
		f.Status = string(next)
		f.RejectionRemarks = remarks
		return f
	})
	if err != nil {
		return domain.Finding{}, err
	}

	e.sink.Notify(fmt.Sprintf("NCAR %s Rejected: %s", id, remarks), domain.NotificationWarning)
	return adapters.MapStoreFindingToDomain(updated), nil
}
