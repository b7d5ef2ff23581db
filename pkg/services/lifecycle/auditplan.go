package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/store/memory/auditplans"
)

type CreateAuditPlan struct {
	StartDate      time.Time `validate:"required"`
	EndDate        time.Time `validate:"required"`
	Auditors       []string  `validate:"required,min=1"`
	Auditees       []string  `validate:"required,min=1"`
	AttachmentName string
	AuditType      domain.AuditType
	ProcessName    string
}

type EditAuditPlan struct {
	StartDate      time.Time
	EndDate        time.Time
	Auditors       []string `validate:"required,min=1"`
	Auditees       []string `validate:"required,min=1"`
	AttachmentName string
	AuditType      domain.AuditType
	ProcessName    string
}

// PlanEngine drives audit plans through their four ordered stages. Stages
// only advance, one step at a time; a closed plan stays closed. The IsLocked
// flag rides along as data and is never consulted here.
type PlanEngine struct {
	plans    auditplans.Store
	sink     notify.Sink
	validate *validator.Validate
	now      func() time.Time
	strict   bool
}

type PlanConfig struct {
	Plans  auditplans.Store
	Sink   notify.Sink
	Strict bool
	Now    func() time.Time
}

func NewPlanEngine(cfg PlanConfig) *PlanEngine {
	if cfg.Sink == nil {
		cfg.Sink = notify.Discard{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &PlanEngine{
		plans:    cfg.Plans,
		sink:     cfg.Sink,
		validate: validator.New(),
		now:      cfg.Now,
		strict:   cfg.Strict,
	}
}

func (e *PlanEngine) rejected() error {
	if e.strict {
		return ErrTransitionRejected
	}
	return nil
}

func (e *PlanEngine) checkPayload(payload any) error {
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

func auditPlanID(seq int, now time.Time) string {
	return fmt.Sprintf("AP_%06d_%s", seq, now.Format("200601"))
}

// Create drafts a new audit plan. Planning belongs to the lead auditor; no
// other role may draft one.
func (e *PlanEngine) Create(ctx context.Context, actor domain.Role, cmd CreateAuditPlan) (domain.AuditPlan, error) {
	if actor != domain.RoleLeadAuditor {
		return domain.AuditPlan{}, e.rejected()
	}
	if err := e.checkPayload(cmd); err != nil {
		return domain.AuditPlan{}, err
	}

	count, err := e.plans.Count(ctx)
	if err != nil {
		return domain.AuditPlan{}, err
	}

	now := e.now()
	p := domain.AuditPlan{
		ID:             auditPlanID(count+1, now),
		StartDate:      cmd.StartDate,
		EndDate:        cmd.EndDate,
		Auditors:       cmd.Auditors,
		Auditees:       cmd.Auditees,
		AttachmentName: cmd.AttachmentName,
		Status:         domain.AuditPlanStatusDraft,
		IsLocked:       false,
		CreatedAt:      now,
		AuditType:      cmd.AuditType,
		ProcessName:    cmd.ProcessName,
	}

	if err := e.plans.Add(ctx, adapters.MapDomainAuditPlanToStore(p)); err != nil {
		return domain.AuditPlan{}, err
	}

	e.sink.Notify("New Audit Plan drafted.", domain.NotificationSuccess)
	return p, nil
}

// Edit updates a plan's envelope at any stage before closure. Lead auditors
// only; editing never changes the stage.
func (e *PlanEngine) Edit(ctx context.Context, actor domain.Role, id string, cmd EditAuditPlan) (domain.AuditPlan, error) {
	if actor != domain.RoleLeadAuditor {
		return domain.AuditPlan{}, e.rejected()
	}

	rec, err := e.plans.Get(ctx, id)
	if err != nil {
		return domain.AuditPlan{}, err
	}
	current := adapters.MapStoreAuditPlanToDomain(rec)
	if current.Status == domain.AuditPlanStatusClosed {
		return current, e.rejected()
	}

	if err := e.checkPayload(cmd); err != nil {
		return domain.AuditPlan{}, err
	}

	updated, err := e.plans.Update(ctx, id, func(p store.AuditPlan) store.AuditPlan {
		if !cmd.StartDate.IsZero() {
			p.StartDate = cmd.StartDate
		}
		if !cmd.EndDate.IsZero() {
			p.EndDate = cmd.EndDate
		}
		p.Auditors = cmd.Auditors
		p.Auditees = cmd.Auditees
		p.AttachmentName = cmd.AttachmentName
		p.AuditType = string(cmd.AuditType)
		p.ProcessName = cmd.ProcessName
		return p
	})
	if err != nil {
		return domain.AuditPlan{}, err
	}

	e.sink.Notify("Audit Plan updated successfully.", domain.NotificationSuccess)
	return adapters.MapStoreAuditPlanToDomain(updated), nil
}

// Advance moves a plan exactly one stage forward. Lead auditors only; a
// closed plan is left unchanged.
func (e *PlanEngine) Advance(ctx context.Context, actor domain.Role, id string) (domain.AuditPlan, error) {
	rec, err := e.plans.Get(ctx, id)
	if err != nil {
		return domain.AuditPlan{}, err
	}
	current := adapters.MapStoreAuditPlanToDomain(rec)

	if actor != domain.RoleLeadAuditor {
		return current, e.rejected()
	}
	next := current.Status.Next()
	if next == "" {
		return current, e.rejected()
	}

	updated, err := e.plans.Update(ctx, id, func(p store.AuditPlan) store.AuditPlan {
		p.Status = string(next)
		return p
	})
	if err != nil {
		return domain.AuditPlan{}, err
	}

	e.sink.Notify(
		fmt.Sprintf("Status updated to %s for %s", next, id),
		domain.NotificationSuccess,
	)
	return adapters.MapStoreAuditPlanToDomain(updated), nil
}
