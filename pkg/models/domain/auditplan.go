package domain

import "time"

type AuditPlanStatus string

const (
	AuditPlanStatusDraft   AuditPlanStatus = "Draft"
	AuditPlanStatusPlanned AuditPlanStatus = "Planned"
	AuditPlanStatusActual  AuditPlanStatus = "Actual Audit"
	AuditPlanStatusClosed  AuditPlanStatus = "Closed"
)

// Next returns the following stage, or "" when the plan is already closed.
// Stages only ever move forward.
func (s AuditPlanStatus) Next() AuditPlanStatus {
	switch s {
	case AuditPlanStatusDraft:
		return AuditPlanStatusPlanned
	case AuditPlanStatusPlanned:
		return AuditPlanStatusActual
	case AuditPlanStatusActual:
		return AuditPlanStatusClosed
	default:
		return ""
	}
}

// AuditPlan is the scheduling envelope an audit runs under.
// IsLocked is carried as data only; no transition consults it.
type AuditPlan struct {
	ID             string
	StartDate      time.Time
	EndDate        time.Time
	Auditors       []string
	Auditees       []string
	AttachmentName string
	Status         AuditPlanStatus
	IsLocked       bool
	CreatedAt      time.Time
	AuditType      AuditType
	ProcessName    string
}
