package store

import "time"

type AuditPlan struct {
	ID             string
	StartDate      time.Time
	EndDate        time.Time
	Auditors       []string
	Auditees       []string
	AttachmentName string
	Status         string
	IsLocked       bool
	CreatedAt      time.Time
	AuditType      string
	ProcessName    string
}
