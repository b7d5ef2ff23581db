package store

import "time"

type Finding struct {
	ID               string
	AuditPlanID      string
	Statement        string
	Requirement      string
	Evidence         string
	FindingType      string
	StandardClause   string
	ClauseNumber     string
	Area             string
	Auditor          string
	Auditee          string
	CreatedAt        time.Time
	Status           string
	Deadline         time.Time
	AttachmentName   string
	RejectionRemarks string
	AuditType        string
	ProcessName      string
	IsEscalated      bool
	ResponseAt       *time.Time
}
