package api

import "time"

type AuditPlan struct {
	ID             string    `json:"id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Auditors       []string  `json:"auditors"`
	Auditees       []string  `json:"auditees"`
	AttachmentName string    `json:"attachment_name,omitempty"`
	Status         string    `json:"status"`
	IsLocked       bool      `json:"is_locked"`
	CreatedAt      time.Time `json:"created_at"`
	AuditType      string    `json:"audit_type"`
	ProcessName    string    `json:"process_name"`
}

type CreateAuditPlanRequest struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Auditors       []string `json:"auditors"`
	Auditees       []string `json:"auditees"`
	AttachmentName string   `json:"attachment_name"`
	AuditType      string   `json:"audit_type"`
	ProcessName    string   `json:"process_name"`
}

type EditAuditPlanRequest struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Auditors       []string `json:"auditors"`
	Auditees       []string `json:"auditees"`
	AttachmentName string   `json:"attachment_name"`
	AuditType      string   `json:"audit_type"`
	ProcessName    string   `json:"process_name"`
}
