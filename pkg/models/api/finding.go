package api

import "time"

type Finding struct {
	ID               string     `json:"id"`
	AuditPlanID      string     `json:"audit_plan_id"`
	Statement        string     `json:"statement"`
	Requirement      string     `json:"requirement"`
	Evidence         string     `json:"evidence"`
	FindingType      string     `json:"finding_type"`
	StandardClause   string     `json:"standard_clause"`
	ClauseNumber     string     `json:"clause_number,omitempty"`
	Area             string     `json:"area"`
	Auditor          string     `json:"auditor"`
	Auditee          string     `json:"auditee"`
	CreatedAt        time.Time  `json:"created_at"`
	Status           string     `json:"status"`
	Deadline         time.Time  `json:"deadline"`
	DaysRemaining    int        `json:"days_remaining"`
	AttachmentName   string     `json:"attachment_name,omitempty"`
	RejectionRemarks string     `json:"rejection_remarks,omitempty"`
	AuditType        string     `json:"audit_type"`
	ProcessName      string     `json:"process_name"`
	IsEscalated      bool       `json:"is_escalated"`
	ResponseAt       *time.Time `json:"response_at,omitempty"`
}

type CreateFindingRequest struct {
	AuditPlanID    string `json:"audit_plan_id"`
	Statement      string `json:"statement"`
	Requirement    string `json:"requirement"`
	Evidence       string `json:"evidence"`
	FindingType    string `json:"finding_type"`
	ClauseNumber   string `json:"clause_number"`
	Area           string `json:"area"`
	Auditor        string `json:"auditor"`
	Auditee        string `json:"auditee"`
	Deadline       string `json:"deadline"`
	AttachmentName string `json:"attachment_name"`
	AuditType      string `json:"audit_type"`
	ProcessName    string `json:"process_name"`
}

type EditFindingRequest struct {
	Statement      string `json:"statement"`
	Requirement    string `json:"requirement"`
	Evidence       string `json:"evidence"`
	FindingType    string `json:"finding_type"`
	ClauseNumber   string `json:"clause_number"`
	Area           string `json:"area"`
	Auditee        string `json:"auditee"`
	Deadline       string `json:"deadline"`
	AttachmentName string `json:"attachment_name"`
	AuditType      string `json:"audit_type"`
	ProcessName    string `json:"process_name"`
}

type SubmitActionPlanRequest struct {
	ImmediateCorrection string `json:"immediate_correction"`
	ResponsiblePerson   string `json:"responsible_person"`
	RootCause           string `json:"root_cause"`
	CorrectiveAction    string `json:"corrective_action"`
	DueDate             string `json:"due_date"`
	Remarks             string `json:"remarks"`
}

type RejectFindingRequest struct {
	Remarks string `json:"remarks"`
}

type ActionPlan struct {
	ID                  string     `json:"id"`
	FindingID           string     `json:"finding_id"`
	ImmediateCorrection string     `json:"immediate_correction"`
	ResponsiblePerson   string     `json:"responsible_person"`
	RootCause           string     `json:"root_cause"`
	CorrectiveAction    string     `json:"corrective_action"`
	DueDate             time.Time  `json:"due_date"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	Remarks             string     `json:"remarks,omitempty"`
}

type SubmitActionPlanResponse struct {
	Finding    Finding    `json:"finding"`
	ActionPlan ActionPlan `json:"action_plan"`
}
