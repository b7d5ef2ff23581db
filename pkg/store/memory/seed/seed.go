// Package seed loads an optional YAML working set into the in-memory stores
// at startup.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/de-tools/audit-atlas/pkg/models/store"
)

type auditPlanRecord struct {
	ID             string    `yaml:"id"`
	StartDate      time.Time `yaml:"start_date"`
	EndDate        time.Time `yaml:"end_date"`
	Auditors       []string  `yaml:"auditors"`
	Auditees       []string  `yaml:"auditees"`
	AttachmentName string    `yaml:"attachment_name"`
	Status         string    `yaml:"status"`
	IsLocked       bool      `yaml:"is_locked"`
	CreatedAt      time.Time `yaml:"created_at"`
	AuditType      string    `yaml:"audit_type"`
	ProcessName    string    `yaml:"process_name"`
}

type findingRecord struct {
	ID               string     `yaml:"id"`
	AuditPlanID      string     `yaml:"audit_plan_id"`
	Statement        string     `yaml:"statement"`
	Requirement      string     `yaml:"requirement"`
	Evidence         string     `yaml:"evidence"`
	FindingType      string     `yaml:"finding_type"`
	StandardClause   string     `yaml:"standard_clause"`
	ClauseNumber     string     `yaml:"clause_number"`
	Area             string     `yaml:"area"`
	Auditor          string     `yaml:"auditor"`
	Auditee          string     `yaml:"auditee"`
	CreatedAt        time.Time  `yaml:"created_at"`
	Status           string     `yaml:"status"`
	Deadline         time.Time  `yaml:"deadline"`
	AttachmentName   string     `yaml:"attachment_name"`
	RejectionRemarks string     `yaml:"rejection_remarks"`
	AuditType        string     `yaml:"audit_type"`
	ProcessName      string     `yaml:"process_name"`
	IsEscalated      bool       `yaml:"is_escalated"`
	ResponseAt       *time.Time `yaml:"response_at"`
}

type actionPlanRecord struct {
	ID                  string     `yaml:"id"`
	FindingID           string     `yaml:"finding_id"`
	ImmediateCorrection string     `yaml:"immediate_correction"`
	ResponsiblePerson   string     `yaml:"responsible_person"`
	RootCause           string     `yaml:"root_cause"`
	CorrectiveAction    string     `yaml:"corrective_action"`
	DueDate             time.Time  `yaml:"due_date"`
	SubmittedAt         time.Time  `yaml:"submitted_at"`
	CompletedAt         *time.Time `yaml:"completed_at"`
	Remarks             string     `yaml:"remarks"`
}

type seedFile struct {
	AuditPlans  []auditPlanRecord  `yaml:"audit_plans"`
	Findings    []findingRecord    `yaml:"findings"`
	ActionPlans []actionPlanRecord `yaml:"action_plans"`
}

type Data struct {
	AuditPlans  []store.AuditPlan
	Findings    []store.Finding
	ActionPlans []store.ActionPlan
}

// LoadFile reads the seed working set. A missing path yields empty stores,
// not an error.
func LoadFile(path string) (Data, error) {
	if path == "" {
		return Data{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, nil
		}
		return Data{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Data{}, fmt.Errorf("failed to parse seed file: %w", err)
	}

	data := Data{}
	for _, r := range file.AuditPlans {
		data.AuditPlans = append(data.AuditPlans, store.AuditPlan(r))
	}
	for _, r := range file.Findings {
		data.Findings = append(data.Findings, store.Finding(r))
	}
	for _, r := range file.ActionPlans {
		data.ActionPlans = append(data.ActionPlans, store.ActionPlan(r))
	}
	return data, nil
}
