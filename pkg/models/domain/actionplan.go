package domain

import "time"

// ActionPlan is one corrective-action submission against a finding.
// Submissions are kept append-only per finding; the most recent one is the
// current plan.
type ActionPlan struct {
	ID                  string
	FindingID           string
	ImmediateCorrection string
	ResponsiblePerson   string
	RootCause           string
	CorrectiveAction    string
	DueDate             time.Time
	SubmittedAt         time.Time
	CompletedAt         *time.Time
	Remarks             string
}
