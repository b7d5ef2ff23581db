package store

import "time"

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
