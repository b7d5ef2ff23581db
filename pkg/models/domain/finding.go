package domain

import "time"

type FindingStatus string

const (
	FindingStatusOpen          FindingStatus = "Open"
	FindingStatusPlanSubmitted FindingStatus = "Action Plan Submitted"
	FindingStatusRejected      FindingStatus = "Rejected"
	FindingStatusValidated     FindingStatus = "Validated"
	FindingStatusClosed        FindingStatus = "Closed"
	FindingStatusReopened      FindingStatus = "Reopened"
)

// Normalize collapses the legacy synonyms carried by historical data:
// Rejected behaves as Reopened, Validated behaves as Closed.
func (s FindingStatus) Normalize() FindingStatus {
	switch s {
	case FindingStatusRejected:
		return FindingStatusReopened
	case FindingStatusValidated:
		return FindingStatusClosed
	default:
		return s
	}
}

func (s FindingStatus) IsClosed() bool {
	return s.Normalize() == FindingStatusClosed
}

type FindingType string

const (
	FindingTypeMajor FindingType = "Major"
	FindingTypeMinor FindingType = "Minor"
	FindingTypeOFI   FindingType = "OFI"
)

type AuditType string

const (
	AuditTypeQualityInfoSec AuditType = "Quality/InfoSec"
	AuditTypeFinancial      AuditType = "Financial"
	AuditTypeSpecialRequest AuditType = "Special Request"
)

// Finding is a single NCAR raised against an auditee during an audit.
type Finding struct {
	ID               string
	AuditPlanID      string
	Statement        string
	Requirement      string
	Evidence         string
	Type             FindingType
	StandardClause   string
	ClauseNumber     string
	Area             string
	Auditor          string
	Auditee          string
	CreatedAt        time.Time
	Status           FindingStatus
	Deadline         time.Time
	AttachmentName   string
	RejectionRemarks string
	AuditType        AuditType
	ProcessName      string
	IsEscalated      bool
	// ResponseAt records the first action-plan submission only; later
	// resubmissions never move it.
	ResponseAt *time.Time
}
