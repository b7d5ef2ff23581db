package lifecycle

import "github.com/de-tools/audit-atlas/pkg/models/domain"

// Command names the state-changing operations on a finding.
type Command string

const (
	CommandSubmitPlan Command = "submit_plan"
	CommandApprove    Command = "approve"
	CommandReject     Command = "reject"
)

type transitionKey struct {
	from domain.FindingStatus
	cmd  Command
	role domain.Role
}

// findingTransitions is the legal (state, command, role) matrix. Statuses are
// normalized before lookup, so historical Rejected records transition exactly
// like Reopened ones. Anything absent from the table is a rejected
// transition.
var findingTransitions = map[transitionKey]domain.FindingStatus{
	{domain.FindingStatusOpen, CommandSubmitPlan, domain.RoleAuditee}:            domain.FindingStatusPlanSubmitted,
	{domain.FindingStatusReopened, CommandSubmitPlan, domain.RoleAuditee}:        domain.FindingStatusPlanSubmitted,
	{domain.FindingStatusPlanSubmitted, CommandApprove, domain.RoleLeadAuditor}:  domain.FindingStatusClosed,
	{domain.FindingStatusPlanSubmitted, CommandReject, domain.RoleLeadAuditor}:   domain.FindingStatusReopened,
}

// NextStatus resolves the transition table for a command. The boolean is
// false when the transition is rejected.
func NextStatus(from domain.FindingStatus, cmd Command, role domain.Role) (domain.FindingStatus, bool) {
	next, ok := findingTransitions[transitionKey{from.Normalize(), cmd, role}]
	return next, ok
}

func canRaiseFinding(role domain.Role) bool {
	return role == domain.RoleLeadAuditor || role == domain.RoleAuditor
}
