package domain

// ManagerKPI is the per-manager compliance projection. AvgResponseTAT is nil
// when none of the manager's findings has a recorded response.
type ManagerKPI struct {
	UserID         string
	Name           string
	Dept           string
	ReportsTo      string
	TotalFindings  int
	Escalated      int
	AvgResponseTAT *float64
	CAPTimeliness  int
	Score          int
}

// DeptHeadKPI rolls the reporting managers' scores up one tier.
type DeptHeadKPI struct {
	UserID          string
	Name            string
	Dept            string
	AvgManagerScore int
	TotalEscalated  int
}

// RollupNode is the recursive score rollup over the reportsTo relation.
// Leaves are managers; every other node aggregates its direct reports.
type RollupNode struct {
	UserID         string
	Name           string
	Designation    Designation
	Score          int
	TotalEscalated int
	Reports        []RollupNode
}

// SummaryStats are the dashboard headline numbers over an audit-type filtered
// snapshot of the finding population.
type SummaryStats struct {
	Total   int
	Open    int
	Closed  int
	OFIs    int
	NonOFIs int
	Overdue int
}

// DeptPerformance counts findings per responsible area.
type DeptPerformance struct {
	Area        string
	Findings    int
	OFIs        int
	Closed      int
	ClosureRate int
}

// ProcessNoncompliance counts finding severities per audited process.
type ProcessNoncompliance struct {
	Process string
	Major   int
	Minor   int
	OFI     int
}

// AuditTypeTAT is the average first-response turnaround per audit type.
type AuditTypeTAT struct {
	AuditType AuditType
	AvgDays   float64
}
