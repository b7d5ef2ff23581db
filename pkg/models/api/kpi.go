package api

import "time"

type ManagerKPI struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Dept          string `json:"dept"`
	ReportsTo     string `json:"reports_to,omitempty"`
	TotalFindings int    `json:"total_ncars"`
	Escalated     int    `json:"escalated"`
	// AvgResponseTAT is "N/A" when the manager has no responded findings.
	AvgResponseTAT string `json:"avg_response_tat"`
	CAPTimeliness  int    `json:"cap_timeliness"`
	Score          int    `json:"score"`
}

type DeptHeadKPI struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Dept            string `json:"dept"`
	AvgManagerScore int    `json:"avg_manager_score"`
	TotalEscalated  int    `json:"total_escalated"`
}

type RollupNode struct {
	UserID         string       `json:"user_id"`
	Name           string       `json:"name"`
	Designation    string       `json:"designation"`
	Score          int          `json:"score"`
	TotalEscalated int          `json:"total_escalated"`
	Reports        []RollupNode `json:"reports,omitempty"`
}

type SummaryStats struct {
	Total   int `json:"total"`
	Open    int `json:"open"`
	Closed  int `json:"closed"`
	OFIs    int `json:"ofis"`
	NonOFIs int `json:"ncars_only"`
	Overdue int `json:"overdue"`
}

type DeptPerformance struct {
	Area        string `json:"area"`
	Findings    int    `json:"ncars"`
	OFIs        int    `json:"ofis"`
	Closed      int    `json:"closed"`
	ClosureRate int    `json:"closure_rate"`
}

type ProcessNoncompliance struct {
	Process string `json:"process"`
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	OFI     int    `json:"ofi"`
}

type AuditTypeTAT struct {
	AuditType string  `json:"audit_type"`
	AvgDays   float64 `json:"avg_tat"`
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}
