// Package kpi computes the cascading compliance projections: per-manager
// scores derived from the finding population and submitted corrective-action
// plans, rolled up to department heads and recursively over the reporting
// hierarchy. Every function is a pure projection over its snapshot inputs.
package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/services/tat"
)

const (
	escalationPenalty  = 20
	openFindingPenalty = 5
)

// FilterByAuditType narrows a finding snapshot to one audit type. An empty
// filter keeps everything.
func FilterByAuditType(findings []domain.Finding, auditType domain.AuditType) []domain.Finding {
	if auditType == "" {
		return findings
	}
	var out []domain.Finding
	for _, f := range findings {
		if f.AuditType == auditType {
			out = append(out, f)
		}
	}
	return out
}

// ManagerKPIs computes the compliance projection for every manager in the
// directory against the given finding and action-plan snapshots.
func ManagerKPIs(
	findings []domain.Finding,
	plans []domain.ActionPlan,
	dir *directory.Directory,
) []domain.ManagerKPI {
	managers := dir.Managers()
	out := make([]domain.ManagerKPI, 0, len(managers))

	for _, m := range managers {
		var managed []domain.Finding
		for _, f := range findings {
			if f.Auditee == m.Name {
				managed = append(managed, f)
			}
		}

		escalated := 0
		notClosed := 0
		var responseDays []int
		for _, f := range managed {
			if f.IsEscalated {
				escalated++
			}
			if !f.Status.IsClosed() {
				notClosed++
			}
			if f.ResponseAt != nil {
				responseDays = append(responseDays, tat.ResponseDays(f.CreatedAt, *f.ResponseAt))
			}
		}

		var avgTAT *float64
		if len(responseDays) > 0 {
			sum := 0
			for _, d := range responseDays {
				sum += d
			}
			mean := float64(sum) / float64(len(responseDays))
			rounded := math.Round(mean*10) / 10
			avgTAT = &rounded
		}

		totalPlans := 0
		timelyPlans := 0
		for _, p := range plans {
			if p.ResponsiblePerson != m.Name {
				continue
			}
			totalPlans++
			if p.CompletedAt != nil && !p.CompletedAt.After(p.DueDate) {
				timelyPlans++
			}
		}
		capTimeliness := 100
		if totalPlans > 0 {
			capTimeliness = int(math.Round(100 * float64(timelyPlans) / float64(totalPlans)))
		}

		score := 100 - escalationPenalty*escalated - openFindingPenalty*notClosed
		if score < 0 {
			score = 0
		}

		out = append(out, domain.ManagerKPI{
			UserID:         m.ID,
			Name:           m.Name,
			Dept:           m.Dept,
			ReportsTo:      m.ReportsTo,
			TotalFindings:  len(managed),
			Escalated:      escalated,
			AvgResponseTAT: avgTAT,
			CAPTimeliness:  capTimeliness,
			Score:          score,
		})
	}
	return out
}

// DeptHeadKPIs rolls manager scores up to their department heads. A head
// with no reporting managers scores a clean 100.
func DeptHeadKPIs(managerKPIs []domain.ManagerKPI, dir *directory.Directory) []domain.DeptHeadKPI {
	heads := dir.DepartmentHeads()
	out := make([]domain.DeptHeadKPI, 0, len(heads))

	for _, h := range heads {
		var reporting []domain.ManagerKPI
		for _, m := range managerKPIs {
			if m.ReportsTo == h.ID {
				reporting = append(reporting, m)
			}
		}

		avg := 100
		totalEscalated := 0
		if len(reporting) > 0 {
			sum := 0
			for _, m := range reporting {
				sum += m.Score
				totalEscalated += m.Escalated
			}
			avg = int(math.Round(float64(sum) / float64(len(reporting))))
		}

		out = append(out, domain.DeptHeadKPI{
			UserID:          h.ID,
			Name:            h.Name,
			Dept:            h.Dept,
			AvgManagerScore: avg,
			TotalEscalated:  totalEscalated,
		})
	}
	return out
}

// Rollup aggregates scores recursively over the whole reportsTo relation.
// Managers are leaves carrying their own KPI score; every superior averages
// the scores of its direct reports and sums their escalations. Users with no
// reports score 100. Manager -> department head is the depth-two special
// case of this walk.
func Rollup(managerKPIs []domain.ManagerKPI, dir *directory.Directory) []domain.RollupNode {
	byID := make(map[string]domain.ManagerKPI, len(managerKPIs))
	for _, m := range managerKPIs {
		byID[m.UserID] = m
	}

	var build func(u domain.User) domain.RollupNode
	build = func(u domain.User) domain.RollupNode {
		node := domain.RollupNode{
			UserID:      u.ID,
			Name:        u.Name,
			Designation: u.Designation,
		}

		for _, r := range dir.DirectReports(u.ID) {
			node.Reports = append(node.Reports, build(r))
		}

		if kpi, isManager := byID[u.ID]; isManager {
			node.Score = kpi.Score
			node.TotalEscalated = kpi.Escalated
			return node
		}

		node.Score = 100
		if len(node.Reports) > 0 {
			sum := 0
			for _, r := range node.Reports {
				sum += r.Score
				node.TotalEscalated += r.TotalEscalated
			}
			node.Score = int(math.Round(float64(sum) / float64(len(node.Reports))))
		}
		return node
	}

	roots := dir.Roots()
	out := make([]domain.RollupNode, 0, len(roots))
	for _, u := range roots {
		out = append(out, build(u))
	}
	return out
}

// Summary computes the dashboard headline counts over a finding snapshot.
func Summary(findings []domain.Finding, thresholdDays int, now time.Time) domain.SummaryStats {
	s := domain.SummaryStats{Total: len(findings)}
	for _, f := range findings {
		status := f.Status.Normalize()
		if status == domain.FindingStatusOpen || status == domain.FindingStatusReopened {
			s.Open++
		}
		if status == domain.FindingStatusClosed {
			s.Closed++
		}
		if f.Type == domain.FindingTypeOFI {
			s.OFIs++
		} else {
			s.NonOFIs++
		}
		if tat.IsOverdue(f, thresholdDays, now) {
			s.Overdue++
		}
	}
	return s
}

// DeptPerformance counts findings per responsible area, sorted by area name.
func DeptPerformance(findings []domain.Finding) []domain.DeptPerformance {
	byArea := make(map[string]*domain.DeptPerformance)
	for _, f := range findings {
		d, ok := byArea[f.Area]
		if !ok {
			d = &domain.DeptPerformance{Area: f.Area}
			byArea[f.Area] = d
		}
		if f.Type == domain.FindingTypeOFI {
			d.OFIs++
		} else {
			d.Findings++
		}
		if f.Status.IsClosed() {
			d.Closed++
		}
	}

	out := make([]domain.DeptPerformance, 0, len(byArea))
	for _, d := range byArea {
		total := d.Findings + d.OFIs
		d.ClosureRate = 100
		if total > 0 {
			d.ClosureRate = int(math.Round(100 * float64(d.Closed) / float64(total)))
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	return out
}

// ProcessNoncompliance ranks processes by finding volume, worst first,
// capped at the top five.
func ProcessNoncompliance(findings []domain.Finding) []domain.ProcessNoncompliance {
	byProcess := make(map[string]*domain.ProcessNoncompliance)
	for _, f := range findings {
		name := f.ProcessName
		if name == "" {
			name = "Unknown"
		}
		p, ok := byProcess[name]
		if !ok {
			p = &domain.ProcessNoncompliance{Process: name}
			byProcess[name] = p
		}
		switch f.Type {
		case domain.FindingTypeMajor:
			p.Major++
		case domain.FindingTypeMinor:
			p.Minor++
		case domain.FindingTypeOFI:
			p.OFI++
		}
	}

	out := make([]domain.ProcessNoncompliance, 0, len(byProcess))
	for _, p := range byProcess {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		ti := out[i].Major + out[i].Minor + out[i].OFI
		tj := out[j].Major + out[j].Minor + out[j].OFI
		if ti != tj {
			return ti > tj
		}
		return out[i].Process < out[j].Process
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// TATByAuditType averages first-response turnaround per audit type, one
// decimal, zero when a type has no responded findings.
func TATByAuditType(findings []domain.Finding) []domain.AuditTypeTAT {
	types := []domain.AuditType{
		domain.AuditTypeQualityInfoSec,
		domain.AuditTypeFinancial,
		domain.AuditTypeSpecialRequest,
	}

	out := make([]domain.AuditTypeTAT, 0, len(types))
	for _, t := range types {
		sum, n := 0, 0
		for _, f := range findings {
			if f.AuditType != t || f.ResponseAt == nil {
				continue
			}
			sum += tat.ResponseDays(f.CreatedAt, *f.ResponseAt)
			n++
		}
		avg := 0.0
		if n > 0 {
			avg = math.Round(10*float64(sum)/float64(n)) / 10
		}
		out = append(out, domain.AuditTypeTAT{AuditType: t, AvgDays: avg})
	}
	return out
}
