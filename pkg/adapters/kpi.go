package adapters

import (
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func MapManagerKPIDomainToApi(k domain.ManagerKPI) api.ManagerKPI {
	tat := "N/A"
	if k.AvgResponseTAT != nil {
		tat = fmt.Sprintf("%.1f", *k.AvgResponseTAT)
	}
	return api.ManagerKPI{
		UserID:         k.UserID,
		Name:           k.Name,
		Dept:           k.Dept,
		ReportsTo:      k.ReportsTo,
		TotalFindings:  k.TotalFindings,
		Escalated:      k.Escalated,
		AvgResponseTAT: tat,
		CAPTimeliness:  k.CAPTimeliness,
		Score:          k.Score,
	}
}

func MapManagerKPIsDomainToApi(ks []domain.ManagerKPI) []api.ManagerKPI {
	out := make([]api.ManagerKPI, 0, len(ks))
	for _, k := range ks {
		out = append(out, MapManagerKPIDomainToApi(k))
	}
	return out
}

func MapDeptHeadKPIDomainToApi(k domain.DeptHeadKPI) api.DeptHeadKPI {
	return api.DeptHeadKPI{
		UserID:          k.UserID,
		Name:            k.Name,
		Dept:            k.Dept,
		AvgManagerScore: k.AvgManagerScore,
		TotalEscalated:  k.TotalEscalated,
	}
}

func MapDeptHeadKPIsDomainToApi(ks []domain.DeptHeadKPI) []api.DeptHeadKPI {
	out := make([]api.DeptHeadKPI, 0, len(ks))
	for _, k := range ks {
		out = append(out, MapDeptHeadKPIDomainToApi(k))
	}
	return out
}

func MapRollupNodeDomainToApi(n domain.RollupNode) api.RollupNode {
	out := api.RollupNode{
		UserID:         n.UserID,
		Name:           n.Name,
		Designation:    string(n.Designation),
		Score:          n.Score,
		TotalEscalated: n.TotalEscalated,
	}
	for _, r := range n.Reports {
		out.Reports = append(out.Reports, MapRollupNodeDomainToApi(r))
	}
	return out
}

func MapSummaryStatsDomainToApi(s domain.SummaryStats) api.SummaryStats {
	return api.SummaryStats{
		Total:   s.Total,
		Open:    s.Open,
		Closed:  s.Closed,
		OFIs:    s.OFIs,
		NonOFIs: s.NonOFIs,
		Overdue: s.Overdue,
	}
}

func MapDeptPerformanceDomainToApi(ds []domain.DeptPerformance) []api.DeptPerformance {
	out := make([]api.DeptPerformance, 0, len(ds))
	for _, d := range ds {
		out = append(out, api.DeptPerformance{
			Area:        d.Area,
			Findings:    d.Findings,
			OFIs:        d.OFIs,
			Closed:      d.Closed,
			ClosureRate: d.ClosureRate,
		})
	}
	return out
}

func MapProcessNoncomplianceDomainToApi(ps []domain.ProcessNoncompliance) []api.ProcessNoncompliance {
	out := make([]api.ProcessNoncompliance, 0, len(ps))
	for _, p := range ps {
		out = append(out, api.ProcessNoncompliance{
			Process: p.Process,
			Major:   p.Major,
			Minor:   p.Minor,
			OFI:     p.OFI,
		})
	}
	return out
}

func MapAuditTypeTATDomainToApi(ts []domain.AuditTypeTAT) []api.AuditTypeTAT {
	out := make([]api.AuditTypeTAT, 0, len(ts))
	for _, t := range ts {
		out = append(out, api.AuditTypeTAT{
			AuditType: string(t.AuditType),
			AvgDays:   t.AvgDays,
		})
	}
	return out
}

func MapNotificationDomainToApi(n domain.Notification) api.Notification {
	return api.Notification{
		ID:        n.ID,
		Message:   n.Message,
		Severity:  string(n.Severity),
		Timestamp: n.Timestamp,
	}
}
