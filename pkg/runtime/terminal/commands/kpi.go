package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/services/kpi"
	"github.com/de-tools/audit-atlas/pkg/services/tat"
)

// Snapshot is the working set a command computes over.
type Snapshot struct {
	Findings    []domain.Finding
	ActionPlans []domain.ActionPlan
	Directory   *directory.Directory
}

// SnapshotLoader produces the working set, typically from the configured
// seed and directory files.
type SnapshotLoader func(ctx context.Context) (Snapshot, error)

type managersCmd struct {
	auditType string
	load      SnapshotLoader
	reporter  *export.Reporter
}

func NewManagersCmd(load SnapshotLoader, reporter *export.Reporter) *cobra.Command {
	mc := &managersCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "managers",
		Short: "Show the per-manager compliance scorecard",
		RunE:  mc.run,
	}
	cmd.Flags().StringVar(&mc.auditType, "audit-type", "", "Restrict to one audit type")
	return cmd
}

func (mc *managersCmd) run(cmd *cobra.Command, _ []string) error {
	snap, err := mc.load(cmd.Context())
	if err != nil {
		return err
	}

	findings := kpi.FilterByAuditType(snap.Findings, domain.AuditType(mc.auditType))
	kpis := kpi.ManagerKPIs(findings, snap.ActionPlans, snap.Directory)

	report := &domain.Report{
		Title:   "Manager KPIs",
		Columns: []string{"Manager", "Department", "Total NCARs", "Escalated", "Avg Response TAT", "CAP Timeliness", "Score"},
	}
	for _, k := range kpis {
		avgTAT := "N/A"
		if k.AvgResponseTAT != nil {
			avgTAT = fmt.Sprintf("%.1f", *k.AvgResponseTAT)
		}
		report.Rows = append(report.Rows, []string{
			k.Name,
			k.Dept,
			strconv.Itoa(k.TotalFindings),
			strconv.Itoa(k.Escalated),
			avgTAT,
			strconv.Itoa(k.CAPTimeliness),
			strconv.Itoa(k.Score),
		})
	}

	return mc.reporter.Handle(report)
}

type headsCmd struct {
	auditType string
	load      SnapshotLoader
	reporter  *export.Reporter
}

func NewHeadsCmd(load SnapshotLoader, reporter *export.Reporter) *cobra.Command {
	hc := &headsCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "heads",
		Short: "Show department-head scores rolled up from their managers",
		RunE:  hc.run,
	}
	cmd.Flags().StringVar(&hc.auditType, "audit-type", "", "Restrict to one audit type")
	return cmd
}

func (hc *headsCmd) run(cmd *cobra.Command, _ []string) error {
	snap, err := hc.load(cmd.Context())
	if err != nil {
		return err
	}

	findings := kpi.FilterByAuditType(snap.Findings, domain.AuditType(hc.auditType))
	managerKPIs := kpi.ManagerKPIs(findings, snap.ActionPlans, snap.Directory)
	heads := kpi.DeptHeadKPIs(managerKPIs, snap.Directory)

	report := &domain.Report{
		Title:   "Department Head KPIs",
		Columns: []string{"Head", "Department", "Avg Manager Score", "Total Escalated"},
	}
	for _, h := range heads {
		report.Rows = append(report.Rows, []string{
			h.Name,
			h.Dept,
			strconv.Itoa(h.AvgManagerScore),
			strconv.Itoa(h.TotalEscalated),
		})
	}

	return hc.reporter.Handle(report)
}

type summaryCmd struct {
	auditType string
	threshold int
	load      SnapshotLoader
	reporter  *export.Reporter
}

func NewSummaryCmd(load SnapshotLoader, reporter *export.Reporter) *cobra.Command {
	sc := &summaryCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show headline finding counts",
		RunE:  sc.run,
	}
	cmd.Flags().StringVar(&sc.auditType, "audit-type", "", "Restrict to one audit type")
	cmd.Flags().IntVar(&sc.threshold, "threshold", tat.DefaultThresholdDays, "Overdue threshold in days")
	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	snap, err := sc.load(cmd.Context())
	if err != nil {
		return err
	}

	findings := kpi.FilterByAuditType(snap.Findings, domain.AuditType(sc.auditType))
	stats := kpi.Summary(findings, sc.threshold, time.Now())

	report := &domain.Report{
		Title: "NCAR Summary",
		Summary: []domain.ReportLine{
			{Label: "Total", Value: strconv.Itoa(stats.Total)},
			{Label: "Open", Value: strconv.Itoa(stats.Open)},
			{Label: "Closed", Value: strconv.Itoa(stats.Closed)},
			{Label: "OFIs", Value: strconv.Itoa(stats.OFIs)},
			{Label: "NCARs (non-OFI)", Value: strconv.Itoa(stats.NonOFIs)},
			{Label: "Overdue", Value: strconv.Itoa(stats.Overdue)},
		},
	}
	return sc.reporter.Handle(report)
}
