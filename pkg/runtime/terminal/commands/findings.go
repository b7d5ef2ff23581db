package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/audit-atlas/pkg/services/tat"
)

type findingsCmd struct {
	status    string
	auditType string
	load      SnapshotLoader
	reporter  *export.Reporter
}

func NewFindingsCmd(load SnapshotLoader, reporter *export.Reporter) *cobra.Command {
	fc := &findingsCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "findings",
		Short: "List findings from the working set",
		RunE:  fc.run,
	}
	cmd.Flags().StringVar(&fc.status, "status", "", "Restrict to one status (e.g. Open, Closed)")
	cmd.Flags().StringVar(&fc.auditType, "audit-type", "", "Restrict to one audit type")
	return cmd
}

func (fc *findingsCmd) run(cmd *cobra.Command, _ []string) error {
	snap, err := fc.load(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	report := &domain.Report{
		Title:   "Findings",
		Columns: []string{"ID", "Status", "Type", "Area", "Auditee", "Deadline", "Days Left"},
	}
	for _, f := range snap.Findings {
		if fc.status != "" && f.Status.Normalize() != domain.FindingStatus(fc.status).Normalize() {
			continue
		}
		if fc.auditType != "" && f.AuditType != domain.AuditType(fc.auditType) {
			continue
		}
		report.Rows = append(report.Rows, []string{
			f.ID,
			string(f.Status.Normalize()),
			string(f.Type),
			f.Area,
			f.Auditee,
			f.Deadline.Format("2006-01-02"),
			strconv.Itoa(tat.DaysRemaining(f.Deadline, now)),
		})
	}

	return fc.reporter.Handle(report)
}
