package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `audit_plans:
  - id: AP_000001_202601
    start_date: 2026-01-05T00:00:00Z
    end_date: 2026-01-09T00:00:00Z
    auditors: [Lena Fischer]
    auditees: [Priya Nair]
    status: Planned
    audit_type: Quality/InfoSec
    process_name: Calibration
findings:
  - id: NCAR_000001_202601
    audit_plan_id: AP_000001_202601
    statement: Calibration records missing
    requirement: ISO 9001 Clause 7.1.5
    standard_clause: 7.1.5
    area: Operations
    auditee: Priya Nair
    created_at: 2026-01-10T09:00:00Z
    status: Action Plan Submitted
    deadline: 2026-01-24T00:00:00Z
    audit_type: Quality/InfoSec
    process_name: Calibration
    response_at: 2026-01-12T15:00:00Z
action_plans:
  - id: ACT_000001_202601
    finding_id: NCAR_000001_202601
    immediate_correction: Quarantined devices
    responsible_person: Priya Nair
    root_cause: Schedule dropped
    corrective_action: Reinstate schedule
    due_date: 2026-02-10T00:00:00Z
    submitted_at: 2026-01-12T15:00:00Z
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, data.AuditPlans, 1)
	assert.Equal(t, "Planned", data.AuditPlans[0].Status)
	assert.Equal(t, []string{"Priya Nair"}, data.AuditPlans[0].Auditees)

	require.Len(t, data.Findings, 1)
	f := data.Findings[0]
	assert.Equal(t, "Action Plan Submitted", f.Status)
	require.NotNil(t, f.ResponseAt)
	assert.Equal(t, 2026, f.ResponseAt.Year())

	require.Len(t, data.ActionPlans, 1)
	assert.Equal(t, "NCAR_000001_202601", data.ActionPlans[0].FindingID)
}

func TestLoadFile_MissingIsEmpty(t *testing.T) {
	data, err := LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, data.Findings)

	data, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, data.AuditPlans)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("findings: {not: a list}"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
