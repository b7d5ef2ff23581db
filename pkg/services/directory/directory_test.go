package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func validUsers() []domain.User {
	return []domain.User{
		{ID: "head", Name: "Rashid Khan", Dept: "Operations", Designation: domain.DesignationDepartmentHead},
		{ID: "mgr-a", Name: "Priya Nair", Dept: "Operations", Designation: domain.DesignationManager, ReportsTo: "head"},
		{ID: "mgr-b", Name: "Tomas Weber", Dept: "Operations", Designation: domain.DesignationManager, ReportsTo: "head"},
		{ID: "staff", Name: "Lena Fischer", Dept: "Quality", Designation: domain.DesignationStaff, ReportsTo: "mgr-a"},
	}
}

func TestNew_Lookups(t *testing.T) {
	dir, err := New(validUsers())
	require.NoError(t, err)

	u, ok := dir.ByID("mgr-a")
	require.True(t, ok)
	assert.Equal(t, "Priya Nair", u.Name)

	u, ok = dir.ByName("Rashid Khan")
	require.True(t, ok)
	assert.Equal(t, "head", u.ID)

	_, ok = dir.ByID("ghost")
	assert.False(t, ok)

	assert.Len(t, dir.Managers(), 2)
	assert.Len(t, dir.DepartmentHeads(), 1)
	assert.Len(t, dir.DirectReports("head"), 2)

	roots := dir.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "head", roots[0].ID)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	users := validUsers()
	users = append(users, domain.User{ID: "mgr-a", Name: "Duplicate"})

	_, err := New(users)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate user id")
}

func TestNew_RejectsUnknownSuperior(t *testing.T) {
	users := validUsers()
	users[1].ReportsTo = "nobody"

	_, err := New(users)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown user")
}

func TestNew_RejectsCycles(t *testing.T) {
	_, err := New([]domain.User{
		{ID: "a", Name: "A", ReportsTo: "b"},
		{ID: "b", Name: "B", ReportsTo: "c"},
		{ID: "c", Name: "C", ReportsTo: "a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := `users:
  - id: head
    name: Rashid Khan
    role: AUDITEE
    dept: Operations
    email: rashid.khan@example.com
    designation: Department Head
  - id: mgr-a
    name: Priya Nair
    role: AUDITEE
    dept: Operations
    designation: Manager
    reports_to: head
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	dir, err := LoadFile(path)
	require.NoError(t, err)

	u, ok := dir.ByID("mgr-a")
	require.True(t, ok)
	assert.Equal(t, domain.RoleAuditee, u.Role)
	assert.Equal(t, domain.DesignationManager, u.Designation)
	assert.Equal(t, "head", u.ReportsTo)

	u, ok = dir.ByID("head")
	require.True(t, ok)
	assert.Equal(t, "rashid.khan@example.com", u.Email)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
