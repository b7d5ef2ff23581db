package domain

type Role string

const (
	RoleLeadAuditor Role = "LEAD_AUDITOR"
	RoleAuditor     Role = "AUDITOR"
	RoleAuditee     Role = "AUDITEE"
	RoleDevAdmin    Role = "DEV_ADMIN"
)

type Designation string

const (
	DesignationStaff            Designation = "Staff"
	DesignationSupervisor       Designation = "Supervisor"
	DesignationAssistantManager Designation = "Assistant Manager"
	DesignationManager          Designation = "Manager"
	DesignationDepartmentHead   Designation = "Department Head"
)

// User is a directory entry. ReportsTo points at the id of the superior;
// the directory validates the relation is acyclic at load time.
type User struct {
	ID          string
	Name        string
	Role        Role
	Dept        string
	Email       string
	Designation Designation
	ReportsTo   string
}
