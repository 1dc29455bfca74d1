package admin

// Roles form a closed set; role and permissions are assigned at login time
// from a fixed lookup. There is no self-service admin registration.
const (
	RoleSuperAdmin     = "super_admin"
	RoleAdmin          = "admin"
	RoleFinanceOfficer = "finance_officer"
)

// Permissions
const (
	PermManageStudents = "manage_students"
	PermManagePayments = "manage_payments"
	PermViewReports    = "view_reports"
	PermSystemSettings = "system_settings"
)

var (
	AllRoles = []string{RoleSuperAdmin, RoleAdmin, RoleFinanceOfficer}

	rolePermissions = map[string][]string{
		RoleSuperAdmin:     {PermManageStudents, PermManagePayments, PermViewReports, PermSystemSettings},
		RoleAdmin:          {PermManageStudents, PermViewReports},
		RoleFinanceOfficer: {PermManagePayments, PermViewReports},
	}
)

// RolePermissions returns the fixed permission set of a role.
func RolePermissions(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// Admin is the authenticated identity of a dashboard administrator.
type Admin struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Department  string   `json:"department"`
	Permissions []string `json:"permissions"`
}

func (a *Admin) HasPermission(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
