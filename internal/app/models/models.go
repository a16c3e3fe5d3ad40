package models

// Role is the platform role stored on a profile
type Role string

const (
	RoleStudent      Role = "student"
	RoleCompanyAdmin Role = "company-admin"
	RoleSystemAdmin  Role = "system-admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompanyAdmin, RoleSystemAdmin:
		return true
	}
	return false
}
