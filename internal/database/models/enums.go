package models

// Role is the access role of a user, derived from its group membership
type Role string

const (
	RoleNone    Role = ""
	RoleSales   Role = "sales"
	RoleSupport Role = "support"
	RoleManager Role = "manager"
)

// RolePrecedence is the order in which group names are checked when a user
// belongs to more than one role group.
var RolePrecedence = []Role{RoleManager, RoleSales, RoleSupport}

// IsValid checks if the Role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSales, RoleSupport, RoleManager:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
