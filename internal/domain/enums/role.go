package enums

import "strings"

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	}
	return "", false
}

// IsModerator reports whether the role may approve or reject content.
func (r Role) IsModerator() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
