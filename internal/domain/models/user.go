// internal/domain/models/user.go
package models

import "strings"

// Role is a backend user role.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleStandard   Role = "STANDARD"
)

// AllRoles lists roles in descending privilege.
var AllRoles = []Role{RoleAdmin, RoleSupervisor, RoleStandard}

// ParseRole maps a loosely formatted role name (e.g. "admin", "ROLE_ADMIN")
// to a Role. ok is false for unknown names.
func ParseRole(s string) (Role, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// User is an account managed through the admin panel.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
	Enabled  bool   `json:"enabled"`

	// Password is only sent on create or reset; the backend never returns it.
	Password string `json:"password,omitempty"`
}

// HasRole reports whether the user holds role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrimaryRole returns the most privileged role the user holds, or
// RoleStandard when none is set.
func (u User) PrimaryRole() Role {
	for _, r := range AllRoles {
		if u.HasRole(r) {
			return r
		}
	}
	return RoleStandard
}
