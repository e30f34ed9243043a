// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular customer role.
	RoleUser Role = "user"
	// RoleAdmin indicates an administrator role.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Coerce maps an arbitrary role string onto a valid Role. Anything that is
// not explicitly "admin" becomes a regular user.
func Coerce(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}

	return RoleUser
}
