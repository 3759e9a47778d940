// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates an administrator allowed to mutate the catalog.
	RoleAdmin Role = "admin"
	// RoleCustomer indicates a regular customer role.
	RoleCustomer Role = "customer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	default:
		return false
	}
}

// RoleFromString converts a free-text role label into a Role.
// Anything that is not a known role becomes RoleCustomer, so the closed
// enumeration holds at the domain boundary.
func RoleFromString(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}

	return RoleCustomer
}
