package types

import "fmt"

// Role represents the function of a user within the workforce
type Role string

const (
	RoleAssignee Role = "ASSIGNEE"
	RoleTeamLead Role = "TEAM_LEAD"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleAssignee,
		RoleTeamLead,
		RoleManager,
		RoleAdmin,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAssignee,
		RoleTeamLead,
		RoleManager,
		RoleAdmin:
		return true
	default:
		return false
	}
}

// Assignable reports whether a user with this role may receive task
// assignments. ADMIN accounts are never eligible.
func (r Role) Assignable() bool {
	return r.IsValid() && r != RoleAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
