package types

import "fmt"

// Role classifies a position slot and decides which view modes are available
type Role string

const (
	RoleCadetHQ      Role = "cadet-hq"
	RoleCadetPlatoon Role = "cadet-platoon"
	RoleStaff        Role = "staff"
	RoleSquadLeader  Role = "squad-leader"
	RoleSoldier      Role = "soldier"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleCadetHQ,
		RoleCadetPlatoon,
		RoleStaff,
		RoleSquadLeader,
		RoleSoldier,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleCadetHQ, RoleCadetPlatoon, RoleStaff, RoleSquadLeader, RoleSoldier:
		return true
	default:
		return false
	}
}

// DutyOfficerCapable reports whether the role may use the duty officer and
// dispatch view modes. Only cadet HQ and platoon leader positions qualify.
func (r Role) DutyOfficerCapable() bool {
	return r == RoleCadetHQ || r == RoleCadetPlatoon
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
