package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles an invitation may assign.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleAgent, RoleLandlord, RoleTenant}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleAgent, RoleLandlord, RoleTenant:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }
