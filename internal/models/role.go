package models

import (
	"encoding/json"
	"fmt"
)

// Role determines which actions a user may perform inside its tenant.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleManager, RoleVendor, RoleCustomer}

// ParseRole converts s into a Role, rejecting anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON rejects unknown role values at the request boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role must be a string: %w", err)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
