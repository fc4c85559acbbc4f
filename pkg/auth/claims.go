// Package auth provides JWT validation and role-based authorization for the
// lending platform. The platform consumes an external identity provider; this
// package only cares about a stable subject id and a role claim.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims issued for platform users.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if the claims include at least one of the given roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// Platform roles. SuperAdmin implies no extra permissions in the core; it is
// carried through so the facade can distinguish it for audit purposes.
const (
	RoleBorrower   = "borrower"
	RoleAgent      = "agent"
	RoleInvestor   = "investor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)
