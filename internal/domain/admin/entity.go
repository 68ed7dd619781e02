package admin

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Roles lists every role an operator account may hold.
var Roles = []string{RoleAdmin, RoleSuperAdmin}

// Admin represents an operator account. Admins are created out-of-band by the
// createadmin tool, never through the public API.
type Admin struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHashed string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdminRole reports whether role belongs to an operator account.
func IsAdminRole(role string) bool {
	for _, r := range Roles {
		if role == r {
			return true
		}
	}
	return false
}
