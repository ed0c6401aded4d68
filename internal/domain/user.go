package domain

import "time"

// Role enumerates the closed set of actor roles.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleClient Role = "CLIENT"
)

// IsValid checks membership in the closed role set.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	default:
		return false
	}
}

// User is the authenticated actor behind every request. Role is fixed at
// account creation; role changes are an identity-provider concern.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
