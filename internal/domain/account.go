package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountRole controls caller capabilities. Service accounts may override
// the token-derived identity on behalf of other tenants.
type AccountRole string

const (
	RoleMember  AccountRole = "member"
	RoleService AccountRole = "service"
)

// Account is a login credential mapped to a directory identity. UserID and
// CustomerID are the values minted into the identity claim at login.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	UserID       uuid.UUID
	CustomerID   uuid.UUID
	Role         AccountRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
