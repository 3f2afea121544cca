package domain

import (
	"time"

	"github.com/google/uuid"
)

// RowMeta carries the ownership and lifecycle columns shared by every
// directory record. A row is visible only while active and not soft-deleted,
// and only to callers whose identity matches its auth columns.
type RowMeta struct {
	AuthUserID     *uuid.UUID
	AuthCustomerID *uuid.UUID
	RowIsActive    bool
	RowIsDeleted   bool
	RowCreatedDate time.Time
	RowUpdatedDate time.Time
	CreateUserID   *uuid.UUID
	UpdateUserID   *uuid.UUID
}

// Visible reports whether the row passes the active/soft-delete gate.
func (m RowMeta) Visible() bool {
	return m.RowIsActive && !m.RowIsDeleted
}
