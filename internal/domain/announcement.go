package domain

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a tenant-owned notice attached to a business.
type Announcement struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Title      string
	Body       string
	StartsAt   *time.Time
	EndsAt     *time.Time
	RowMeta
}
