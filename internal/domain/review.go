package domain

import "github.com/google/uuid"

// Review is a rating left against a business. Only approved, visible reviews
// count toward the business aggregate.
type Review struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	AuthorName string
	Title      string
	Body       string
	Rating     int
	IsApproved bool
	RowMeta
}

// CountsTowardAggregate reports whether the review is part of the approved
// set the business rating is derived from.
func (r Review) CountsTowardAggregate() bool {
	return r.IsApproved && r.Visible()
}
