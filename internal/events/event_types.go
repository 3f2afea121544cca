package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBusinessCreated        EventType = "business_created"
	EventBusinessDeleted        EventType = "business_deleted"
	EventReviewSubmitted        EventType = "review_submitted"
	EventReviewUpdated          EventType = "review_updated"
	EventReviewApproved         EventType = "review_approved"
	EventReviewDeleted          EventType = "review_deleted"
	EventAggregateRefreshed     EventType = "aggregate_refreshed"
	EventAggregateRefreshFailed EventType = "aggregate_refresh_failed"
)

// Actor encapsulates the effective identity behind an event.
type Actor struct {
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	CustomerID  *uuid.UUID `json:"customer_id,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	BusinessID uuid.UUID   `json:"business_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ReviewSubmittedPayload payload.
type ReviewSubmittedPayload struct {
	ReviewID   uuid.UUID `json:"review_id"`
	Rating     int       `json:"rating"`
	IsApproved bool      `json:"is_approved"`
}

// ReviewDeletedPayload payload.
type ReviewDeletedPayload struct {
	ReviewID uuid.UUID `json:"review_id"`
}

// ReviewApprovedPayload payload.
type ReviewApprovedPayload struct {
	ReviewID uuid.UUID `json:"review_id"`
	Approved bool      `json:"approved"`
}

// AggregateRefreshedPayload payload.
type AggregateRefreshedPayload struct {
	TotalReviews int     `json:"total_reviews"`
	Rating       float64 `json:"rating"`
}

// AggregateRefreshFailedPayload payload.
type AggregateRefreshFailedPayload struct {
	Reason string `json:"reason"`
}

// BusinessCreatedPayload payload.
type BusinessCreatedPayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	City     string `json:"city"`
}
