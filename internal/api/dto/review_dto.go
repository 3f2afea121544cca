package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// ReviewRequest payload for create/update.
type ReviewRequest struct {
	AuthorName string `json:"author_name" validate:"max=120"`
	Title      string `json:"title" validate:"max=200"`
	Body       string `json:"body" validate:"max=4000"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	IdentityOverride
}

// ApproveReviewRequest payload.
type ApproveReviewRequest struct {
	Approved bool `json:"approved"`
	IdentityOverride
}

// ReviewResponse response.
type ReviewResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Rating     int       `json:"rating"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewReviewResponse maps the domain entity.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		BusinessID: review.BusinessID.String(),
		AuthorName: review.AuthorName,
		Title:      review.Title,
		Body:       review.Body,
		Rating:     review.Rating,
		IsApproved: review.IsApproved,
		CreatedAt:  review.RowCreatedDate,
	}
}
