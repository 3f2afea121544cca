package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// AnnouncementRequest payload for create/update.
type AnnouncementRequest struct {
	Title      string     `json:"title" validate:"required,min=1,max=200"`
	Body       string     `json:"body" validate:"max=4000"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	IdentityOverride
}

// AnnouncementResponse response.
type AnnouncementResponse struct {
	ID         string     `json:"id"`
	BusinessID string     `json:"business_id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewAnnouncementResponse maps the domain entity.
func NewAnnouncementResponse(announcement *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:         announcement.ID.String(),
		BusinessID: announcement.BusinessID.String(),
		Title:      announcement.Title,
		Body:       announcement.Body,
		StartsAt:   announcement.StartsAt,
		EndsAt:     announcement.EndsAt,
		CreatedAt:  announcement.RowCreatedDate,
	}
}
