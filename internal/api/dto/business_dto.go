package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// BusinessRequest payload for create/update.
type BusinessRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Category    string `json:"category" validate:"omitempty,oneof=RESTAURANT RETAIL SERVICES HEALTHCARE CONSTRUCTION OTHER"`
	City        string `json:"city" validate:"max=120"`
	Phone       string `json:"phone" validate:"max=40"`
	Website     string `json:"website" validate:"omitempty,url"`
	IdentityOverride
}

// BusinessSummary response.
type BusinessSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Category     string  `json:"category"`
	City         string  `json:"city"`
	TotalReviews int     `json:"total_reviews"`
	Rating       float64 `json:"rating"`
}

// BusinessDetailResponse provides full listing info.
type BusinessDetailResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	City         string    `json:"city"`
	Phone        string    `json:"phone"`
	Website      string    `json:"website"`
	TotalReviews int       `json:"total_reviews"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewBusinessSummary maps the domain entity.
func NewBusinessSummary(business *domain.Business) BusinessSummary {
	return BusinessSummary{
		ID:           business.ID.String(),
		Name:         business.Name,
		Slug:         business.Slug,
		Category:     string(business.Category),
		City:         business.City,
		TotalReviews: business.TotalReviews,
		Rating:       business.Rating,
	}
}

// NewBusinessDetail maps the domain entity.
func NewBusinessDetail(business *domain.Business) BusinessDetailResponse {
	return BusinessDetailResponse{
		ID:           business.ID.String(),
		Name:         business.Name,
		Slug:         business.Slug,
		Description:  business.Description,
		Category:     string(business.Category),
		City:         business.City,
		Phone:        business.Phone,
		Website:      business.Website,
		TotalReviews: business.TotalReviews,
		Rating:       business.Rating,
		CreatedAt:    business.RowCreatedDate,
		UpdatedAt:    business.RowUpdatedDate,
	}
}
