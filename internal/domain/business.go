package domain

import "github.com/google/uuid"

// BusinessCategory enumerates listing categories.
type BusinessCategory string

const (
	CategoryRestaurant   BusinessCategory = "RESTAURANT"
	CategoryRetail       BusinessCategory = "RETAIL"
	CategoryServices     BusinessCategory = "SERVICES"
	CategoryHealthcare   BusinessCategory = "HEALTHCARE"
	CategoryConstruction BusinessCategory = "CONSTRUCTION"
	CategoryOther        BusinessCategory = "OTHER"
)

// Business is the directory listing aggregate. TotalReviews and Rating are
// denormalized from the approved review set and maintained only by the
// aggregate refresh; Version guards that refresh against concurrent writers.
type Business struct {
	ID           uuid.UUID
	Name         string
	Slug         string
	Description  string
	Category     BusinessCategory
	City         string
	Phone        string
	Website      string
	TotalReviews int
	Rating       float64
	Version      int64
	RowMeta
}
