package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// JobRequest payload for create/update.
type JobRequest struct {
	Title          string `json:"title" validate:"required,min=1,max=200"`
	Description    string `json:"description" validate:"max=8000"`
	Location       string `json:"location" validate:"max=120"`
	EmploymentType string `json:"employment_type" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	SalaryMin      *int64 `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax      *int64 `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	IdentityOverride
}

// JobResponse response.
type JobResponse struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	SalaryMin      *int64    `json:"salary_min,omitempty"`
	SalaryMax      *int64    `json:"salary_max,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewJobResponse maps the domain entity.
func NewJobResponse(job *domain.JobPosting) JobResponse {
	return JobResponse{
		ID:             job.ID.String(),
		BusinessID:     job.BusinessID.String(),
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		EmploymentType: string(job.EmploymentType),
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		CreatedAt:      job.RowCreatedDate,
	}
}
