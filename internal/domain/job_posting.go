package domain

import "github.com/google/uuid"

// EmploymentType enumerates job posting contract kinds.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
	EmploymentContract EmploymentType = "CONTRACT"
	EmploymentIntern   EmploymentType = "INTERNSHIP"
)

// JobPosting is a tenant-owned vacancy attached to a business.
type JobPosting struct {
	ID             uuid.UUID
	BusinessID     uuid.UUID
	Title          string
	Description    string
	Location       string
	EmploymentType EmploymentType
	SalaryMin      *int64
	SalaryMax      *int64
	RowMeta
}
