package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// JobService coordinates tenant-owned job postings.
type JobService struct {
	jobs       repository.JobRepository
	businesses repository.BusinessRepository
}

// NewJobService constructs the service.
func NewJobService(jobs repository.JobRepository, businesses repository.BusinessRepository) *JobService {
	return &JobService{jobs: jobs, businesses: businesses}
}

// JobInput describes create/update payload.
type JobInput struct {
	Title          string
	Description    string
	Location       string
	EmploymentType domain.EmploymentType
	SalaryMin      *int64
	SalaryMax      *int64
}

// JobListInput describes public job browse filters.
type JobListInput struct {
	BusinessID     *uuid.UUID
	EmploymentType *domain.EmploymentType
	Location       *string
	Page           authz.Page
}

// CreateJob posts a vacancy on a business the tenant owns.
func (s *JobService) CreateJob(ctx context.Context, id identity.EffectiveIdentity, businessID uuid.UUID, input JobInput) (*domain.JobPosting, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.businesses.GetByID(ctx, businessID, scope); err != nil {
		return nil, err
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, apperrors.NewValidationError("salary_min exceeds salary_max", nil)
	}

	job := &domain.JobPosting{
		BusinessID:     businessID,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Location:       strings.TrimSpace(input.Location),
		EmploymentType: input.EmploymentType,
		SalaryMin:      input.SalaryMin,
		SalaryMax:      input.SalaryMax,
	}
	if job.EmploymentType == "" {
		job.EmploymentType = domain.EmploymentFullTime
	}
	identity.StampCreate(&job.RowMeta, id, time.Now())

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJob mutates a posting within the tenant scope.
func (s *JobService) UpdateJob(ctx context.Context, id identity.EffectiveIdentity, jobID uuid.UUID, input JobInput) (*domain.JobPosting, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID, scope)
	if err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(input.Title)
	job.Description = strings.TrimSpace(input.Description)
	job.Location = strings.TrimSpace(input.Location)
	if input.EmploymentType != "" {
		job.EmploymentType = input.EmploymentType
	}
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	identity.StampUpdate(&job.RowMeta, id, time.Now())

	if err := s.jobs.Update(ctx, job, scope); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob soft-deletes a posting within the tenant scope.
func (s *JobService) DeleteJob(ctx context.Context, id identity.EffectiveIdentity, jobID uuid.UUID) error {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return err
	}
	return s.jobs.SoftDelete(ctx, jobID, scope, time.Now(), id.UserID)
}

// ListJobs is the public job browse.
func (s *JobService) ListJobs(ctx context.Context, input JobListInput) ([]domain.JobPosting, error) {
	return s.jobs.List(ctx, repository.JobFilter{
		Scope:          authz.Scope{RequireTenant: false},
		BusinessID:     input.BusinessID,
		EmploymentType: input.EmploymentType,
		Location:       input.Location,
		Page:           input.Page,
	})
}

// ListOwnJobs lists the tenant's postings.
func (s *JobService) ListOwnJobs(ctx context.Context, id identity.EffectiveIdentity, page authz.Page) ([]domain.JobPosting, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}
	return s.jobs.List(ctx, repository.JobFilter{Scope: scope, Page: page})
}
