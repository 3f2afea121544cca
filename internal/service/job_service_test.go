package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

type fakeJobRepo struct {
	jobs map[uuid.UUID]*domain.JobPosting
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]*domain.JobPosting{}}
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.JobPosting) error {
	job.ID = uuid.New()
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.JobPosting, scope authz.Scope) error {
	existing, ok := r.jobs[job.ID]
	if !ok || !scopeMatches(existing.RowMeta, scope) {
		return pgx.ErrNoRows
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) SoftDelete(_ context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	job, ok := r.jobs[id]
	if !ok || !scopeMatches(job.RowMeta, scope) {
		return pgx.ErrNoRows
	}
	job.RowIsDeleted = true
	job.RowUpdatedDate = updatedAt
	job.UpdateUserID = updateUserID
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID, scope authz.Scope) (*domain.JobPosting, error) {
	job, ok := r.jobs[id]
	if !ok || !scopeMatches(job.RowMeta, scope) {
		return nil, pgx.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.JobPosting, error) {
	var result []domain.JobPosting
	for _, job := range r.jobs {
		if !scopeMatches(job.RowMeta, filter.Scope) {
			continue
		}
		if filter.BusinessID != nil && job.BusinessID != *filter.BusinessID {
			continue
		}
		if filter.EmploymentType != nil && job.EmploymentType != *filter.EmploymentType {
			continue
		}
		result = append(result, *job)
	}
	return result, nil
}

func TestCreateJobRequiresOwnedBusiness(t *testing.T) {
	owner := memberIdentity()
	business := ownedBusiness(owner)
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, newFakeBusinessRepo(business))

	job, err := svc.CreateJob(context.Background(), owner, business.ID, JobInput{Title: "Baker"})
	require.NoError(t, err)
	assert.Equal(t, domain.EmploymentFullTime, job.EmploymentType)
	require.NotNil(t, job.AuthCustomerID)
	assert.Equal(t, *owner.CustomerID, *job.AuthCustomerID)

	_, err = svc.CreateJob(context.Background(), memberIdentity(), business.ID, JobInput{Title: "Not yours"})
	assert.Error(t, err)
}

func TestCreateJobValidatesSalaryRange(t *testing.T) {
	owner := memberIdentity()
	business := ownedBusiness(owner)
	svc := NewJobService(newFakeJobRepo(), newFakeBusinessRepo(business))

	low := int64(60000)
	high := int64(40000)
	_, err := svc.CreateJob(context.Background(), owner, business.ID, JobInput{
		Title:     "Baker",
		SalaryMin: &low,
		SalaryMax: &high,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListJobsFiltersByEmploymentType(t *testing.T) {
	owner := memberIdentity()
	business := ownedBusiness(owner)
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, newFakeBusinessRepo(business))

	_, err := svc.CreateJob(context.Background(), owner, business.ID, JobInput{Title: "Baker", EmploymentType: domain.EmploymentFullTime})
	require.NoError(t, err)
	_, err = svc.CreateJob(context.Background(), owner, business.ID, JobInput{Title: "Weekend help", EmploymentType: domain.EmploymentPartTime})
	require.NoError(t, err)

	partTime := domain.EmploymentPartTime
	listed, err := svc.ListJobs(context.Background(), JobListInput{EmploymentType: &partTime, Page: pageDefaults()})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Weekend help", listed[0].Title)

	all, err := svc.ListJobs(context.Background(), JobListInput{Page: pageDefaults()})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteJobScopedToTenant(t *testing.T) {
	owner := memberIdentity()
	business := ownedBusiness(owner)
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, newFakeBusinessRepo(business))

	job, err := svc.CreateJob(context.Background(), owner, business.ID, JobInput{Title: "Baker"})
	require.NoError(t, err)

	assert.Error(t, svc.DeleteJob(context.Background(), memberIdentity(), job.ID))
	require.NoError(t, svc.DeleteJob(context.Background(), owner, job.ID))

	listed, err := svc.ListJobs(context.Background(), JobListInput{Page: pageDefaults()})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
