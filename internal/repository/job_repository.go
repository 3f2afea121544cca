package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/domain"
)

// JobFilter captures job posting listing parameters.
type JobFilter struct {
	Scope          authz.Scope
	BusinessID     *uuid.UUID
	EmploymentType *domain.EmploymentType
	Location       *string
	Page           authz.Page
}

// JobRepository encapsulates job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	Update(ctx context.Context, job *domain.JobPosting, scope authz.Scope) error
	SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.JobPosting, error)
	List(ctx context.Context, filter JobFilter) ([]domain.JobPosting, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, business_id, title, description, location, employment_type,
        salary_min, salary_max,
        auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
        row_created_date, row_updated_date, create_user_id, update_user_id`

func (r *jobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (business_id, title, description, location, employment_type,
            salary_min, salary_max,
            auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
            row_created_date, row_updated_date, create_user_id, update_user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		job.BusinessID,
		job.Title,
		job.Description,
		job.Location,
		job.EmploymentType,
		job.SalaryMin,
		job.SalaryMax,
		job.AuthUserID,
		job.AuthCustomerID,
		job.RowIsActive,
		job.RowIsDeleted,
		job.RowCreatedDate,
		job.RowUpdatedDate,
		job.CreateUserID,
		job.UpdateUserID,
	).Scan(&job.ID)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobPosting, scope authz.Scope) error {
	args := []any{
		job.Title,
		job.Description,
		job.Location,
		job.EmploymentType,
		job.SalaryMin,
		job.SalaryMax,
		job.RowUpdatedDate,
		job.UpdateUserID,
		job.ID,
	}
	clauses := []string{"id = $9"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE job_postings SET title=$1, description=$2, location=$3, employment_type=$4,
            salary_min=$5, salary_max=$6, row_updated_date=$7, update_user_id=$8
        WHERE %s`, strings.Join(clauses, " AND "))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	args := []any{updatedAt, updateUserID, id}
	clauses := []string{"id = $3"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE job_postings SET row_is_deleted=TRUE, row_updated_date=$1, update_user_id=$2
        WHERE %s`, strings.Join(clauses, " AND "))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.JobPosting, error) {
	args := []any{id}
	clauses := []string{"id = $1"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE %s`, jobColumns, strings.Join(clauses, " AND "))

	var job domain.JobPosting
	if err := scanJob(r.pool.QueryRow(ctx, query, args...), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.JobPosting, error) {
	clauses := []string{}
	args := []any{}
	clauses, args = filter.Scope.Apply(clauses, args)

	if filter.BusinessID != nil {
		args = append(args, *filter.BusinessID)
		clauses = append(clauses, fmt.Sprintf("business_id = $%d", len(args)))
	}
	if filter.EmploymentType != nil {
		args = append(args, *filter.EmploymentType)
		clauses = append(clauses, fmt.Sprintf("employment_type = $%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, strings.TrimSpace(*filter.Location))
		clauses = append(clauses, fmt.Sprintf("LOWER(location) = LOWER($%d)", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE %s ORDER BY row_created_date DESC LIMIT %d OFFSET %d`,
		jobColumns, strings.Join(clauses, " AND "), filter.Page.Limit(), filter.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobPosting
	for rows.Next() {
		var job domain.JobPosting
		if err := scanJob(rows, &job); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}

func scanJob(row rowScanner, job *domain.JobPosting) error {
	return row.Scan(
		&job.ID,
		&job.BusinessID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.EmploymentType,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.AuthUserID,
		&job.AuthCustomerID,
		&job.RowIsActive,
		&job.RowIsDeleted,
		&job.RowCreatedDate,
		&job.RowUpdatedDate,
		&job.CreateUserID,
		&job.UpdateUserID,
	)
}
