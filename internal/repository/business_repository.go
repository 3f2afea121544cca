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

// BusinessFilter captures directory browse parameters on top of a scope.
type BusinessFilter struct {
	Scope    authz.Scope
	Category *domain.BusinessCategory
	City     *string
	Search   *string
	Page     authz.Page
}

// AggregateUpdate is the compare-and-swap payload for the denormalized
// review aggregate. Version must equal the row's current version for the
// update to apply.
type AggregateUpdate struct {
	BusinessID   uuid.UUID
	TotalReviews int
	Rating       float64
	Version      int64
	UpdatedAt    time.Time
	UpdateUserID *uuid.UUID
}

// BusinessRepository encapsulates business persistence.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	Update(ctx context.Context, business *domain.Business, scope authz.Scope) error
	SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.Business, error)
	List(ctx context.Context, filter BusinessFilter) ([]domain.Business, error)
	UpdateAggregate(ctx context.Context, update AggregateUpdate) (bool, error)
}

type businessRepository struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository instantiates repository.
func NewBusinessRepository(pool *pgxpool.Pool) BusinessRepository {
	return &businessRepository{pool: pool}
}

const businessColumns = `id, name, slug, description, category, city, phone, website,
        total_reviews, rating, version,
        auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
        row_created_date, row_updated_date, create_user_id, update_user_id`

func (r *businessRepository) Create(ctx context.Context, business *domain.Business) error {
	const query = `
        INSERT INTO businesses (name, slug, description, category, city, phone, website,
            total_reviews, rating, version,
            auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
            row_created_date, row_updated_date, create_user_id, update_user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		business.Name,
		business.Slug,
		business.Description,
		business.Category,
		business.City,
		business.Phone,
		business.Website,
		business.TotalReviews,
		business.Rating,
		business.Version,
		business.AuthUserID,
		business.AuthCustomerID,
		business.RowIsActive,
		business.RowIsDeleted,
		business.RowCreatedDate,
		business.RowUpdatedDate,
		business.CreateUserID,
		business.UpdateUserID,
	).Scan(&business.ID)
}

func (r *businessRepository) Update(ctx context.Context, business *domain.Business, scope authz.Scope) error {
	args := []any{
		business.Name,
		business.Slug,
		business.Description,
		business.Category,
		business.City,
		business.Phone,
		business.Website,
		business.RowUpdatedDate,
		business.UpdateUserID,
		business.ID,
	}
	clauses := []string{"id = $10"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE businesses SET name=$1, slug=$2, description=$3, category=$4, city=$5,
            phone=$6, website=$7, row_updated_date=$8, update_user_id=$9
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

func (r *businessRepository) SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	args := []any{updatedAt, updateUserID, id}
	clauses := []string{"id = $3"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE businesses SET row_is_deleted=TRUE, row_updated_date=$1, update_user_id=$2
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

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.Business, error) {
	args := []any{id}
	clauses := []string{"id = $1"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`SELECT %s FROM businesses WHERE %s`, businessColumns, strings.Join(clauses, " AND "))

	var business domain.Business
	if err := scanBusiness(r.pool.QueryRow(ctx, query, args...), &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) List(ctx context.Context, filter BusinessFilter) ([]domain.Business, error) {
	clauses := []string{}
	args := []any{}
	clauses, args = filter.Scope.Apply(clauses, args)

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.City != nil && strings.TrimSpace(*filter.City) != "" {
		args = append(args, strings.TrimSpace(*filter.City))
		clauses = append(clauses, fmt.Sprintf("LOWER(city) = LOWER($%d)", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf(`SELECT %s FROM businesses WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		businessColumns, strings.Join(clauses, " AND "), filter.Page.Limit(), filter.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBusinesses(rows)
}

// UpdateAggregate applies the recomputed review aggregate guarded by the
// version column. Returns false without error when another writer bumped the
// version first.
func (r *businessRepository) UpdateAggregate(ctx context.Context, update AggregateUpdate) (bool, error) {
	const query = `
        UPDATE businesses SET total_reviews=$1, rating=$2, version=version+1,
            row_updated_date=$3, update_user_id=$4
        WHERE id=$5 AND version=$6 AND row_is_active=TRUE AND row_is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query,
		update.TotalReviews,
		update.Rating,
		update.UpdatedAt,
		update.UpdateUserID,
		update.BusinessID,
		update.Version,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner, business *domain.Business) error {
	return row.Scan(
		&business.ID,
		&business.Name,
		&business.Slug,
		&business.Description,
		&business.Category,
		&business.City,
		&business.Phone,
		&business.Website,
		&business.TotalReviews,
		&business.Rating,
		&business.Version,
		&business.AuthUserID,
		&business.AuthCustomerID,
		&business.RowIsActive,
		&business.RowIsDeleted,
		&business.RowCreatedDate,
		&business.RowUpdatedDate,
		&business.CreateUserID,
		&business.UpdateUserID,
	)
}

func scanBusinesses(rows pgx.Rows) ([]domain.Business, error) {
	var result []domain.Business
	for rows.Next() {
		var business domain.Business
		if err := scanBusiness(rows, &business); err != nil {
			return nil, err
		}
		result = append(result, business)
	}
	return result, rows.Err()
}
