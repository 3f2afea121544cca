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

// ReviewFilter captures review listing parameters on top of a scope.
type ReviewFilter struct {
	Scope        authz.Scope
	BusinessID   *uuid.UUID
	ApprovedOnly bool
	Page         authz.Page
}

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review, scope authz.Scope) error
	SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)
	ListApproved(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool, updatedAt time.Time, updateUserID *uuid.UUID) error
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewColumns = `id, business_id, author_name, title, body, rating, is_approved,
        auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
        row_created_date, row_updated_date, create_user_id, update_user_id`

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (business_id, author_name, title, body, rating, is_approved,
            auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
            row_created_date, row_updated_date, create_user_id, update_user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		review.BusinessID,
		review.AuthorName,
		review.Title,
		review.Body,
		review.Rating,
		review.IsApproved,
		review.AuthUserID,
		review.AuthCustomerID,
		review.RowIsActive,
		review.RowIsDeleted,
		review.RowCreatedDate,
		review.RowUpdatedDate,
		review.CreateUserID,
		review.UpdateUserID,
	).Scan(&review.ID)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review, scope authz.Scope) error {
	args := []any{
		review.AuthorName,
		review.Title,
		review.Body,
		review.Rating,
		review.IsApproved,
		review.RowUpdatedDate,
		review.UpdateUserID,
		review.ID,
	}
	clauses := []string{"id = $8"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE reviews SET author_name=$1, title=$2, body=$3, rating=$4, is_approved=$5,
            row_updated_date=$6, update_user_id=$7
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

func (r *reviewRepository) SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	args := []any{updatedAt, updateUserID, id}
	clauses := []string{"id = $3"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE reviews SET row_is_deleted=TRUE, row_updated_date=$1, update_user_id=$2
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

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.Review, error) {
	args := []any{id}
	clauses := []string{"id = $1"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE %s`, reviewColumns, strings.Join(clauses, " AND "))

	var review domain.Review
	if err := scanReview(r.pool.QueryRow(ctx, query, args...), &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error) {
	clauses := []string{}
	args := []any{}
	clauses, args = filter.Scope.Apply(clauses, args)

	if filter.BusinessID != nil {
		args = append(args, *filter.BusinessID)
		clauses = append(clauses, fmt.Sprintf("business_id = $%d", len(args)))
	}
	if filter.ApprovedOnly {
		clauses = append(clauses, "is_approved = TRUE")
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE %s ORDER BY row_created_date DESC LIMIT %d OFFSET %d`,
		reviewColumns, strings.Join(clauses, " AND "), filter.Page.Limit(), filter.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// ListApproved returns the full approved, visible review set for a business.
// This is the aggregate source set; it is deliberately unpaginated.
func (r *reviewRepository) ListApproved(ctx context.Context, businessID uuid.UUID) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews
        WHERE business_id=$1 AND is_approved=TRUE AND row_is_active=TRUE AND row_is_deleted=FALSE`,
		reviewColumns)

	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *reviewRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool, updatedAt time.Time, updateUserID *uuid.UUID) error {
	const query = `
        UPDATE reviews SET is_approved=$1, row_updated_date=$2, update_user_id=$3
        WHERE id=$4 AND row_is_active=TRUE AND row_is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query, approved, updatedAt, updateUserID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanReview(row rowScanner, review *domain.Review) error {
	return row.Scan(
		&review.ID,
		&review.BusinessID,
		&review.AuthorName,
		&review.Title,
		&review.Body,
		&review.Rating,
		&review.IsApproved,
		&review.AuthUserID,
		&review.AuthCustomerID,
		&review.RowIsActive,
		&review.RowIsDeleted,
		&review.RowCreatedDate,
		&review.RowUpdatedDate,
		&review.CreateUserID,
		&review.UpdateUserID,
	)
}

func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := scanReview(rows, &review); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
