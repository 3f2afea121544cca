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

// AnnouncementFilter captures announcement listing parameters.
type AnnouncementFilter struct {
	Scope      authz.Scope
	BusinessID *uuid.UUID
	ActiveAt   *time.Time
	Page       authz.Page
}

// AnnouncementRepository encapsulates announcement persistence.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	Update(ctx context.Context, announcement *domain.Announcement, scope authz.Scope) error
	SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.Announcement, error)
	List(ctx context.Context, filter AnnouncementFilter) ([]domain.Announcement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository instantiates repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

const announcementColumns = `id, business_id, title, body, starts_at, ends_at,
        auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
        row_created_date, row_updated_date, create_user_id, update_user_id`

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (business_id, title, body, starts_at, ends_at,
            auth_user_id, auth_customer_id, row_is_active, row_is_deleted,
            row_created_date, row_updated_date, create_user_id, update_user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		announcement.BusinessID,
		announcement.Title,
		announcement.Body,
		announcement.StartsAt,
		announcement.EndsAt,
		announcement.AuthUserID,
		announcement.AuthCustomerID,
		announcement.RowIsActive,
		announcement.RowIsDeleted,
		announcement.RowCreatedDate,
		announcement.RowUpdatedDate,
		announcement.CreateUserID,
		announcement.UpdateUserID,
	).Scan(&announcement.ID)
}

func (r *announcementRepository) Update(ctx context.Context, announcement *domain.Announcement, scope authz.Scope) error {
	args := []any{
		announcement.Title,
		announcement.Body,
		announcement.StartsAt,
		announcement.EndsAt,
		announcement.RowUpdatedDate,
		announcement.UpdateUserID,
		announcement.ID,
	}
	clauses := []string{"id = $7"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE announcements SET title=$1, body=$2, starts_at=$3, ends_at=$4,
            row_updated_date=$5, update_user_id=$6
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

func (r *announcementRepository) SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	args := []any{updatedAt, updateUserID, id}
	clauses := []string{"id = $3"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`
        UPDATE announcements SET row_is_deleted=TRUE, row_updated_date=$1, update_user_id=$2
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

func (r *announcementRepository) GetByID(ctx context.Context, id uuid.UUID, scope authz.Scope) (*domain.Announcement, error) {
	args := []any{id}
	clauses := []string{"id = $1"}
	clauses, args = scope.Apply(clauses, args)

	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE %s`, announcementColumns, strings.Join(clauses, " AND "))

	var announcement domain.Announcement
	if err := scanAnnouncement(r.pool.QueryRow(ctx, query, args...), &announcement); err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]domain.Announcement, error) {
	clauses := []string{}
	args := []any{}
	clauses, args = filter.Scope.Apply(clauses, args)

	if filter.BusinessID != nil {
		args = append(args, *filter.BusinessID)
		clauses = append(clauses, fmt.Sprintf("business_id = $%d", len(args)))
	}
	if filter.ActiveAt != nil {
		args = append(args, *filter.ActiveAt)
		at := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(starts_at IS NULL OR starts_at <= %s)", at))
		clauses = append(clauses, fmt.Sprintf("(ends_at IS NULL OR ends_at >= %s)", at))
	}

	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE %s ORDER BY row_created_date DESC LIMIT %d OFFSET %d`,
		announcementColumns, strings.Join(clauses, " AND "), filter.Page.Limit(), filter.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var announcement domain.Announcement
		if err := scanAnnouncement(rows, &announcement); err != nil {
			return nil, err
		}
		result = append(result, announcement)
	}
	return result, rows.Err()
}

func scanAnnouncement(row rowScanner, announcement *domain.Announcement) error {
	return row.Scan(
		&announcement.ID,
		&announcement.BusinessID,
		&announcement.Title,
		&announcement.Body,
		&announcement.StartsAt,
		&announcement.EndsAt,
		&announcement.AuthUserID,
		&announcement.AuthCustomerID,
		&announcement.RowIsActive,
		&announcement.RowIsDeleted,
		&announcement.RowCreatedDate,
		&announcement.RowUpdatedDate,
		&announcement.CreateUserID,
		&announcement.UpdateUserID,
	)
}
