package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/repository"
)

func pageDefaults() authz.Page {
	return authz.NormalizePage(1, 20, 20, 100)
}

// fakeBusinessRepo is an in-memory BusinessRepository with a configurable
// number of forced version conflicts on UpdateAggregate.
type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*domain.Business
	conflicts  int
	getErr     error
}

func newFakeBusinessRepo(businesses ...*domain.Business) *fakeBusinessRepo {
	repo := &fakeBusinessRepo{businesses: map[uuid.UUID]*domain.Business{}}
	for _, business := range businesses {
		repo.businesses[business.ID] = business
	}
	return repo
}

func scopeMatches(meta domain.RowMeta, scope authz.Scope) bool {
	if !meta.Visible() {
		return false
	}
	if scope.CustomerID != nil {
		if meta.AuthCustomerID == nil || *meta.AuthCustomerID != *scope.CustomerID {
			return false
		}
	}
	if scope.UserID != nil {
		if meta.AuthUserID == nil || *meta.AuthUserID != *scope.UserID {
			return false
		}
	}
	return true
}

func (r *fakeBusinessRepo) Create(_ context.Context, business *domain.Business) error {
	business.ID = uuid.New()
	r.businesses[business.ID] = business
	return nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, business *domain.Business, scope authz.Scope) error {
	existing, ok := r.businesses[business.ID]
	if !ok || !scopeMatches(existing.RowMeta, scope) {
		return pgx.ErrNoRows
	}
	r.businesses[business.ID] = business
	return nil
}

func (r *fakeBusinessRepo) SoftDelete(_ context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	business, ok := r.businesses[id]
	if !ok || !scopeMatches(business.RowMeta, scope) {
		return pgx.ErrNoRows
	}
	business.RowIsDeleted = true
	business.RowUpdatedDate = updatedAt
	business.UpdateUserID = updateUserID
	return nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID, scope authz.Scope) (*domain.Business, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	business, ok := r.businesses[id]
	if !ok || !scopeMatches(business.RowMeta, scope) {
		return nil, pgx.ErrNoRows
	}
	copied := *business
	return &copied, nil
}

func (r *fakeBusinessRepo) List(_ context.Context, filter repository.BusinessFilter) ([]domain.Business, error) {
	var result []domain.Business
	for _, business := range r.businesses {
		if scopeMatches(business.RowMeta, filter.Scope) {
			result = append(result, *business)
		}
	}
	return result, nil
}

func (r *fakeBusinessRepo) UpdateAggregate(_ context.Context, update repository.AggregateUpdate) (bool, error) {
	business, ok := r.businesses[update.BusinessID]
	if !ok || !business.Visible() {
		return false, nil
	}
	if r.conflicts > 0 {
		r.conflicts--
		business.Version++
		return false, nil
	}
	if business.Version != update.Version {
		return false, nil
	}
	business.TotalReviews = update.TotalReviews
	business.Rating = update.Rating
	business.Version++
	business.RowUpdatedDate = update.UpdatedAt
	business.UpdateUserID = update.UpdateUserID
	return true, nil
}

// fakeReviewRepo is an in-memory ReviewRepository.
type fakeReviewRepo struct {
	reviews map[uuid.UUID]*domain.Review
	listErr error
}

func newFakeReviewRepo(reviews ...*domain.Review) *fakeReviewRepo {
	repo := &fakeReviewRepo{reviews: map[uuid.UUID]*domain.Review{}}
	for _, review := range reviews {
		repo.reviews[review.ID] = review
	}
	return repo
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	review.ID = uuid.New()
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *domain.Review, scope authz.Scope) error {
	existing, ok := r.reviews[review.ID]
	if !ok || !scopeMatches(existing.RowMeta, scope) {
		return pgx.ErrNoRows
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) SoftDelete(_ context.Context, id uuid.UUID, scope authz.Scope, updatedAt time.Time, updateUserID *uuid.UUID) error {
	review, ok := r.reviews[id]
	if !ok || !scopeMatches(review.RowMeta, scope) {
		return pgx.ErrNoRows
	}
	review.RowIsDeleted = true
	review.RowUpdatedDate = updatedAt
	review.UpdateUserID = updateUserID
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id uuid.UUID, scope authz.Scope) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok || !scopeMatches(review.RowMeta, scope) {
		return nil, pgx.ErrNoRows
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) List(_ context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range r.reviews {
		if !scopeMatches(review.RowMeta, filter.Scope) {
			continue
		}
		if filter.BusinessID != nil && review.BusinessID != *filter.BusinessID {
			continue
		}
		if filter.ApprovedOnly && !review.IsApproved {
			continue
		}
		result = append(result, *review)
	}
	return result, nil
}

func (r *fakeReviewRepo) ListApproved(_ context.Context, businessID uuid.UUID) ([]domain.Review, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.Review
	for _, review := range r.reviews {
		if review.BusinessID == businessID && review.CountsTowardAggregate() {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) SetApproval(_ context.Context, id uuid.UUID, approved bool, updatedAt time.Time, updateUserID *uuid.UUID) error {
	review, ok := r.reviews[id]
	if !ok {
		return pgx.ErrNoRows
	}
	review.IsApproved = approved
	review.RowUpdatedDate = updatedAt
	review.UpdateUserID = updateUserID
	return nil
}
