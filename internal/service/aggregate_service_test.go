package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/observability"
)

func visibleMeta() domain.RowMeta {
	now := time.Now()
	return domain.RowMeta{
		RowIsActive:    true,
		RowIsDeleted:   false,
		RowCreatedDate: now,
		RowUpdatedDate: now,
	}
}

func testBusiness() *domain.Business {
	return &domain.Business{
		ID:      uuid.New(),
		Name:    "Corner Bakery",
		Slug:    "corner-bakery",
		RowMeta: visibleMeta(),
	}
}

func approvedReview(businessID uuid.UUID, rating int) *domain.Review {
	return &domain.Review{
		ID:         uuid.New(),
		BusinessID: businessID,
		Rating:     rating,
		IsApproved: true,
		RowMeta:    visibleMeta(),
	}
}

func newAggregateService(businesses *fakeBusinessRepo, reviews *fakeReviewRepo) *AggregateService {
	return NewAggregateService(businesses, reviews, nil, nil, observability.NewMetrics(), zap.NewNop())
}

func TestRefreshRecomputesFromApprovedReviews(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo(
		approvedReview(business.ID, 5),
		approvedReview(business.ID, 4),
		approvedReview(business.ID, 3),
	)

	outcome := newAggregateService(businesses, reviews).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 3, outcome.TotalReviews)
	assert.InDelta(t, 4.0, outcome.Rating, 1e-9)

	assert.Equal(t, 3, business.TotalReviews)
	assert.InDelta(t, 4.0, business.Rating, 1e-9)
	assert.Equal(t, int64(1), business.Version)
}

func TestRefreshSkipsUnapprovedAndDeletedReviews(t *testing.T) {
	business := testBusiness()
	unapproved := approvedReview(business.ID, 1)
	unapproved.IsApproved = false
	deleted := approvedReview(business.ID, 1)
	deleted.RowIsDeleted = true

	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo(unapproved, deleted, approvedReview(business.ID, 4))

	outcome := newAggregateService(businesses, reviews).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 1, outcome.TotalReviews)
	assert.InDelta(t, 4.0, outcome.Rating, 1e-9)
}

func TestRefreshZeroesAggregateWhenNoApprovedReviews(t *testing.T) {
	business := testBusiness()
	business.TotalReviews = 7
	business.Rating = 4.2
	businesses := newFakeBusinessRepo(business)

	outcome := newAggregateService(businesses, newFakeReviewRepo()).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 0, outcome.TotalReviews)
	assert.Zero(t, outcome.Rating)
	assert.Equal(t, 0, business.TotalReviews)
	assert.Zero(t, business.Rating)
}

func TestRefreshIsNoOpForMissingBusiness(t *testing.T) {
	outcome := newAggregateService(newFakeBusinessRepo(), newFakeReviewRepo()).Refresh(context.Background(), uuid.New(), identity.EffectiveIdentity{})

	assert.NoError(t, outcome.Err)
	assert.False(t, outcome.Refreshed)
}

func TestRefreshIsNoOpForSoftDeletedBusiness(t *testing.T) {
	business := testBusiness()
	business.RowIsDeleted = true
	businesses := newFakeBusinessRepo(business)

	outcome := newAggregateService(businesses, newFakeReviewRepo()).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	assert.NoError(t, outcome.Err)
	assert.False(t, outcome.Refreshed)
}

func TestRefreshRetriesVersionConflict(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	businesses.conflicts = 2
	reviews := newFakeReviewRepo(approvedReview(business.ID, 5))

	outcome := newAggregateService(businesses, reviews).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 1, outcome.TotalReviews)
	assert.InDelta(t, 5.0, outcome.Rating, 1e-9)
}

func TestRefreshGivesUpAfterRepeatedConflicts(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	businesses.conflicts = maxRefreshAttempts
	reviews := newFakeReviewRepo(approvedReview(business.ID, 5))

	outcome := newAggregateService(businesses, reviews).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	assert.False(t, outcome.Refreshed)
	assert.ErrorIs(t, outcome.Err, ErrRefreshConflict)
}

func TestRefreshReportsRepositoryFailureInOutcome(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	reviews.listErr = errors.New("connection reset")

	outcome := newAggregateService(businesses, reviews).Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	assert.False(t, outcome.Refreshed)
	assert.EqualError(t, outcome.Err, "connection reset")
}

func TestRefreshIsIdempotent(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo(approvedReview(business.ID, 2), approvedReview(business.ID, 4))

	svc := newAggregateService(businesses, reviews)
	first := svc.Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})
	second := svc.Refresh(context.Background(), business.ID, identity.EffectiveIdentity{})

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, first.TotalReviews, second.TotalReviews)
	assert.InDelta(t, first.Rating, second.Rating, 1e-9)
	assert.Equal(t, 2, business.TotalReviews)
	assert.InDelta(t, 3.0, business.Rating, 1e-9)
}
