package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/identity"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

func memberIdentity() identity.EffectiveIdentity {
	userID := uuid.New()
	customerID := uuid.New()
	return identity.EffectiveIdentity{
		UserID:      &userID,
		CustomerID:  &customerID,
		DisplayName: "Member",
	}
}

func serviceIdentity() identity.EffectiveIdentity {
	id := memberIdentity()
	id.DisplayName = "Moderation Bot"
	id.CanOverride = true
	return id
}

func newReviewServiceUnderTest(businesses *fakeBusinessRepo, reviews *fakeReviewRepo) *ReviewService {
	return NewReviewService(reviews, businesses, newAggregateService(businesses, reviews), nil)
}

func TestCreateReviewAutoApprovesAndRefreshes(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	svc := newReviewServiceUnderTest(businesses, reviews)
	caller := memberIdentity()

	review, outcome, err := svc.CreateReview(context.Background(), caller, business.ID, ReviewInput{
		Title:  "Great spot",
		Body:   "Fresh bread every morning.",
		Rating: 5,
	})

	require.NoError(t, err)
	assert.True(t, review.IsApproved)
	assert.Equal(t, "Member", review.AuthorName)
	require.NotNil(t, review.AuthUserID)
	assert.Equal(t, *caller.UserID, *review.AuthUserID)

	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 1, outcome.TotalReviews)
	assert.InDelta(t, 5.0, outcome.Rating, 1e-9)
	assert.Equal(t, 1, business.TotalReviews)
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	business := testBusiness()
	svc := newReviewServiceUnderTest(newFakeBusinessRepo(business), newFakeReviewRepo())

	for _, rating := range []int{0, 6, -1} {
		_, _, err := svc.CreateReview(context.Background(), memberIdentity(), business.ID, ReviewInput{Rating: rating})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
}

func TestCreateReviewFailsForHiddenBusiness(t *testing.T) {
	business := testBusiness()
	business.RowIsDeleted = true
	svc := newReviewServiceUnderTest(newFakeBusinessRepo(business), newFakeReviewRepo())

	_, _, err := svc.CreateReview(context.Background(), memberIdentity(), business.ID, ReviewInput{Rating: 4})
	assert.Error(t, err)
}

func TestUpdateReviewRefreshesOnlyWhenRatingChanged(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	svc := newReviewServiceUnderTest(businesses, reviews)
	caller := memberIdentity()

	review, _, err := svc.CreateReview(context.Background(), caller, business.ID, ReviewInput{Title: "ok", Rating: 4})
	require.NoError(t, err)
	versionAfterCreate := business.Version

	_, outcome, err := svc.UpdateReview(context.Background(), caller, review.ID, ReviewInput{Title: "edited", Rating: 4})
	require.NoError(t, err)
	assert.False(t, outcome.Refreshed)
	assert.Equal(t, versionAfterCreate, business.Version)

	_, outcome, err = svc.UpdateReview(context.Background(), caller, review.ID, ReviewInput{Title: "edited", Rating: 2})
	require.NoError(t, err)
	assert.True(t, outcome.Refreshed)
	assert.InDelta(t, 2.0, business.Rating, 1e-9)
}

func TestUpdateReviewDeniedOutsideOwnScope(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	svc := newReviewServiceUnderTest(businesses, reviews)

	review, _, err := svc.CreateReview(context.Background(), memberIdentity(), business.ID, ReviewInput{Rating: 4})
	require.NoError(t, err)

	_, _, err = svc.UpdateReview(context.Background(), memberIdentity(), review.ID, ReviewInput{Rating: 1})
	assert.Error(t, err)
}

func TestUpdateReviewRequiresTenant(t *testing.T) {
	svc := newReviewServiceUnderTest(newFakeBusinessRepo(), newFakeReviewRepo())

	_, _, err := svc.UpdateReview(context.Background(), identity.EffectiveIdentity{}, uuid.New(), ReviewInput{Rating: 3})
	require.Error(t, err)
	assert.Equal(t, "TENANT_REQUIRED", apperrors.ToDomainError(err).Code)
}

func TestDeleteReviewRefreshesAggregate(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	svc := newReviewServiceUnderTest(businesses, reviews)
	caller := memberIdentity()

	review, _, err := svc.CreateReview(context.Background(), caller, business.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)
	require.Equal(t, 1, business.TotalReviews)

	outcome, err := svc.DeleteReview(context.Background(), caller, review.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 0, business.TotalReviews)
	assert.Zero(t, business.Rating)
}

func TestSetApprovalRequiresServiceRole(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	svc := newReviewServiceUnderTest(businesses, reviews)

	review, _, err := svc.CreateReview(context.Background(), memberIdentity(), business.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)

	_, _, err = svc.SetApproval(context.Background(), memberIdentity(), review.ID, false)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestSetApprovalMovesApprovedSet(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	reviews := newFakeReviewRepo()
	svc := newReviewServiceUnderTest(businesses, reviews)

	review, _, err := svc.CreateReview(context.Background(), memberIdentity(), business.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)
	require.Equal(t, 1, business.TotalReviews)

	updated, outcome, err := svc.SetApproval(context.Background(), serviceIdentity(), review.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsApproved)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 0, business.TotalReviews)

	_, outcome, err = svc.SetApproval(context.Background(), serviceIdentity(), review.ID, true)
	require.NoError(t, err)
	assert.True(t, outcome.Refreshed)
	assert.Equal(t, 1, business.TotalReviews)
	assert.InDelta(t, 5.0, business.Rating, 1e-9)
}

func TestListBusinessReviewsReturnsApprovedOnly(t *testing.T) {
	business := testBusiness()
	businesses := newFakeBusinessRepo(business)
	hidden := approvedReview(business.ID, 2)
	hidden.IsApproved = false
	reviews := newFakeReviewRepo(approvedReview(business.ID, 5), hidden)
	svc := newReviewServiceUnderTest(businesses, reviews)

	listed, err := svc.ListBusinessReviews(context.Background(), business.ID, pageDefaults())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsApproved)
}

func TestListOwnReviewsRequiresTenant(t *testing.T) {
	svc := newReviewServiceUnderTest(newFakeBusinessRepo(), newFakeReviewRepo())

	_, err := svc.ListOwnReviews(context.Background(), identity.EffectiveIdentity{}, pageDefaults())
	require.Error(t, err)
	assert.Equal(t, "TENANT_REQUIRED", apperrors.ToDomainError(err).Code)
}
