package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// ReviewService coordinates review workflows. Every mutation that can change
// membership in the approved set triggers a synchronous aggregate refresh;
// the refresh outcome travels back to the caller alongside the primary
// result instead of being swallowed.
type ReviewService struct {
	reviews    repository.ReviewRepository
	businesses repository.BusinessRepository
	aggregates *AggregateService
	dispatcher events.Dispatcher
}

// NewReviewService constructs the service.
func NewReviewService(
	reviews repository.ReviewRepository,
	businesses repository.BusinessRepository,
	aggregates *AggregateService,
	dispatcher events.Dispatcher,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		businesses: businesses,
		aggregates: aggregates,
		dispatcher: dispatcher,
	}
}

// ReviewInput describes review create/update payload.
type ReviewInput struct {
	AuthorName string
	Title      string
	Body       string
	Rating     int
}

// CreateReview submits a review against a publicly visible business.
func (s *ReviewService) CreateReview(ctx context.Context, id identity.EffectiveIdentity, businessID uuid.UUID, input ReviewInput) (*domain.Review, RefreshOutcome, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, RefreshOutcome{}, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}
	if _, err := s.businesses.GetByID(ctx, businessID, authz.Scope{}); err != nil {
		return nil, RefreshOutcome{}, err
	}

	review := &domain.Review{
		BusinessID: businessID,
		AuthorName: strings.TrimSpace(input.AuthorName),
		Title:      strings.TrimSpace(input.Title),
		Body:       strings.TrimSpace(input.Body),
		Rating:     input.Rating,
		IsApproved: true,
	}
	if review.AuthorName == "" {
		review.AuthorName = id.DisplayName
	}
	identity.StampCreate(&review.RowMeta, id, time.Now())

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, RefreshOutcome{}, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventReviewSubmitted,
		BusinessID: businessID,
		Actor:      actorFor(id),
		Payload: events.ReviewSubmittedPayload{
			ReviewID:   review.ID,
			Rating:     review.Rating,
			IsApproved: review.IsApproved,
		},
	})

	outcome := s.aggregates.Refresh(ctx, businessID, id)
	return review, outcome, nil
}

// UpdateReview mutates the caller's own review. The aggregate is refreshed
// only when the rating changed.
func (s *ReviewService) UpdateReview(ctx context.Context, id identity.EffectiveIdentity, reviewID uuid.UUID, input ReviewInput) (*domain.Review, RefreshOutcome, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, RefreshOutcome{}, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}
	scope := authz.ForIdentity(id, true)
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, RefreshOutcome{}, err
	}

	review, err := s.reviews.GetByID(ctx, reviewID, scope)
	if err != nil {
		return nil, RefreshOutcome{}, err
	}

	ratingChanged := review.Rating != input.Rating
	review.AuthorName = strings.TrimSpace(input.AuthorName)
	review.Title = strings.TrimSpace(input.Title)
	review.Body = strings.TrimSpace(input.Body)
	review.Rating = input.Rating
	identity.StampUpdate(&review.RowMeta, id, time.Now())

	if err := s.reviews.Update(ctx, review, scope); err != nil {
		return nil, RefreshOutcome{}, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventReviewUpdated,
		BusinessID: review.BusinessID,
		Actor:      actorFor(id),
		Payload: events.ReviewSubmittedPayload{
			ReviewID:   review.ID,
			Rating:     review.Rating,
			IsApproved: review.IsApproved,
		},
	})

	outcome := RefreshOutcome{}
	if ratingChanged && review.IsApproved {
		outcome = s.aggregates.Refresh(ctx, review.BusinessID, id)
	}
	return review, outcome, nil
}

// DeleteReview soft-deletes the caller's own review and refreshes the
// aggregate.
func (s *ReviewService) DeleteReview(ctx context.Context, id identity.EffectiveIdentity, reviewID uuid.UUID) (RefreshOutcome, error) {
	scope := authz.ForIdentity(id, true)
	if err := scopeErr(scope.Validate()); err != nil {
		return RefreshOutcome{}, err
	}

	review, err := s.reviews.GetByID(ctx, reviewID, scope)
	if err != nil {
		return RefreshOutcome{}, err
	}
	if err := s.reviews.SoftDelete(ctx, reviewID, scope, time.Now(), id.UserID); err != nil {
		return RefreshOutcome{}, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventReviewDeleted,
		BusinessID: review.BusinessID,
		Actor:      actorFor(id),
		Payload:    events.ReviewDeletedPayload{ReviewID: reviewID},
	})

	return s.aggregates.Refresh(ctx, review.BusinessID, id), nil
}

// SetApproval toggles moderation state. Restricted to service-role callers;
// approval changes always move the approved set, so the aggregate is
// refreshed unconditionally.
func (s *ReviewService) SetApproval(ctx context.Context, id identity.EffectiveIdentity, reviewID uuid.UUID, approved bool) (*domain.Review, RefreshOutcome, error) {
	if !id.CanOverride {
		return nil, RefreshOutcome{}, apperrors.NewForbidden("service role required")
	}

	review, err := s.reviews.GetByID(ctx, reviewID, authz.Scope{})
	if err != nil {
		return nil, RefreshOutcome{}, err
	}
	if err := s.reviews.SetApproval(ctx, reviewID, approved, time.Now(), id.UserID); err != nil {
		return nil, RefreshOutcome{}, err
	}
	review.IsApproved = approved
	s.publish(ctx, events.Event{
		Type:       events.EventReviewApproved,
		BusinessID: review.BusinessID,
		Actor:      actorFor(id),
		Payload:    events.ReviewApprovedPayload{ReviewID: reviewID, Approved: approved},
	})

	outcome := s.aggregates.Refresh(ctx, review.BusinessID, id)
	return review, outcome, nil
}

// ListBusinessReviews is the public review feed: approved, visible reviews
// for one business.
func (s *ReviewService) ListBusinessReviews(ctx context.Context, businessID uuid.UUID, page authz.Page) ([]domain.Review, error) {
	return s.reviews.List(ctx, repository.ReviewFilter{
		Scope:        authz.Scope{RequireTenant: false},
		BusinessID:   &businessID,
		ApprovedOnly: true,
		Page:         page,
	})
}

// ListOwnReviews lists the caller's reviews regardless of approval state.
func (s *ReviewService) ListOwnReviews(ctx context.Context, id identity.EffectiveIdentity, page authz.Page) ([]domain.Review, error) {
	scope := authz.ForIdentity(id, true)
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}
	return s.reviews.List(ctx, repository.ReviewFilter{Scope: scope, Page: page})
}

func (s *ReviewService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
