package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/cache"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/observability"
	"github.com/spec-kit/directory-service/internal/repository"
)

// maxRefreshAttempts bounds version-conflict retries when concurrent review
// writers race on the same business.
const maxRefreshAttempts = 3

// ErrRefreshConflict is reported when every attempt lost the version race.
var ErrRefreshConflict = errors.New("aggregate refresh lost version race")

// RefreshOutcome is the secondary result of a review mutation. The primary
// mutation reports success independently; a non-nil Err here means the
// denormalized rating fields are stale until the next refresh.
type RefreshOutcome struct {
	Refreshed    bool
	TotalReviews int
	Rating       float64
	Err          error
}

// AggregateService recomputes the denormalized review aggregate on a
// business from the full approved, visible review set. Never incremental:
// every refresh is a re-scan, so a lost update degrades to staleness rather
// than drift.
type AggregateService struct {
	businesses repository.BusinessRepository
	reviews    repository.ReviewRepository
	cache      *cache.BusinessCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAggregateService constructs the service.
func NewAggregateService(
	businesses repository.BusinessRepository,
	reviews repository.ReviewRepository,
	businessCache *cache.BusinessCache,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AggregateService {
	return &AggregateService{
		businesses: businesses,
		reviews:    reviews,
		cache:      businessCache,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Refresh recomputes total_reviews and rating for the business. Idempotent;
// a no-op when the business is missing or hidden. Failures are reported in
// the outcome, never raised to the triggering mutation.
func (s *AggregateService) Refresh(ctx context.Context, businessID uuid.UUID, id identity.EffectiveIdentity) RefreshOutcome {
	outcome := s.refresh(ctx, businessID, id)

	switch {
	case outcome.Err != nil:
		s.logger.Warn("aggregate refresh failed",
			zap.String("business_id", businessID.String()),
			zap.Error(outcome.Err))
		s.metrics.RecordAggregateRefresh(false)
		s.publish(ctx, events.Event{
			Type:       events.EventAggregateRefreshFailed,
			BusinessID: businessID,
			Actor:      actorFor(id),
			Payload:    events.AggregateRefreshFailedPayload{Reason: outcome.Err.Error()},
		})
	case outcome.Refreshed:
		s.metrics.RecordAggregateRefresh(true)
		s.cache.Invalidate(ctx, businessID)
		s.publish(ctx, events.Event{
			Type:       events.EventAggregateRefreshed,
			BusinessID: businessID,
			Actor:      actorFor(id),
			Payload: events.AggregateRefreshedPayload{
				TotalReviews: outcome.TotalReviews,
				Rating:       outcome.Rating,
			},
		})
	}
	return outcome
}

func (s *AggregateService) refresh(ctx context.Context, businessID uuid.UUID, id identity.EffectiveIdentity) RefreshOutcome {
	for attempt := 0; attempt < maxRefreshAttempts; attempt++ {
		business, err := s.businesses.GetByID(ctx, businessID, authz.Scope{})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// missing or soft-deleted business: nothing to refresh
				return RefreshOutcome{}
			}
			return RefreshOutcome{Err: err}
		}

		approved, err := s.reviews.ListApproved(ctx, businessID)
		if err != nil {
			return RefreshOutcome{Err: err}
		}

		total := len(approved)
		rating := 0.0
		if total > 0 {
			sum := 0
			for _, review := range approved {
				sum += review.Rating
			}
			rating = float64(sum) / float64(total)
		}

		applied, err := s.businesses.UpdateAggregate(ctx, repository.AggregateUpdate{
			BusinessID:   businessID,
			TotalReviews: total,
			Rating:       rating,
			Version:      business.Version,
			UpdatedAt:    time.Now(),
			UpdateUserID: id.UserID,
		})
		if err != nil {
			return RefreshOutcome{Err: err}
		}
		if applied {
			return RefreshOutcome{Refreshed: true, TotalReviews: total, Rating: rating}
		}
		// version moved under us; reload and rescan
	}
	return RefreshOutcome{Err: ErrRefreshConflict}
}

func (s *AggregateService) publish(ctx context.Context, event events.Event) {
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

func actorFor(id identity.EffectiveIdentity) events.Actor {
	return events.Actor{
		UserID:      id.UserID,
		CustomerID:  id.CustomerID,
		DisplayName: id.DisplayName,
	}
}
