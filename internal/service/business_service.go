package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/cache"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// BusinessService coordinates directory listing workflows.
type BusinessService struct {
	businesses repository.BusinessRepository
	cache      *cache.BusinessCache
	dispatcher events.Dispatcher
}

// NewBusinessService constructs the service.
func NewBusinessService(businesses repository.BusinessRepository, businessCache *cache.BusinessCache, dispatcher events.Dispatcher) *BusinessService {
	return &BusinessService{businesses: businesses, cache: businessCache, dispatcher: dispatcher}
}

// BusinessInput describes listing create/update payload.
type BusinessInput struct {
	Name        string
	Description string
	Category    domain.BusinessCategory
	City        string
	Phone       string
	Website     string
}

// BusinessListInput describes public browse filters.
type BusinessListInput struct {
	Category *domain.BusinessCategory
	City     *string
	Search   *string
	Page     authz.Page
}

// CreateBusiness creates a listing owned by the caller's tenant.
func (s *BusinessService) CreateBusiness(ctx context.Context, id identity.EffectiveIdentity, input BusinessInput) (*domain.Business, error) {
	if id.CustomerID == nil {
		return nil, apperrors.NewTenantRequired()
	}

	business := &domain.Business{
		Name:        strings.TrimSpace(input.Name),
		Slug:        generateSlug(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		City:        strings.TrimSpace(input.City),
		Phone:       strings.TrimSpace(input.Phone),
		Website:     strings.TrimSpace(input.Website),
	}
	if business.Category == "" {
		business.Category = domain.CategoryOther
	}
	identity.StampCreate(&business.RowMeta, id, time.Now())

	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventBusinessCreated,
		BusinessID: business.ID,
		Actor:      actorFor(id),
		Payload: events.BusinessCreatedPayload{
			Name:     business.Name,
			Category: string(business.Category),
			City:     business.City,
		},
	})
	return business, nil
}

// UpdateBusiness mutates a listing within the caller's tenant.
func (s *BusinessService) UpdateBusiness(ctx context.Context, id identity.EffectiveIdentity, businessID uuid.UUID, input BusinessInput) (*domain.Business, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}

	business, err := s.businesses.GetByID(ctx, businessID, scope)
	if err != nil {
		return nil, err
	}

	business.Name = strings.TrimSpace(input.Name)
	business.Description = strings.TrimSpace(input.Description)
	if input.Category != "" {
		business.Category = input.Category
	}
	business.City = strings.TrimSpace(input.City)
	business.Phone = strings.TrimSpace(input.Phone)
	business.Website = strings.TrimSpace(input.Website)
	identity.StampUpdate(&business.RowMeta, id, time.Now())

	if err := s.businesses.Update(ctx, business, scope); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, business.ID)
	return business, nil
}

// DeleteBusiness soft-deletes a listing within the caller's tenant.
func (s *BusinessService) DeleteBusiness(ctx context.Context, id identity.EffectiveIdentity, businessID uuid.UUID) error {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return err
	}
	if err := s.businesses.SoftDelete(ctx, businessID, scope, time.Now(), id.UserID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, businessID)
	s.publish(ctx, events.Event{
		Type:       events.EventBusinessDeleted,
		BusinessID: businessID,
		Actor:      actorFor(id),
	})
	return nil
}

// GetBusiness fetches a publicly visible listing, consulting the cache.
func (s *BusinessService) GetBusiness(ctx context.Context, businessID uuid.UUID) (*domain.Business, error) {
	if cached := s.cache.Get(ctx, businessID); cached != nil {
		return cached, nil
	}
	business, err := s.businesses.GetByID(ctx, businessID, authz.Scope{})
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, business)
	return business, nil
}

// ListBusinesses is the public directory browse: active, non-deleted rows
// with no tenant restriction.
func (s *BusinessService) ListBusinesses(ctx context.Context, input BusinessListInput) ([]domain.Business, error) {
	return s.businesses.List(ctx, repository.BusinessFilter{
		Scope:    authz.Scope{RequireTenant: false},
		Category: input.Category,
		City:     input.City,
		Search:   input.Search,
		Page:     input.Page,
	})
}

// ListOwnBusinesses lists the caller's tenant's listings; tenant scope is
// mandatory here.
func (s *BusinessService) ListOwnBusinesses(ctx context.Context, id identity.EffectiveIdentity, page authz.Page) ([]domain.Business, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}
	return s.businesses.List(ctx, repository.BusinessFilter{Scope: scope, Page: page})
}

func (s *BusinessService) publish(ctx context.Context, event events.Event) {
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

func generateSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, base)
	base = strings.Trim(base, "-")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func scopeErr(err error) error {
	if errors.Is(err, authz.ErrTenantRequired) {
		return apperrors.NewTenantRequired()
	}
	return err
}
