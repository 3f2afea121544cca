package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/identity"
	"github.com/spec-kit/directory-service/internal/repository"
)

// AnnouncementService coordinates tenant-owned announcements.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	businesses    repository.BusinessRepository
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository, businesses repository.BusinessRepository) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, businesses: businesses}
}

// AnnouncementInput describes create/update payload.
type AnnouncementInput struct {
	Title    string
	Body     string
	StartsAt *time.Time
	EndsAt   *time.Time
}

// CreateAnnouncement attaches a notice to a business the tenant owns.
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, id identity.EffectiveIdentity, businessID uuid.UUID, input AnnouncementInput) (*domain.Announcement, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}
	// ownership gate: the business must be visible inside the tenant scope
	if _, err := s.businesses.GetByID(ctx, businessID, scope); err != nil {
		return nil, err
	}

	announcement := &domain.Announcement{
		BusinessID: businessID,
		Title:      strings.TrimSpace(input.Title),
		Body:       strings.TrimSpace(input.Body),
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
	}
	identity.StampCreate(&announcement.RowMeta, id, time.Now())

	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// UpdateAnnouncement mutates a notice within the tenant scope.
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id identity.EffectiveIdentity, announcementID uuid.UUID, input AnnouncementInput) (*domain.Announcement, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}

	announcement, err := s.announcements.GetByID(ctx, announcementID, scope)
	if err != nil {
		return nil, err
	}

	announcement.Title = strings.TrimSpace(input.Title)
	announcement.Body = strings.TrimSpace(input.Body)
	announcement.StartsAt = input.StartsAt
	announcement.EndsAt = input.EndsAt
	identity.StampUpdate(&announcement.RowMeta, id, time.Now())

	if err := s.announcements.Update(ctx, announcement, scope); err != nil {
		return nil, err
	}
	return announcement, nil
}

// DeleteAnnouncement soft-deletes a notice within the tenant scope.
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id identity.EffectiveIdentity, announcementID uuid.UUID) error {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return err
	}
	return s.announcements.SoftDelete(ctx, announcementID, scope, time.Now(), id.UserID)
}

// ListAnnouncements lists the tenant's notices.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, id identity.EffectiveIdentity, businessID *uuid.UUID, page authz.Page) ([]domain.Announcement, error) {
	scope := authz.ForIdentity(id, true).TenantOnly()
	if err := scopeErr(scope.Validate()); err != nil {
		return nil, err
	}
	return s.announcements.List(ctx, repository.AnnouncementFilter{
		Scope:      scope,
		BusinessID: businessID,
		Page:       page,
	})
}

// ListActiveForBusiness is the public feed of currently running notices on a
// listing.
func (s *AnnouncementService) ListActiveForBusiness(ctx context.Context, businessID uuid.UUID, page authz.Page) ([]domain.Announcement, error) {
	now := time.Now()
	return s.announcements.List(ctx, repository.AnnouncementFilter{
		Scope:      authz.Scope{RequireTenant: false},
		BusinessID: &businessID,
		ActiveAt:   &now,
		Page:       page,
	})
}
