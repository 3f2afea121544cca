package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// AnnouncementsHandler manages announcement endpoints.
type AnnouncementsHandler struct {
	service *service.AnnouncementService
	pages   PageDefaults
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcementService *service.AnnouncementService, pages PageDefaults) *AnnouncementsHandler {
	return &AnnouncementsHandler{service: announcementService, pages: pages}
}

// Create POST /businesses/:id/announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AnnouncementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	announcement, err := h.service.CreateAnnouncement(c.Context(), id, businessID, announcementInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAnnouncementResponse(announcement)})
}

// ListForBusiness GET /businesses/:id/announcements. Public: currently running
// notices only.
func (h *AnnouncementsHandler) ListForBusiness(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	announcements, err := h.service.ListActiveForBusiness(c.Context(), businessID, parsePage(c, h.pages))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": announcementItems(announcements)})
}

// ListMine GET /announcements. Tenant scope mandatory; optional business_id
// filter.
func (h *AnnouncementsHandler) ListMine(c *fiber.Ctx) error {
	id := resolveIdentity(c, overrideFromQuery(c))

	var businessID *uuid.UUID
	if raw := c.Query("business_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid business_id", nil)
		}
		businessID = &parsed
	}

	announcements, err := h.service.ListAnnouncements(c.Context(), id, businessID, parsePage(c, h.pages))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": announcementItems(announcements)})
}

// Update PUT /announcements/:id.
func (h *AnnouncementsHandler) Update(c *fiber.Ctx) error {
	announcementID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AnnouncementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	announcement, err := h.service.UpdateAnnouncement(c.Context(), id, announcementID, announcementInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnnouncementResponse(announcement)})
}

// Delete DELETE /announcements/:id.
func (h *AnnouncementsHandler) Delete(c *fiber.Ctx) error {
	announcementID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	id := resolveIdentity(c, overrideFromQuery(c))
	if err := h.service.DeleteAnnouncement(c.Context(), id, announcementID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func announcementInput(req dto.AnnouncementRequest) service.AnnouncementInput {
	return service.AnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
}

func announcementItems(announcements []domain.Announcement) []dto.AnnouncementResponse {
	items := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		items = append(items, dto.NewAnnouncementResponse(&announcements[i]))
	}
	return items
}
