package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
)

// BusinessesHandler manages directory listing endpoints.
type BusinessesHandler struct {
	service *service.BusinessService
	pages   PageDefaults
}

// NewBusinessesHandler constructs handler.
func NewBusinessesHandler(businessService *service.BusinessService, pages PageDefaults) *BusinessesHandler {
	return &BusinessesHandler{service: businessService, pages: pages}
}

// List GET /businesses. Public browse; no tenant restriction.
func (h *BusinessesHandler) List(c *fiber.Ctx) error {
	input := service.BusinessListInput{Page: parsePage(c, h.pages)}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		cat := domain.BusinessCategory(category)
		input.Category = &cat
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		input.City = &city
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		input.Search = &search
	}

	businesses, err := h.service.ListBusinesses(c.Context(), input)
	if err != nil {
		return err
	}
	items := make([]dto.BusinessSummary, 0, len(businesses))
	for i := range businesses {
		items = append(items, dto.NewBusinessSummary(&businesses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMine GET /businesses/mine. Tenant scope mandatory.
func (h *BusinessesHandler) ListMine(c *fiber.Ctx) error {
	id := resolveIdentity(c, overrideFromQuery(c))
	businesses, err := h.service.ListOwnBusinesses(c.Context(), id, parsePage(c, h.pages))
	if err != nil {
		return err
	}
	items := make([]dto.BusinessSummary, 0, len(businesses))
	for i := range businesses {
		items = append(items, dto.NewBusinessSummary(&businesses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /businesses/:id.
func (h *BusinessesHandler) Get(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	business, err := h.service.GetBusiness(c.Context(), businessID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBusinessDetail(business)})
}

// Create POST /businesses.
func (h *BusinessesHandler) Create(c *fiber.Ctx) error {
	var req dto.BusinessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	business, err := h.service.CreateBusiness(c.Context(), id, businessInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBusinessDetail(business)})
}

// Update PUT /businesses/:id.
func (h *BusinessesHandler) Update(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.BusinessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	business, err := h.service.UpdateBusiness(c.Context(), id, businessID, businessInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBusinessDetail(business)})
}

// Delete DELETE /businesses/:id.
func (h *BusinessesHandler) Delete(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	id := resolveIdentity(c, overrideFromQuery(c))
	if err := h.service.DeleteBusiness(c.Context(), id, businessID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func businessInput(req dto.BusinessRequest) service.BusinessInput {
	return service.BusinessInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    domain.BusinessCategory(req.Category),
		City:        req.City,
		Phone:       req.Phone,
		Website:     req.Website,
	}
}
