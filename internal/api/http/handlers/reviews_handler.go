package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/service"
)

// ReviewsHandler manages review endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
	pages   PageDefaults
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService, pages PageDefaults) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService, pages: pages}
}

// Create POST /businesses/:id/reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	review, outcome, err := h.service.CreateReview(c.Context(), id, businessID, reviewInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":                dto.NewReviewResponse(review),
		"aggregate_refreshed": outcome.Refreshed,
	})
}

// ListForBusiness GET /businesses/:id/reviews. Public: approved only.
func (h *ReviewsHandler) ListForBusiness(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	reviews, err := h.service.ListBusinessReviews(c.Context(), businessID, parsePage(c, h.pages))
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMine GET /reviews/mine.
func (h *ReviewsHandler) ListMine(c *fiber.Ctx) error {
	id := resolveIdentity(c, overrideFromQuery(c))
	reviews, err := h.service.ListOwnReviews(c.Context(), id, parsePage(c, h.pages))
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /reviews/:id.
func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	review, outcome, err := h.service.UpdateReview(c.Context(), id, reviewID, reviewInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":                dto.NewReviewResponse(review),
		"aggregate_refreshed": outcome.Refreshed,
	})
}

// Delete DELETE /reviews/:id.
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	id := resolveIdentity(c, overrideFromQuery(c))
	outcome, err := h.service.DeleteReview(c.Context(), id, reviewID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":                fiber.Map{"deleted": true},
		"aggregate_refreshed": outcome.Refreshed,
	})
}

// Approve POST /reviews/:id/approve. Service role only.
func (h *ReviewsHandler) Approve(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApproveReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	review, outcome, err := h.service.SetApproval(c.Context(), id, reviewID, req.Approved)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":                dto.NewReviewResponse(review),
		"aggregate_refreshed": outcome.Refreshed,
	})
}

func reviewInput(req dto.ReviewRequest) service.ReviewInput {
	return service.ReviewInput{
		AuthorName: req.AuthorName,
		Title:      req.Title,
		Body:       req.Body,
		Rating:     req.Rating,
	}
}
