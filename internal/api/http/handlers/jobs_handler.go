package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
)

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	service *service.JobService
	pages   PageDefaults
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService, pages PageDefaults) *JobsHandler {
	return &JobsHandler{service: jobService, pages: pages}
}

// Create POST /businesses/:id/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	job, err := h.service.CreateJob(c.Context(), id, businessID, jobInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// List GET /jobs. Public browse across all listings.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	input := service.JobListInput{Page: parsePage(c, h.pages)}
	if raw := strings.TrimSpace(c.Query("employment_type")); raw != "" {
		et := domain.EmploymentType(raw)
		input.EmploymentType = &et
	}
	if location := strings.TrimSpace(c.Query("location")); location != "" {
		input.Location = &location
	}

	jobs, err := h.service.ListJobs(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobItems(jobs)})
}

// ListForBusiness GET /businesses/:id/jobs. Public.
func (h *JobsHandler) ListForBusiness(c *fiber.Ctx) error {
	businessID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	jobs, err := h.service.ListJobs(c.Context(), service.JobListInput{
		BusinessID: &businessID,
		Page:       parsePage(c, h.pages),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobItems(jobs)})
}

// ListMine GET /jobs/mine. Tenant scope mandatory.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	id := resolveIdentity(c, overrideFromQuery(c))
	jobs, err := h.service.ListOwnJobs(c.Context(), id, parsePage(c, h.pages))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobItems(jobs)})
}

// Update PUT /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := resolveIdentity(c, req.IdentityOverride)
	job, err := h.service.UpdateJob(c.Context(), id, jobID, jobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Delete DELETE /jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	id := resolveIdentity(c, overrideFromQuery(c))
	if err := h.service.DeleteJob(c.Context(), id, jobID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func jobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: domain.EmploymentType(req.EmploymentType),
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
	}
}

func jobItems(jobs []domain.JobPosting) []dto.JobResponse {
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
	}
	return items
}
