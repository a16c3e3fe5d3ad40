package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
)

// JobController serves jobs and quests
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{jobService: jobService, logger: logger}
}

// List returns the public job board
// @Summary List jobs and quests
// @Description Active postings of approved organizations, premium organizations first, each with reels
// @Tags jobs
// @Produce json
// @Param type query string false "job or quest" Enums(job, quest)
// @Param category query string false "Category"
// @Param organizationId query string false "Organization ID"
// @Param search query string false "Title or description contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Job]}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	var filter dto.JobFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	res, err := c.jobService.ListPublic(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// Get returns one posting
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	job, err := c.jobService.Get(ctx.Request.Context(), middleware.OptionalActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, job)
}

// Create adds a posting
// @Summary Create a job or quest
// @Description Type defaults to job. Quests carry a reward, jobs a salary.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobRequest true "Posting"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the organization"
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var req dto.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	job, err := c.jobService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, job)
}

// Update rewrites a posting
// @Summary Update a job or quest
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body dto.JobRequest true "Posting"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Not a member of the organization"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /jobs/{id} [put]
func (c *JobController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	job, err := c.jobService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, job)
}

// Delete removes a posting
// @Summary Delete a job or quest
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the organization"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.jobService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
