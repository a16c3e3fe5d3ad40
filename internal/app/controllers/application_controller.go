package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// ApplicationController serves the hiring pipeline
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{applicationService: applicationService, logger: logger}
}

// Apply submits an application
// @Summary Apply to a job
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body dto.ApplyRequest false "Message to the company"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /jobs/{id}/apply [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	jobID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindError(ctx, err)
			return
		}
	}
	a, err := c.applicationService.Apply(ctx.Request.Context(), actor, jobID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, a)
}

// Mine lists the caller's applications
// @Summary My applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Router /applications/mine [get]
func (c *ApplicationController) Mine(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	items, err := c.applicationService.ListMine(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// ListForOrganization lists applicants of an organization
// @Summary Organization applicants
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param status query string false "Status filter" Enums(applied, screening, interview, offer, hired, rejected)
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Router /organizations/{id}/applications [get]
func (c *ApplicationController) ListForOrganization(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	orgID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var filter dto.ApplicationFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	items, err := c.applicationService.ListForOrganization(ctx.Request.Context(), actor, orgID, filter.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// UpdateStatus moves an application through the pipeline
// @Summary Change application status
// @Description Allowed: applied→screening→interview→offer→hired, and any open stage→rejected
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 409 {object} dto.ErrorResponse "Changed concurrently"
// @Failure 422 {object} dto.ErrorResponse "Invalid transition"
// @Router /applications/{id}/status [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	a, err := c.applicationService.UpdateStatus(ctx.Request.Context(), actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, a)
}
