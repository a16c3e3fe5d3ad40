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

// AdminController serves the admin console
type AdminController struct {
	adminService       *services.AdminService
	profileService     *services.ProfileService
	orgService         *services.OrganizationService
	jobService         *services.JobService
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	adminService *services.AdminService,
	profileService *services.ProfileService,
	orgService *services.OrganizationService,
	jobService *services.JobService,
	applicationService *services.ApplicationService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		adminService:       adminService,
		profileService:     profileService,
		orgService:         orgService,
		jobService:         jobService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// Stats returns the dashboard counters
// @Summary Platform statistics
// @Description Flat payload without the response envelope. On failure the counters are zero and success is false, still with status 200.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.adminService.Stats(ctx.Request.Context()))
}

// Users lists profiles
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role" Enums(student, company-admin, system-admin)
// @Param search query string false "Name or email contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Profile]}
// @Router /admin/users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	var filter dto.ProfileFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	res, err := c.profileService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// DeleteJob removes any posting
// @Summary Delete a job
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/jobs/{id} [delete]
func (c *AdminController) DeleteJob(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.jobService.AdminDelete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Organizations lists organizations in any status
// @Summary Moderation queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status" Enums(pending, approved, rejected)
// @Param search query string false "Name contains"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Organization]}
// @Router /admin/organizations [get]
func (c *AdminController) Organizations(ctx *gin.Context) {
	var filter dto.OrganizationFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	res, err := c.orgService.ListForAdmin(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// SetOrganizationStatus approves or rejects an organization
// @Summary Moderate an organization
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param request body dto.OrganizationStatusRequest true "Status"
// @Success 204 "Updated"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/organizations/{id}/status [patch]
func (c *AdminController) SetOrganizationStatus(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.OrganizationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	if err := c.orgService.SetStatus(ctx.Request.Context(), id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SetOrganizationPremium toggles premium placement
// @Summary Set premium flag
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param request body dto.OrganizationPremiumRequest true "Premium flag"
// @Success 204 "Updated"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/organizations/{id}/premium [patch]
func (c *AdminController) SetOrganizationPremium(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.OrganizationPremiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	if err := c.orgService.SetPremium(ctx.Request.Context(), id, *req.IsPremium); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ApplicationsSummary counts applications per status
// @Summary Application pipeline summary
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationSummary}
// @Router /admin/applications/summary [get]
func (c *AdminController) ApplicationsSummary(ctx *gin.Context) {
	res, err := c.applicationService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}
