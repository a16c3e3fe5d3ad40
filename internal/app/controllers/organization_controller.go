package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
)

// OrganizationController serves company profiles
type OrganizationController struct {
	orgService *services.OrganizationService
	logger     zerolog.Logger
}

// NewOrganizationController creates a new OrganizationController
func NewOrganizationController(orgService *services.OrganizationService, logger zerolog.Logger) *OrganizationController {
	return &OrganizationController{orgService: orgService, logger: logger}
}

// List returns approved organizations
// @Summary List organizations
// @Description Approved organizations, premium first, each with its reels
// @Tags organizations
// @Produce json
// @Param industry query string false "Industry"
// @Param search query string false "Name or description contains"
// @Param premium query bool false "Only premium organizations"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Organization]}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /organizations [get]
func (c *OrganizationController) List(ctx *gin.Context) {
	var filter dto.OrganizationFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	res, err := c.orgService.ListPublic(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// Get returns one organization
// @Summary Get an organization
// @Description Organization with reels and active job count. Pending or rejected organizations are only visible to their members.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=models.Organization}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /organizations/{id} [get]
func (c *OrganizationController) Get(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	org, err := c.orgService.Get(ctx.Request.Context(), middleware.OptionalActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, org)
}

// Create registers a new organization pending review
// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OrganizationRequest true "Organization profile"
// @Success 201 {object} dto.APIResponse{data=models.Organization}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Only company accounts"
// @Router /organizations [post]
func (c *OrganizationController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var req dto.OrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	org, err := c.orgService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, org)
}

// Update edits an organization the caller belongs to
// @Summary Update an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param request body dto.OrganizationRequest true "Organization profile"
// @Success 200 {object} dto.APIResponse{data=models.Organization}
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /organizations/{id} [put]
func (c *OrganizationController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.OrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	org, err := c.orgService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, org)
}

// Mine lists the caller's organizations
// @Summary My organizations
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Organization}
// @Router /organizations/mine [get]
func (c *OrganizationController) Mine(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	orgs, err := c.orgService.ListMine(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, orgs)
}
