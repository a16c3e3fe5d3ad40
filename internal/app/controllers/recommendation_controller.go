package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// RecommendationController serves course recommendations
type RecommendationController struct {
	recommendationService *services.RecommendationService
	logger                zerolog.Logger
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService *services.RecommendationService, logger zerolog.Logger) *RecommendationController {
	return &RecommendationController{recommendationService: recommendationService, logger: logger}
}

// Generate creates the caller's recommendations once
// @Summary Generate course recommendations
// @Description Two courses per value with an AI written reason. Users that already have recommendations get them back with generated=false.
// @Tags recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateRecommendationsRequest false "Values (defaults to the profile values)"
// @Success 201 {object} dto.APIResponse{data=dto.RecommendationsResponse} "Generated"
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationsResponse} "Already generated"
// @Failure 400 {object} dto.ErrorResponse "No values"
// @Failure 409 {object} dto.ErrorResponse "Generation already running"
// @Router /recommendations/generate [post]
func (c *RecommendationController) Generate(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var req dto.GenerateRecommendationsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindError(ctx, err)
			return
		}
	}

	res, err := c.recommendationService.Generate(ctx.Request.Context(), actor.UserID, req.Values)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	status := http.StatusOK
	if res.Generated {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.NewAPIResponse(res))
}

// List returns the caller's recommendations
// @Summary My recommendations
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.UserCourseRecommendation}
// @Router /recommendations [get]
func (c *RecommendationController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	recs, err := c.recommendationService.List(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, recs)
}
