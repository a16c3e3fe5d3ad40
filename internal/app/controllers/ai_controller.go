package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// AIController exposes the drafting helpers
type AIController struct {
	aiService *services.AIService
	logger    zerolog.Logger
}

// NewAIController creates a new AIController
func NewAIController(aiService *services.AIService, logger zerolog.Logger) *AIController {
	return &AIController{aiService: aiService, logger: logger}
}

// OrganizationProfile drafts a company profile
// @Summary Draft a company profile
// @Description Drafts profile fields from free text and/or the text of a company web page
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OrganizationDraftRequest true "Source text or URL"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationDraft}
// @Failure 400 {object} dto.ErrorResponse "Neither text nor a readable url"
// @Failure 429 {object} dto.ErrorResponse "AI rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Failed to parse AI response"
// @Router /ai/organization-profile [post]
func (c *AIController) OrganizationProfile(ctx *gin.Context) {
	var req dto.OrganizationDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	draft, err := c.aiService.DraftOrganization(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, draft)
}

// JobDescription drafts a posting
// @Summary Draft a job description
// @Description Returns a description, category and realistic job preview points
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobDraftRequest true "Title and notes"
// @Success 200 {object} dto.APIResponse{data=dto.JobDraft}
// @Failure 429 {object} dto.ErrorResponse "AI rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Failed to parse AI response"
// @Router /ai/job-description [post]
func (c *AIController) JobDescription(ctx *gin.Context) {
	var req dto.JobDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	draft, err := c.aiService.DraftJob(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, draft)
}

// CourseRecommendation previews recommendation reasons
// @Summary Preview course recommendations
// @Description Same selection and prompt as generation, nothing is saved
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecommendationPreviewRequest true "Values"
// @Success 200 {object} dto.APIResponse{data=[]models.UserCourseRecommendation}
// @Failure 429 {object} dto.ErrorResponse "AI rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Failed to parse AI response"
// @Router /ai/course-recommendation [post]
func (c *AIController) CourseRecommendation(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var req dto.RecommendationPreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	recs, err := c.aiService.PreviewRecommendations(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, recs)
}
