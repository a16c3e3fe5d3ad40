package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// InteractionController serves likes
type InteractionController struct {
	interactionService *services.InteractionService
	logger             zerolog.Logger
}

// NewInteractionController creates a new InteractionController
func NewInteractionController(interactionService *services.InteractionService, logger zerolog.Logger) *InteractionController {
	return &InteractionController{interactionService: interactionService, logger: logger}
}

// Toggle flips a like
// @Summary Toggle a like
// @Description Creates the like when absent and removes it when present
// @Tags interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ToggleInteractionRequest true "Like target"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleInteractionResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /interactions/toggle [post]
func (c *InteractionController) Toggle(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var req dto.ToggleInteractionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	res, err := c.interactionService.Toggle(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// List returns the caller's interactions
// @Summary My interactions
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "Interaction type" Enums(like_job, like_company, like_user, apply, scout)
// @Success 200 {object} dto.APIResponse{data=[]models.Interaction}
// @Router /interactions [get]
func (c *InteractionController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	items, err := c.interactionService.List(ctx.Request.Context(), actor.UserID, models.InteractionType(ctx.Query("type")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}
