package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// ScoutController serves scouting
type ScoutController struct {
	scoutService *services.ScoutService
	logger       zerolog.Logger
}

// NewScoutController creates a new ScoutController
func NewScoutController(scoutService *services.ScoutService, logger zerolog.Logger) *ScoutController {
	return &ScoutController{scoutService: scoutService, logger: logger}
}

// Scout sends a scout to a student
// @Summary Scout a student
// @Description Idempotent: scouting the same student again returns the existing scout with created=false
// @Tags scouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScoutRequest true "Scout"
// @Success 201 {object} dto.APIResponse{data=dto.ScoutResponse} "Scout sent"
// @Success 200 {object} dto.APIResponse{data=dto.ScoutResponse} "Already scouted"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Router /scouts [post]
func (c *ScoutController) Scout(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var req dto.ScoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	res, err := c.scoutService.Scout(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.NewAPIResponse(res))
}

// Received lists scouts sent to the caller
// @Summary Scouts received
// @Tags scouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ReceivedScout}
// @Router /scouts/received [get]
func (c *ScoutController) Received(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	items, err := c.scoutService.Received(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}
