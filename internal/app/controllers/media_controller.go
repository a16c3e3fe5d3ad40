package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// MediaController serves the reels library
type MediaController struct {
	mediaService *services.MediaService
	logger       zerolog.Logger
}

// NewMediaController creates a new MediaController
func NewMediaController(mediaService *services.MediaService, logger zerolog.Logger) *MediaController {
	return &MediaController{mediaService: mediaService, logger: logger}
}

// List returns reels of a job or an organization
// @Summary List media
// @Tags media
// @Produce json
// @Param organizationId query string false "Organization ID"
// @Param jobId query string false "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]models.MediaItem}
// @Failure 400 {object} dto.ErrorResponse "organizationId or jobId is required"
// @Router /media [get]
func (c *MediaController) List(ctx *gin.Context) {
	var filter dto.MediaFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	items, err := c.mediaService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// Upload adds a video file or an embed
// @Summary Upload media
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param mediaType formData string true "video or embed" Enums(video, embed)
// @Param organizationId formData string false "Organization ID"
// @Param jobId formData string false "Job ID (must belong to the organization)"
// @Param title formData string false "Title"
// @Param embedUrl formData string false "Embed URL for mediaType=embed"
// @Param thumbnailUrl formData string false "Thumbnail URL"
// @Param file formData file false "Video file for mediaType=video"
// @Success 201 {object} dto.APIResponse{data=models.MediaItem}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Router /media [post]
func (c *MediaController) Upload(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	var form dto.MediaUploadForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	var file *multipart.FileHeader
	fh, err := ctx.FormFile("file")
	switch {
	case err == nil:
		file = fh
	case !errors.Is(err, http.ErrMissingFile):
		c.logger.Warn().Err(err).Msg("Unreadable upload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid file upload").WithField("file")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.mediaService.Upload(ctx.Request.Context(), actor, &form, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// Delete removes a media item
// @Summary Delete media
// @Tags media
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /media/{id} [delete]
func (c *MediaController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.mediaService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
