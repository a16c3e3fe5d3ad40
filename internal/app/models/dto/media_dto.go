package dto

import "github.com/ehimebase/babybase/internal/app/models"

// MediaUploadForm is the multipart form of POST /media. Either a file or an embedUrl is required.
type MediaUploadForm struct {
	MediaType      models.MediaType `form:"mediaType" binding:"required,oneof=video embed"`
	OrganizationID string           `form:"organizationId" binding:"omitempty,uuid"`
	JobID          string           `form:"jobId" binding:"omitempty,uuid"`
	Title          string           `form:"title" binding:"max=200"`
	EmbedURL       string           `form:"embedUrl" binding:"omitempty,httpurl"`
	ThumbnailURL   string           `form:"thumbnailUrl" binding:"omitempty,url"`
}

// MediaFilter holds list query parameters
type MediaFilter struct {
	OrganizationID string `form:"organizationId" binding:"omitempty,uuid"`
	JobID          string `form:"jobId" binding:"omitempty,uuid"`
}
