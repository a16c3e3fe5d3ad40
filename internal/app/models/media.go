package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaType is the storage kind of a reel
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaEmbed MediaType = "embed"
)

// IsValid reports whether t is a known media type
func (t MediaType) IsValid() bool {
	return t == MediaVideo || t == MediaEmbed
}

// MediaItem is a row of 'media_library'. A reel belongs to a job when JobID is
// set; otherwise it is a company-wide reel of its organization.
type MediaItem struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty" db:"organization_id"`
	JobID          *uuid.UUID `json:"jobId,omitempty" db:"job_id"`
	MediaType      MediaType  `json:"mediaType" db:"media_type" example:"video"`
	URL            string     `json:"url" db:"url"`
	Title          *string    `json:"title,omitempty" db:"title"`
	ThumbnailURL   *string    `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	UploadedBy     uuid.UUID  `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}
