package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/ehimebase/babybase/internal/app/auth"
	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/filestorage"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
)

// MediaService manages the reels library
type MediaService struct {
	media   MediaStore
	jobs    JobStore
	storage filestorage.FileStorage
	authz   *appauth.AuthorizationService
	logger  zerolog.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(media MediaStore, jobs JobStore, storage filestorage.FileStorage, authz *appauth.AuthorizationService, logger zerolog.Logger) *MediaService {
	return &MediaService{media: media, jobs: jobs, storage: storage, authz: authz, logger: logger}
}

func parseOptionalID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(field, field+" must be a UUID")
	}
	return &id, nil
}

// List returns the reels of a job or of an organization
func (s *MediaService) List(ctx context.Context, filter dto.MediaFilter) ([]models.MediaItem, error) {
	orgID, err := parseOptionalID("organizationId", filter.OrganizationID)
	if err != nil {
		return nil, err
	}
	jobID, err := parseOptionalID("jobId", filter.JobID)
	if err != nil {
		return nil, err
	}

	switch {
	case jobID != nil:
		job, err := s.jobs.GetByID(ctx, *jobID)
		if err != nil {
			return nil, err
		}
		media, err := s.media.ListForOwners(ctx, []uuid.UUID{job.OrganizationID}, []uuid.UUID{job.ID})
		if err != nil {
			return nil, fmt.Errorf("error listing media: %w", err)
		}
		return ReelsForJob(job, media), nil
	case orgID != nil:
		media, err := s.media.ListByOrganization(ctx, *orgID)
		if err != nil {
			return nil, fmt.Errorf("error listing media: %w", err)
		}
		return media, nil
	default:
		return nil, fmt.Errorf("%w: organizationId or jobId is required", apperrors.ErrValidationFailed)
	}
}

// Upload stores a video file or registers an embed URL for an organization or one of its jobs
func (s *MediaService) Upload(ctx context.Context, actor appauth.Actor, form *dto.MediaUploadForm, file *multipart.FileHeader) (*models.MediaItem, error) {
	orgID, err := parseOptionalID("organizationId", form.OrganizationID)
	if err != nil {
		return nil, err
	}
	jobID, err := parseOptionalID("jobId", form.JobID)
	if err != nil {
		return nil, err
	}

	if jobID != nil {
		job, err := s.jobs.GetByID(ctx, *jobID)
		if err != nil {
			return nil, err
		}
		if orgID != nil && *orgID != job.OrganizationID {
			return nil, apperrors.NewValidationError("jobId", "job does not belong to the organization")
		}
		orgID = &job.OrganizationID
	}
	if orgID == nil {
		return nil, fmt.Errorf("%w: organizationId or jobId is required", apperrors.ErrValidationFailed)
	}
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, *orgID); err != nil {
		return nil, err
	}

	m := &models.MediaItem{
		OrganizationID: orgID,
		JobID:          jobID,
		MediaType:      form.MediaType,
		Title:          helpers.NilIfEmpty(strings.TrimSpace(form.Title)),
		ThumbnailURL:   helpers.NilIfEmpty(form.ThumbnailURL),
		UploadedBy:     actor.UserID,
	}

	switch form.MediaType {
	case models.MediaVideo:
		if file == nil {
			return nil, apperrors.NewValidationError("file", "a video file is required")
		}
		url, err := s.storage.Save(file, "media/"+orgID.String())
		if err != nil {
			if errors.Is(err, filestorage.ErrUnsupportedType) {
				return nil, apperrors.NewValidationError("file", "unsupported video format")
			}
			return nil, fmt.Errorf("error saving upload: %w", err)
		}
		m.URL = url
	case models.MediaEmbed:
		if form.EmbedURL == "" {
			return nil, apperrors.NewValidationError("embedUrl", "embedUrl is required for embeds")
		}
		m.URL = form.EmbedURL
	default:
		return nil, apperrors.NewValidationError("mediaType", "mediaType must be video or embed")
	}

	if err := s.media.Create(ctx, m); err != nil {
		if m.MediaType == models.MediaVideo {
			s.removeFile(m.URL)
		}
		return nil, fmt.Errorf("error creating media: %w", err)
	}

	s.logger.Info().Str("mediaID", m.ID.String()).Str("organizationID", orgID.String()).Str("type", string(m.MediaType)).Msg("Media added")
	return m, nil
}

// Delete removes a media row and its stored file
func (s *MediaService) Delete(ctx context.Context, actor appauth.Actor, id uuid.UUID) error {
	m, err := s.media.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var orgID uuid.UUID
	switch {
	case m.OrganizationID != nil:
		orgID = *m.OrganizationID
	case m.JobID != nil:
		job, err := s.jobs.GetByID(ctx, *m.JobID)
		if err != nil {
			return err
		}
		orgID = job.OrganizationID
	}
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, orgID); err != nil {
		return err
	}

	if err := s.media.Delete(ctx, id); err != nil {
		return err
	}
	if m.MediaType == models.MediaVideo {
		s.removeFile(m.URL)
	}
	return nil
}

func (s *MediaService) removeFile(url string) {
	if err := s.storage.Delete(url); err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("Failed to delete stored media file")
	}
}
