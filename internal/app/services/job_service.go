package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/ehimebase/babybase/internal/app/auth"
	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/repositories"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
)

// JobService manages jobs and quests
type JobService struct {
	jobs   JobStore
	orgs   OrganizationStore
	media  MediaStore
	authz  *appauth.AuthorizationService
	logger zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobs JobStore, orgs OrganizationStore, media MediaStore, authz *appauth.AuthorizationService, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, orgs: orgs, media: media, authz: authz, logger: logger}
}

func cleanLines(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func applyJobRequest(j *models.Job, req *dto.JobRequest) error {
	j.Title = strings.TrimSpace(req.Title)
	j.Description = strings.TrimSpace(req.Description)
	j.Category = strings.TrimSpace(req.Category)
	j.Location = helpers.NilIfEmpty(req.Location)
	j.RJPPositive = cleanLines(req.RJPPositive)
	j.RJPNegative = cleanLines(req.RJPNegative)

	j.Type = req.Type
	if j.Type == "" {
		j.Type = models.JobTypeJob
	}
	if !j.Type.IsValid() {
		return apperrors.NewValidationError("type", "type must be job or quest")
	}
	if j.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}

	if j.Type == models.JobTypeQuest {
		j.Reward = helpers.NilIfEmpty(req.Reward)
		j.Salary = nil
	} else {
		j.Salary = helpers.NilIfEmpty(req.Salary)
		j.Reward = nil
	}

	if req.IsActive != nil {
		j.IsActive = *req.IsActive
	}
	return nil
}

// Create adds a posting to an organization the caller manages
func (s *JobService) Create(ctx context.Context, actor appauth.Actor, req *dto.JobRequest) (*models.Job, error) {
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, req.OrganizationID); err != nil {
		return nil, err
	}

	j := &models.Job{OrganizationID: req.OrganizationID, IsActive: true, Reels: []models.MediaItem{}}
	if err := applyJobRequest(j, req); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("error creating job: %w", err)
	}

	s.logger.Info().Str("jobID", j.ID.String()).Str("organizationID", j.OrganizationID.String()).Str("type", string(j.Type)).Msg("Job created")
	return j, nil
}

// Update rewrites a posting. A posting cannot move to another organization.
func (s *JobService) Update(ctx context.Context, actor appauth.Actor, id uuid.UUID, req *dto.JobRequest) (*models.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, j.OrganizationID); err != nil {
		return nil, err
	}
	if req.OrganizationID != uuid.Nil && req.OrganizationID != j.OrganizationID {
		return nil, apperrors.NewValidationError("organizationId", "a job cannot be moved to another organization")
	}

	if err := applyJobRequest(j, req); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, fmt.Errorf("error updating job: %w", err)
	}
	return s.withReels(ctx, j)
}

// Delete removes a posting the caller manages
func (s *JobService) Delete(ctx context.Context, actor appauth.Actor, id uuid.UUID) error {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, j.OrganizationID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

// Get returns a posting with its reels. Inactive postings and postings of
// organizations that are not approved are only visible to those who manage them.
func (s *JobService) Get(ctx context.Context, actor *appauth.Actor, id uuid.UUID) (*models.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visible := j.IsActive
	if visible {
		org, err := s.orgs.GetByID(ctx, j.OrganizationID)
		if err != nil {
			return nil, err
		}
		visible = org.Status == models.OrganizationApproved
	}
	if !visible {
		if actor == nil {
			return nil, apperrors.ErrResourceNotFound
		}
		ok, err := s.authz.CanManageOrganization(ctx, *actor, j.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrResourceNotFound
		}
	}
	return s.withReels(ctx, j)
}

// GetPublic returns a posting only when it is visible on the public board
func (s *JobService) GetPublic(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.Get(ctx, nil, id)
}

func (s *JobService) withReels(ctx context.Context, j *models.Job) (*models.Job, error) {
	media, err := s.media.ListForOwners(ctx, []uuid.UUID{j.OrganizationID}, []uuid.UUID{j.ID})
	if err != nil {
		return nil, fmt.Errorf("error loading reels: %w", err)
	}
	j.Reels = ReelsForJob(j, media)
	return j, nil
}

// ListPublic returns active postings of approved organizations with reels
func (s *JobService) ListPublic(ctx context.Context, filter dto.JobFilter, page, size int) (*dto.PaginatedList[models.Job], error) {
	f := repositories.JobListFilter{
		Type:       models.JobType(filter.Type),
		Category:   strings.TrimSpace(filter.Category),
		Search:     strings.TrimSpace(filter.Search),
		PublicOnly: true,
	}
	if filter.OrganizationID != "" {
		id, err := uuid.Parse(filter.OrganizationID)
		if err != nil {
			return nil, apperrors.NewValidationError("organizationId", "organizationId must be a UUID")
		}
		f.OrganizationID = id
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	jobs, total, err := s.jobs.List(ctx, f, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}

	orgIDs, jobIDs := jobOwnerIDs(jobs)
	media, err := s.media.ListForOwners(ctx, orgIDs, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading reels: %w", err)
	}
	AttachReelsToJobs(jobs, media)

	return &dto.PaginatedList[models.Job]{
		Items:      jobs,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// AdminDelete removes any posting
func (s *JobService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("jobID", id.String()).Msg("Job deleted by admin")
	return nil
}
