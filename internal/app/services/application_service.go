package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/ehimebase/babybase/internal/app/auth"
	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/websocket"
)

// ApplicationService runs the hiring pipeline
type ApplicationService struct {
	applications ApplicationStore
	jobs         *JobService
	authz        *appauth.AuthorizationService
	notifier     Notifier
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService. A nil notifier disables push notifications.
func NewApplicationService(applications ApplicationStore, jobs *JobService, authz *appauth.AuthorizationService, notifier Notifier, logger zerolog.Logger) *ApplicationService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ApplicationService{applications: applications, jobs: jobs, authz: authz, notifier: notifier, logger: logger}
}

// Apply records a student's application to a public job
func (s *ApplicationService) Apply(ctx context.Context, actor appauth.Actor, jobID uuid.UUID, req *dto.ApplyRequest) (*models.Application, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students can apply to jobs")
	}
	job, err := s.jobs.GetPublic(ctx, jobID)
	if err != nil {
		return nil, err
	}

	a := &models.Application{
		JobID:          job.ID,
		UserID:         actor.UserID,
		Status:         models.StatusApplied,
		Message:        helpers.NilIfEmpty(strings.TrimSpace(req.Message)),
		JobTitle:       job.Title,
		OrganizationID: job.OrganizationID,
	}
	if err := s.applications.CreateWithInteraction(ctx, a); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyApplied) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating application: %w", err)
	}

	s.logger.Info().Str("applicationID", a.ID.String()).Str("jobID", job.ID.String()).Msg("Application submitted")
	return a, nil
}

// ListMine returns the caller's applications
func (s *ApplicationService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	items, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return items, nil
}

// ListForOrganization returns applicants of an organization the caller manages
func (s *ApplicationService) ListForOrganization(ctx context.Context, actor appauth.Actor, orgID uuid.UUID, status string) ([]models.Application, error) {
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, orgID); err != nil {
		return nil, err
	}

	var st models.ApplicationStatus
	if status != "" {
		parsed, err := models.ParseApplicationStatus(status)
		if err != nil {
			return nil, apperrors.NewValidationError("status", err.Error())
		}
		st = parsed
	}

	items, err := s.applications.ListByOrganization(ctx, orgID, st)
	if err != nil {
		return nil, fmt.Errorf("error listing organization applications: %w", err)
	}
	return items, nil
}

// UpdateStatus moves an application one step through the pipeline.
// The write only succeeds if the status is still the one that was read.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor appauth.Actor, id uuid.UUID, next models.ApplicationStatus) (*models.Application, error) {
	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, a.OrganizationID); err != nil {
		return nil, err
	}

	if !models.CanTransition(a.Status, next) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move application from %s to %s", a.Status, next)).
			WithDetails(map[string]interface{}{"allowed": a.Status.NextStatuses()})
	}

	ok, err := s.applications.UpdateStatusIfCurrent(ctx, id, a.Status, next)
	if err != nil {
		return nil, fmt.Errorf("error updating application status: %w", err)
	}
	if !ok {
		return nil, apperrors.NewConflictError("application status was changed by someone else")
	}

	previous := a.Status
	a.Status = next
	s.logger.Info().Str("applicationID", id.String()).Str("from", string(previous)).Str("to", string(next)).Msg("Application status changed")

	s.notifier.Notify(a.UserID, websocket.KindApplicationStatus, map[string]interface{}{
		"applicationId": a.ID,
		"jobId":         a.JobID,
		"jobTitle":      a.JobTitle,
		"from":          previous,
		"status":        next,
	})
	return a, nil
}

// Summary counts applications per status
func (s *ApplicationService) Summary(ctx context.Context) (*dto.ApplicationSummary, error) {
	buckets, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting applications: %w", err)
	}
	var total int64
	for _, b := range buckets {
		total += b.Count
	}
	return &dto.ApplicationSummary{Buckets: buckets, Total: total}, nil
}
