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
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/websocket"
)

// ScoutService lets companies reach out to students
type ScoutService struct {
	interactions InteractionStore
	profiles     ProfileStore
	orgs         OrganizationStore
	authz        *appauth.AuthorizationService
	notifier     Notifier
	logger       zerolog.Logger
}

// NewScoutService creates a new ScoutService
func NewScoutService(interactions InteractionStore, profiles ProfileStore, orgs OrganizationStore, authz *appauth.AuthorizationService, notifier Notifier, logger zerolog.Logger) *ScoutService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ScoutService{interactions: interactions, profiles: profiles, orgs: orgs, authz: authz, notifier: notifier, logger: logger}
}

// Scout records a scout from the caller on behalf of an organization.
// Scouting the same student twice returns the existing scout.
func (s *ScoutService) Scout(ctx context.Context, actor appauth.Actor, req *dto.ScoutRequest) (*dto.ScoutResponse, error) {
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, req.OrganizationID); err != nil {
		return nil, err
	}

	target, err := s.profiles.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if target.Role != models.RoleStudent {
		return nil, apperrors.NewValidationError("userId", "only students can be scouted")
	}

	orgID := req.OrganizationID
	i := &models.Interaction{
		Type:           models.InteractionScout,
		UserID:         actor.UserID,
		TargetID:       target.ID,
		Message:        helpers.NilIfEmpty(strings.TrimSpace(req.Message)),
		OrganizationID: &orgID,
	}
	created, err := s.interactions.Create(ctx, i)
	if err != nil {
		return nil, fmt.Errorf("error creating scout: %w", err)
	}

	if created {
		s.logger.Info().Str("organizationID", orgID.String()).Str("studentID", target.ID.String()).Msg("Student scouted")
		s.notifier.Notify(target.ID, websocket.KindScout, map[string]interface{}{
			"interactionId":  i.ID,
			"organizationId": orgID,
			"message":        i.Message,
		})
	}
	return &dto.ScoutResponse{Interaction: i, Created: created}, nil
}

// Received lists the scouts sent to a student together with the scouting organization
func (s *ScoutService) Received(ctx context.Context, userID uuid.UUID) ([]dto.ReceivedScout, error) {
	items, err := s.interactions.ListByTarget(ctx, userID, models.InteractionScout)
	if err != nil {
		return nil, fmt.Errorf("error listing scouts: %w", err)
	}

	var orgIDs []uuid.UUID
	for _, i := range items {
		if i.OrganizationID != nil {
			orgIDs = append(orgIDs, *i.OrganizationID)
		}
	}
	summaries, err := s.orgs.GetSummaries(ctx, orgIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading scouting organizations: %w", err)
	}

	out := make([]dto.ReceivedScout, 0, len(items))
	for _, i := range items {
		rs := dto.ReceivedScout{Interaction: i}
		if i.OrganizationID != nil {
			if sum, ok := summaries[*i.OrganizationID]; ok {
				rs.Organization = &sum
			}
		}
		out = append(out, rs)
	}
	return out, nil
}
