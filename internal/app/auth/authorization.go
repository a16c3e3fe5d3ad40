package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
}

// IsAdmin reports whether the actor is a system admin
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleSystemAdmin
}

// MembershipChecker answers whether a user belongs to an organization
type MembershipChecker interface {
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	members MembershipChecker
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(members MembershipChecker) *AuthorizationService {
	return &AuthorizationService{members: members}
}

// CanManageOrganization reports whether the actor may edit the organization and its
// jobs, media and applicants. System admins may manage every organization.
func (s *AuthorizationService) CanManageOrganization(ctx context.Context, actor Actor, orgID uuid.UUID) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	if actor.Role != models.RoleCompanyAdmin {
		return false, nil
	}

	ok, err := s.members.IsMember(ctx, orgID, actor.UserID)
	if err != nil {
		logger.Error().Err(err).Str("organizationID", orgID.String()).Str("userID", actor.UserID.String()).Msg("Error checking organization membership")
		return false, fmt.Errorf("failed to check organization membership: %w", err)
	}
	return ok, nil
}

// ValidateOrganizationAccess returns ErrPermissionDenied unless the actor may manage the organization
func (s *AuthorizationService) ValidateOrganizationAccess(ctx context.Context, actor Actor, orgID uuid.UUID) error {
	ok, err := s.CanManageOrganization(ctx, actor, orgID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: not a member of this organization", apperrors.ErrPermissionDenied)
	}
	return nil
}
