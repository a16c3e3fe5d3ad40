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
	"github.com/ehimebase/babybase/internal/pkg/validation"
)

// ProfileService reads and edits profiles
type ProfileService struct {
	profiles ProfileStore
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles ProfileStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// GetMe returns the caller's own profile
func (s *ProfileService) GetMe(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, userID)
}

// UpdateMe replaces the caller's editable fields
func (s *ProfileService) UpdateMe(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.FullName = strings.TrimSpace(req.FullName)
	p.Bio = helpers.NilIfEmpty(req.Bio)
	p.University = helpers.NilIfEmpty(req.University)
	p.AvatarURL = helpers.NilIfEmpty(req.AvatarURL)
	p.Values = validation.NormalizeValues(req.Values)
	if !validation.ValidValues(p.Values) {
		return nil, apperrors.NewValidationError("values", fmt.Sprintf("at most %d values are allowed", validation.MaxValues))
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return p, nil
}

// GetPublic returns another user's profile. Student profiles are visible to
// companies and admins only, which is what scouting relies on.
func (s *ProfileService) GetPublic(ctx context.Context, actor appauth.Actor, id uuid.UUID) (*models.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role == models.RoleStudent && p.ID != actor.UserID &&
		actor.Role != models.RoleCompanyAdmin && actor.Role != models.RoleSystemAdmin {
		return nil, apperrors.NewForbiddenError("student profiles are visible to companies only")
	}
	return p, nil
}

// List returns a page of profiles for the admin console
func (s *ProfileService) List(ctx context.Context, filter dto.ProfileFilter, page, size int) (*dto.PaginatedList[models.Profile], error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	items, total, err := s.profiles.List(ctx, models.Role(filter.Role), strings.TrimSpace(filter.Search), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	return &dto.PaginatedList[models.Profile]{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
