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
	"github.com/ehimebase/babybase/internal/app/repositories"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
)

// OrganizationService manages company profiles
type OrganizationService struct {
	orgs   OrganizationStore
	media  MediaStore
	authz  *appauth.AuthorizationService
	logger zerolog.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(orgs OrganizationStore, media MediaStore, authz *appauth.AuthorizationService, logger zerolog.Logger) *OrganizationService {
	return &OrganizationService{orgs: orgs, media: media, authz: authz, logger: logger}
}

func applyOrganizationRequest(o *models.Organization, req *dto.OrganizationRequest) {
	o.Name = strings.TrimSpace(req.Name)
	o.Industry = strings.TrimSpace(req.Industry)
	o.Description = helpers.NilIfEmpty(req.Description)
	o.Location = helpers.NilIfEmpty(req.Location)
	o.Website = helpers.NilIfEmpty(req.Website)
	o.LogoURL = helpers.NilIfEmpty(req.LogoURL)
	o.CoverURL = helpers.NilIfEmpty(req.CoverURL)
	o.EmployeeCount = req.EmployeeCount
	o.Appeal = helpers.NilIfEmpty(req.Appeal)
}

// Create registers an organization in pending state with the caller as owner
func (s *OrganizationService) Create(ctx context.Context, actor appauth.Actor, req *dto.OrganizationRequest) (*models.Organization, error) {
	if actor.Role != models.RoleCompanyAdmin && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only company accounts can create organizations")
	}

	o := &models.Organization{Status: models.OrganizationPending, CreatedBy: actor.UserID, Reels: []models.MediaItem{}}
	applyOrganizationRequest(o, req)
	if o.Name == "" || o.Industry == "" {
		return nil, fmt.Errorf("%w: name and industry are required", apperrors.ErrValidationFailed)
	}

	if err := s.orgs.CreateWithOwner(ctx, o); err != nil {
		return nil, fmt.Errorf("error creating organization: %w", err)
	}
	s.logger.Info().Str("organizationID", o.ID.String()).Str("owner", actor.UserID.String()).Msg("Organization created")
	return o, nil
}

// Update replaces the profile fields of an organization the caller manages
func (s *OrganizationService) Update(ctx context.Context, actor appauth.Actor, id uuid.UUID, req *dto.OrganizationRequest) (*models.Organization, error) {
	if err := s.authz.ValidateOrganizationAccess(ctx, actor, id); err != nil {
		return nil, err
	}
	o, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyOrganizationRequest(o, req)
	if err := s.orgs.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("error updating organization: %w", err)
	}
	return s.withReels(ctx, o)
}

// Get returns an organization with its reels. Organizations that are not
// approved are only visible to their members and admins.
func (s *OrganizationService) Get(ctx context.Context, actor *appauth.Actor, id uuid.UUID) (*models.Organization, error) {
	o, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OrganizationApproved {
		if actor == nil {
			return nil, apperrors.ErrResourceNotFound
		}
		ok, err := s.authz.CanManageOrganization(ctx, *actor, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrResourceNotFound
		}
	}
	return s.withReels(ctx, o)
}

func (s *OrganizationService) withReels(ctx context.Context, o *models.Organization) (*models.Organization, error) {
	media, err := s.media.ListForOwners(ctx, []uuid.UUID{o.ID}, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading reels: %w", err)
	}
	o.Reels = ReelsForOrganization(o.ID, media)
	return o, nil
}

// ListPublic returns approved organizations with reels
func (s *OrganizationService) ListPublic(ctx context.Context, filter dto.OrganizationFilter, page, size int) (*dto.PaginatedList[models.Organization], error) {
	return s.list(ctx, repositories.OrganizationListFilter{
		Industry: strings.TrimSpace(filter.Industry),
		Search:   strings.TrimSpace(filter.Search),
		Premium:  filter.Premium,
		Status:   models.OrganizationApproved,
	}, page, size)
}

// ListForAdmin returns organizations in any status, e.g. the pending moderation queue
func (s *OrganizationService) ListForAdmin(ctx context.Context, filter dto.OrganizationFilter, page, size int) (*dto.PaginatedList[models.Organization], error) {
	return s.list(ctx, repositories.OrganizationListFilter{
		Industry: strings.TrimSpace(filter.Industry),
		Search:   strings.TrimSpace(filter.Search),
		Premium:  filter.Premium,
		Status:   models.OrganizationStatus(filter.Status),
	}, page, size)
}

// ListMine returns the organizations the caller belongs to
func (s *OrganizationService) ListMine(ctx context.Context, actor appauth.Actor) ([]models.Organization, error) {
	res, err := s.list(ctx, repositories.OrganizationListFilter{MemberID: actor.UserID}, 1, helpers.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (s *OrganizationService) list(ctx context.Context, f repositories.OrganizationListFilter, page, size int) (*dto.PaginatedList[models.Organization], error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	orgs, total, err := s.orgs.List(ctx, f, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing organizations: %w", err)
	}

	ids := make([]uuid.UUID, len(orgs))
	for i := range orgs {
		ids[i] = orgs[i].ID
	}
	media, err := s.media.ListForOwners(ctx, ids, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading reels: %w", err)
	}
	AttachReelsToOrganizations(orgs, media)

	return &dto.PaginatedList[models.Organization]{
		Items:      orgs,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// SetStatus moderates an organization
func (s *OrganizationService) SetStatus(ctx context.Context, id uuid.UUID, status models.OrganizationStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, status)
	}
	if err := s.orgs.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		return fmt.Errorf("error updating organization status: %w", err)
	}
	s.logger.Info().Str("organizationID", id.String()).Str("status", string(status)).Msg("Organization status changed")
	return nil
}

// SetPremium toggles the premium placement flag
func (s *OrganizationService) SetPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	if err := s.orgs.UpdatePremium(ctx, id, premium); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		return fmt.Errorf("error updating organization premium flag: %w", err)
	}
	return nil
}
