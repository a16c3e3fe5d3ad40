package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/db"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

var organizationColumns = []string{
	"o.id", "o.name", "o.industry", "o.description", "o.location", "o.website", "o.logo_url", "o.cover_url",
	"o.employee_count", "o.appeal", "o.status", "o.is_premium", "o.created_by", "o.created_at", "o.updated_at",
	"(SELECT COUNT(*) FROM jobs j WHERE j.organization_id = o.id AND j.is_active) AS active_jobs",
}

// OrganizationListFilter narrows organization listings
type OrganizationListFilter struct {
	Industry string
	Search   string
	Premium  *bool
	Status   models.OrganizationStatus
	MemberID uuid.UUID
}

// OrganizationRepository handles organization and membership persistence
type OrganizationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db, sb: psql}
}

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	o := &models.Organization{}
	err := row.Scan(&o.ID, &o.Name, &o.Industry, &o.Description, &o.Location, &o.Website, &o.LogoURL, &o.CoverURL,
		&o.EmployeeCount, &o.Appeal, &o.Status, &o.IsPremium, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.ActiveJobs)
	if err != nil {
		return nil, err
	}
	o.Reels = []models.MediaItem{}
	return o, nil
}

// CreateWithOwner inserts the organization and makes its creator the owner in one transaction
func (r *OrganizationRepository) CreateWithOwner(ctx context.Context, o *models.Organization) error {
	insertOrg, orgArgs, err := r.sb.Insert("organizations").
		Columns("name", "industry", "description", "location", "website", "logo_url", "cover_url", "employee_count", "appeal", "status", "created_by").
		Values(o.Name, o.Industry, o.Description, o.Location, o.Website, o.LogoURL, o.CoverURL, o.EmployeeCount, o.Appeal, o.Status, o.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create organization SQL")
		return fmt.Errorf("failed to build create organization query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertOrg, orgArgs...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			logger.Error().Err(err).Str("name", o.Name).Msg("Error executing create organization query")
			return fmt.Errorf("error creating organization: %w", err)
		}

		insertMember, memberArgs, err := r.sb.Insert("organization_members").
			Columns("organization_id", "user_id", "role").
			Values(o.ID, o.CreatedBy, models.MemberOwner).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build add member query: %w", err)
		}
		if _, err := tx.Exec(ctx, insertMember, memberArgs...); err != nil {
			logger.Error().Err(err).Str("organizationID", o.ID.String()).Msg("Error adding organization owner")
			return fmt.Errorf("error adding organization owner: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	sql, args, err := r.sb.Select(organizationColumns...).From("organizations o").Where(idEq("o.id", id)).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get organization SQL")
		return nil, fmt.Errorf("failed to build get organization query: %w", err)
	}

	o, err := scanOrganization(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("organizationID", id.String()).Msg("Error scanning organization row")
		return nil, fmt.Errorf("error getting organization: %w", err)
	}
	return o, nil
}

func (f OrganizationListFilter) where() squirrel.And {
	where := squirrel.And{}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"o.status": f.Status})
	}
	if f.Industry != "" {
		where = append(where, squirrel.Eq{"o.industry": f.Industry})
	}
	if f.Search != "" {
		pattern := helpers.LikePattern(f.Search)
		where = append(where, squirrel.Or{squirrel.ILike{"o.name": pattern}, squirrel.ILike{"o.description": pattern}})
	}
	if f.Premium != nil {
		where = append(where, squirrel.Eq{"o.is_premium": *f.Premium})
	}
	if f.MemberID != uuid.Nil {
		where = append(where, squirrel.Expr("EXISTS (SELECT 1 FROM organization_members m WHERE m.organization_id = o.id AND m.user_id = ?)", f.MemberID))
	}
	return where
}

// List returns a page of organizations matching the filter, premium first
func (r *OrganizationRepository) List(ctx context.Context, f OrganizationListFilter, offset uint64, limit int) ([]models.Organization, int64, error) {
	where := f.where()

	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("organizations o").Where(where))
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.sb.Select(organizationColumns...).From("organizations o").Where(where).
		OrderBy("o.is_premium DESC", "o.created_at DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list organizations SQL")
		return nil, 0, fmt.Errorf("failed to build list organizations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list organizations query")
		return nil, 0, fmt.Errorf("error querying organizations: %w", err)
	}
	defer rows.Close()

	orgs := []models.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning organization row: %w", err)
		}
		orgs = append(orgs, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating organization rows: %w", err)
	}
	return orgs, total, nil
}

// Update writes the profile fields of an organization
func (r *OrganizationRepository) Update(ctx context.Context, o *models.Organization) error {
	return r.update(ctx, o.ID, map[string]interface{}{
		"name":           o.Name,
		"industry":       o.Industry,
		"description":    o.Description,
		"location":       o.Location,
		"website":        o.Website,
		"logo_url":       o.LogoURL,
		"cover_url":      o.CoverURL,
		"employee_count": o.EmployeeCount,
		"appeal":         o.Appeal,
	})
}

// UpdateStatus sets the moderation status
func (r *OrganizationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrganizationStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": status})
}

// UpdatePremium sets the premium flag
func (r *OrganizationRepository) UpdatePremium(ctx context.Context, id uuid.UUID, premium bool) error {
	return r.update(ctx, id, map[string]interface{}{"is_premium": premium})
}

func (r *OrganizationRepository) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = squirrel.Expr("NOW()")
	sql, args, err := r.sb.Update("organizations").SetMap(fields).Where(idEq("id", id)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update organization SQL")
		return fmt.Errorf("failed to build update organization query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("organizationID", id.String()).Msg("Error executing update organization query")
		return fmt.Errorf("error updating organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsMember reports whether userID belongs to the organization
func (r *OrganizationRepository) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM organization_members WHERE organization_id = $1 AND user_id = $2)`,
		orgID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("organizationID", orgID.String()).Msg("Error checking organization membership")
		return false, fmt.Errorf("error checking membership: %w", err)
	}
	return exists, nil
}

// Count returns the number of organizations
func (r *OrganizationRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.sb.Select("COUNT(*)").From("organizations"))
}

// GetSummaries loads short organization views keyed by id
func (r *OrganizationRepository) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.OrganizationSummary, error) {
	out := make(map[uuid.UUID]models.OrganizationSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := r.sb.Select("id", "name", "industry", "logo_url", "is_premium").
		From("organizations").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build organization summaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing organization summaries query")
		return nil, fmt.Errorf("error querying organization summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.OrganizationSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Industry, &s.LogoURL, &s.IsPremium); err != nil {
			return nil, fmt.Errorf("error scanning organization summary: %w", err)
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}
