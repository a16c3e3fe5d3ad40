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
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

var mediaColumns = []string{"id", "organization_id", "job_id", "media_type", "url", "title", "thumbnail_url", "uploaded_by", "created_at"}

// MediaRepository handles the media library (reels)
type MediaRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{db: db, sb: psql}
}

func scanMedia(row pgx.Row) (*models.MediaItem, error) {
	m := &models.MediaItem{}
	err := row.Scan(&m.ID, &m.OrganizationID, &m.JobID, &m.MediaType, &m.URL, &m.Title, &m.ThumbnailURL, &m.UploadedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a media item
func (r *MediaRepository) Create(ctx context.Context, m *models.MediaItem) error {
	sql, args, err := r.sb.Insert("media_library").
		Columns("organization_id", "job_id", "media_type", "url", "title", "thumbnail_url", "uploaded_by").
		Values(m.OrganizationID, m.JobID, m.MediaType, m.URL, m.Title, m.ThumbnailURL, m.UploadedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create media SQL")
		return fmt.Errorf("failed to build create media query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		logger.Error().Err(err).Str("url", m.URL).Msg("Error executing create media query")
		return fmt.Errorf("error creating media item: %w", err)
	}
	return nil
}

// GetByID retrieves a media item
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaItem, error) {
	sql, args, err := r.sb.Select(mediaColumns...).From("media_library").Where(idEq("id", id)).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get media query: %w", err)
	}

	m, err := scanMedia(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("mediaID", id.String()).Msg("Error scanning media row")
		return nil, fmt.Errorf("error getting media item: %w", err)
	}
	return m, nil
}

// Delete removes a media item
func (r *MediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("media_library").Where(idEq("id", id)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete media query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("mediaID", id.String()).Msg("Error executing delete media query")
		return fmt.Errorf("error deleting media item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOrganization returns every item attached to the organization or one of its jobs
func (r *MediaRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.MediaItem, error) {
	return r.list(ctx, squirrel.Or{
		idEq("organization_id", orgID),
		squirrel.Expr("job_id IN (SELECT id FROM jobs WHERE organization_id = ?)", orgID),
	})
}

// ListForOwners returns items attached to any of the given organizations or jobs
func (r *MediaRepository) ListForOwners(ctx context.Context, orgIDs, jobIDs []uuid.UUID) ([]models.MediaItem, error) {
	if len(orgIDs) == 0 && len(jobIDs) == 0 {
		return []models.MediaItem{}, nil
	}
	where := squirrel.Or{}
	if len(orgIDs) > 0 {
		where = append(where, squirrel.Eq{"organization_id": orgIDs})
	}
	if len(jobIDs) > 0 {
		where = append(where, squirrel.Eq{"job_id": jobIDs})
	}
	return r.list(ctx, where)
}

func (r *MediaRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]models.MediaItem, error) {
	sql, args, err := r.sb.Select(mediaColumns...).From("media_library").Where(where).OrderBy("created_at DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list media SQL")
		return nil, fmt.Errorf("failed to build list media query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list media query")
		return nil, fmt.Errorf("error querying media: %w", err)
	}
	defer rows.Close()

	out := []models.MediaItem{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning media row: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
