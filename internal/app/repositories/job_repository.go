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
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

var jobColumns = []string{
	"j.id", "j.organization_id", "j.title", "j.description", "j.type", "j.category", "j.location", "j.salary", "j.reward",
	"j.rjp_positive", "j.rjp_negative", "j.is_active", "j.created_at", "j.updated_at",
	"o.name", "o.industry", "o.logo_url", "o.is_premium",
}

// JobListFilter narrows job listings. PublicOnly restricts to active jobs of approved organizations.
type JobListFilter struct {
	Type           models.JobType
	Category       string
	Search         string
	OrganizationID uuid.UUID
	PublicOnly     bool
}

// JobRepository handles job and quest persistence
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db, sb: psql}
}

func scanJob(row pgx.Row) (*models.Job, error) {
	j := &models.Job{Organization: &models.OrganizationSummary{}}
	err := row.Scan(&j.ID, &j.OrganizationID, &j.Title, &j.Description, &j.Type, &j.Category, &j.Location, &j.Salary, &j.Reward,
		&j.RJPPositive, &j.RJPNegative, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		&j.Organization.Name, &j.Organization.Industry, &j.Organization.LogoURL, &j.Organization.IsPremium)
	if err != nil {
		return nil, err
	}
	j.Organization.ID = j.OrganizationID
	if j.RJPPositive == nil {
		j.RJPPositive = []string{}
	}
	if j.RJPNegative == nil {
		j.RJPNegative = []string{}
	}
	j.Reels = []models.MediaItem{}
	return j, nil
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return r.sb.Select(jobColumns...).From("jobs j").Join("organizations o ON o.id = j.organization_id")
}

// Create inserts a job
func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	if j.RJPPositive == nil {
		j.RJPPositive = []string{}
	}
	if j.RJPNegative == nil {
		j.RJPNegative = []string{}
	}
	sql, args, err := r.sb.Insert("jobs").
		Columns("organization_id", "title", "description", "type", "category", "location", "salary", "reward", "rjp_positive", "rjp_negative", "is_active").
		Values(j.OrganizationID, j.Title, j.Description, j.Type, j.Category, j.Location, j.Salary, j.Reward, j.RJPPositive, j.RJPNegative, j.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create job SQL")
		return fmt.Errorf("failed to build create job query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("organizationID", j.OrganizationID.String()).Msg("Error executing create job query")
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetByID retrieves a job with its organization summary
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	sql, args, err := r.selectJobs().Where(idEq("j.id", id)).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get job SQL")
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	j, err := scanJob(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("jobID", id.String()).Msg("Error scanning job row")
		return nil, fmt.Errorf("error getting job: %w", err)
	}
	return j, nil
}

func (f JobListFilter) where() squirrel.And {
	where := squirrel.And{}
	if f.PublicOnly {
		where = append(where, squirrel.Eq{"j.is_active": true, "o.status": models.OrganizationApproved})
	}
	if f.Type != "" {
		where = append(where, squirrel.Eq{"j.type": f.Type})
	}
	if f.Category != "" {
		where = append(where, squirrel.Eq{"j.category": f.Category})
	}
	if f.OrganizationID != uuid.Nil {
		where = append(where, idEq("j.organization_id", f.OrganizationID))
	}
	if f.Search != "" {
		pattern := helpers.LikePattern(f.Search)
		where = append(where, squirrel.Or{squirrel.ILike{"j.title": pattern}, squirrel.ILike{"j.description": pattern}})
	}
	return where
}

// List returns a page of jobs, premium organizations first
func (r *JobRepository) List(ctx context.Context, f JobListFilter, offset uint64, limit int) ([]models.Job, int64, error) {
	where := f.where()

	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("jobs j").
		Join("organizations o ON o.id = j.organization_id").Where(where))
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.selectJobs().Where(where).
		OrderBy("o.is_premium DESC", "j.created_at DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list jobs SQL")
		return nil, 0, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list jobs query")
		return nil, 0, fmt.Errorf("error querying jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, total, nil
}

// Update writes the editable job fields
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	sql, args, err := r.sb.Update("jobs").SetMap(map[string]interface{}{
		"title":        j.Title,
		"description":  j.Description,
		"type":         j.Type,
		"category":     j.Category,
		"location":     j.Location,
		"salary":       j.Salary,
		"reward":       j.Reward,
		"rjp_positive": j.RJPPositive,
		"rjp_negative": j.RJPNegative,
		"is_active":    j.IsActive,
		"updated_at":   squirrel.Expr("NOW()"),
	}).Where(idEq("id", j.ID)).Suffix("RETURNING updated_at").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update job SQL")
		return fmt.Errorf("failed to build update job query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Str("jobID", j.ID.String()).Msg("Error executing update job query")
		return fmt.Errorf("error updating job: %w", err)
	}
	return nil
}

// Delete removes a job; its applications and reels cascade
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("jobs").Where(idEq("id", id)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete job SQL")
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("jobID", id.String()).Msg("Error executing delete job query")
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of jobs
func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.sb.Select("COUNT(*)").From("jobs"))
}
