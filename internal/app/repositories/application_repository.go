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
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/dberrors"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

var applicationColumns = []string{
	"a.id", "a.job_id", "a.user_id", "a.status", "a.message", "a.created_at", "a.updated_at",
	"j.title", "j.organization_id",
	"p.full_name", "p.university", "p.avatar_url",
}

// ApplicationRepository handles job applications
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db, sb: psql}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{Applicant: &models.ProfileSummary{}}
	err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &a.Message, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.OrganizationID,
		&a.Applicant.FullName, &a.Applicant.University, &a.Applicant.AvatarURL)
	if err != nil {
		return nil, err
	}
	a.Applicant.ID = a.UserID
	return a, nil
}

func (r *ApplicationRepository) selectApplications() squirrel.SelectBuilder {
	return r.sb.Select(applicationColumns...).From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Join("profiles p ON p.id = a.user_id")
}

// CreateWithInteraction stores the application and its 'apply' interaction together
func (r *ApplicationRepository) CreateWithInteraction(ctx context.Context, a *models.Application) error {
	appSQL, appArgs, err := r.sb.Insert("applications").
		Columns("job_id", "user_id", "status", "message").
		Values(a.JobID, a.UserID, a.Status, a.Message).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return fmt.Errorf("failed to build create application query: %w", err)
	}
	interactionSQL, interactionArgs, err := r.sb.Insert("interactions").
		Columns("type", "user_id", "target_id", "message").
		Values(models.InteractionApply, a.UserID, a.JobID, a.Message).
		Suffix("ON CONFLICT ON CONSTRAINT interactions_type_user_id_target_id_key DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build apply interaction query: %w", err)
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, appSQL, appArgs...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, interactionSQL, interactionArgs...)
		return err
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_job_id_user_id_key") {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Str("jobID", a.JobID.String()).Msg("Error creating application")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetByID retrieves an application with job and applicant details
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	sql, args, err := r.selectApplications().Where(idEq("a.id", id)).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application SQL")
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	a, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("applicationID", id.String()).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return a, nil
}

// ListByUser returns a student's applications, newest first
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	return r.list(ctx, idEq("a.user_id", userID))
}

// ListByOrganization returns applications to an organization's jobs, optionally filtered by status
func (r *ApplicationRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error) {
	where := squirrel.And{idEq("j.organization_id", orgID)}
	if status != "" {
		where = append(where, squirrel.Eq{"a.status": status})
	}
	return r.list(ctx, where)
}

func (r *ApplicationRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]models.Application, error) {
	sql, args, err := r.selectApplications().Where(where).OrderBy("a.created_at DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateStatusIfCurrent moves an application to next only while it is still in current.
// It reports false when another writer changed the status first.
func (r *ApplicationRepository) UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, current, next models.ApplicationStatus) (bool, error) {
	sql, args, err := r.sb.Update("applications").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.And{idEq("id", id), squirrel.Eq{"status": current}}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update application status SQL")
		return false, fmt.Errorf("failed to build update application status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("applicationID", id.String()).Msg("Error executing update application status query")
		return false, fmt.Errorf("error updating application status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountByStatus returns the number of applications per status. Missing statuses count zero.
func (r *ApplicationRepository) CountByStatus(ctx context.Context) ([]models.ApplicationStatusCount, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").From("applications").GroupBy("status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application summary query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing application summary query")
		return nil, fmt.Errorf("error querying application summary: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int64)
	for rows.Next() {
		var s models.ApplicationStatus
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			return nil, fmt.Errorf("error scanning application summary: %w", err)
		}
		counts[s] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.ApplicationStatusCount, 0, len(models.AllApplicationStatuses))
	for _, s := range models.AllApplicationStatuses {
		out = append(out, models.ApplicationStatusCount{Status: s, Count: counts[s]})
	}
	return out, nil
}
