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
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/dberrors"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

var profileColumns = []string{
	"id", "email", "password_hash", "full_name", "role", "bio", "university", "avatar_url", `"values"`, "created_at", "updated_at",
}

// ProfileRepository handles profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db, sb: psql}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.Bio, &p.University, &p.AvatarURL, &p.Values, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Values == nil {
		p.Values = []string{}
	}
	return p, nil
}

// Create inserts a profile, filling ID and timestamps
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	if p.Values == nil {
		p.Values = []string{}
	}
	sql, args, err := r.sb.Insert("profiles").
		Columns("email", "password_hash", "full_name", "role", `"values"`).
		Values(p.Email, p.PasswordHash, p.FullName, p.Role, p.Values).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", p.Email).Msg("Error executing create profile query")
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, idEq("id", id))
}

// GetByEmail retrieves a profile by its login email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *ProfileRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).From("profiles").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return p, nil
}

// Update writes the editable profile fields
func (r *ProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		SetMap(map[string]interface{}{
			"full_name":  p.FullName,
			"bio":        p.Bio,
			"university": p.University,
			"avatar_url": p.AvatarURL,
			`"values"`:   p.Values,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(idEq("id", p.ID)).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Str("profileID", p.ID.String()).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

// List returns a page of profiles and the total count for the filter
func (r *ProfileRepository) List(ctx context.Context, role models.Role, search string, offset uint64, limit int) ([]models.Profile, int64, error) {
	where := squirrel.And{}
	if role != "" {
		where = append(where, squirrel.Eq{"role": role})
	}
	if search != "" {
		pattern := helpers.LikePattern(search)
		where = append(where, squirrel.Or{squirrel.ILike{"full_name": pattern}, squirrel.ILike{"email": pattern}})
	}

	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("profiles").Where(where))
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.sb.Select(profileColumns...).From("profiles").Where(where).
		OrderBy("created_at DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list profiles SQL")
		return nil, 0, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list profiles query")
		return nil, 0, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, total, nil
}

// Count returns the number of profiles
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.sb.Select("COUNT(*)").From("profiles"))
}

// CountStudentsWithoutRecommendations returns how many students have no generated recommendations yet
func (r *ProfileRepository) CountStudentsWithoutRecommendations(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.sb.Select("COUNT(*)").From("profiles p").
		Where(squirrel.Eq{"p.role": models.RoleStudent}).
		Where("NOT EXISTS (SELECT 1 FROM user_course_recommendations r WHERE r.user_id = p.id)"))
}

// GetSummaries loads short profile views keyed by id
func (r *ProfileRepository) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ProfileSummary, error) {
	out := make(map[uuid.UUID]models.ProfileSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := r.sb.Select("id", "full_name", "university", "avatar_url").
		From("profiles").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile summaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing profile summaries query")
		return nil, fmt.Errorf("error querying profile summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ProfileSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.University, &s.AvatarURL); err != nil {
			return nil, fmt.Errorf("error scanning profile summary: %w", err)
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

// count runs a SELECT COUNT(*) builder
func count(ctx context.Context, db *pgxpool.Pool, b squirrel.SelectBuilder) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count SQL")
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("sql", sql).Msg("Error executing count query")
		return 0, fmt.Errorf("error counting rows: %w", err)
	}
	return n, nil
}
