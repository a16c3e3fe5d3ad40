package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehimebase/babybase/internal/pkg/logger"
)

// ProgressRepository records lesson completion per user
type ProgressRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db, sb: psql}
}

// MarkComplete upserts a completed row for (user, lesson)
func (r *ProgressRepository) MarkComplete(ctx context.Context, userID, lessonID, courseID uuid.UUID) error {
	sql, args, err := r.sb.Insert("course_progress").
		Columns("user_id", "lesson_id", "course_id", "completed", "completed_at").
		Values(userID, lessonID, courseID, true, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (user_id, lesson_id) DO UPDATE SET completed = TRUE, completed_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark complete query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("lessonID", lessonID.String()).Msg("Error marking lesson complete")
		return fmt.Errorf("error marking lesson complete: %w", err)
	}
	return nil
}

// Reset removes the completion row for (user, lesson)
func (r *ProgressRepository) Reset(ctx context.Context, userID, lessonID uuid.UUID) error {
	sql, args, err := r.sb.Delete("course_progress").
		Where(squirrel.And{idEq("user_id", userID), idEq("lesson_id", lessonID)}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reset progress query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("lessonID", lessonID.String()).Msg("Error resetting lesson progress")
		return fmt.Errorf("error resetting progress: %w", err)
	}
	return nil
}

// CompletedLessons returns completed lesson ids of a user grouped by course.
// A nil courseID covers every course.
func (r *ProgressRepository) CompletedLessons(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	where := squirrel.And{idEq("user_id", userID), squirrel.Eq{"completed": true}}
	if courseID != nil {
		where = append(where, idEq("course_id", *courseID))
	}
	sql, args, err := r.sb.Select("course_id", "lesson_id").From("course_progress").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build completed lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error querying course progress")
		return nil, fmt.Errorf("error querying progress: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var c, l uuid.UUID
		if err := rows.Scan(&c, &l); err != nil {
			return nil, fmt.Errorf("error scanning progress row: %w", err)
		}
		out[c] = append(out[c], l)
	}
	return out, rows.Err()
}
