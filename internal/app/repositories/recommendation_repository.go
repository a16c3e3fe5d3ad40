package repositories

import (
	"context"
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

// RecommendationRepository stores value-based course recommendations
type RecommendationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRecommendationRepository creates a new RecommendationRepository
func NewRecommendationRepository(db *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{db: db, sb: psql}
}

// ListByUser returns a user's recommendations with course titles, oldest first
func (r *RecommendationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserCourseRecommendation, error) {
	sql, args, err := r.sb.Select("r.id", "r.user_id", "r.course_id", "r.value", "r.reason_message", "r.created_at", "c.title").
		From("user_course_recommendations r").Join("courses c ON c.id = r.course_id").
		Where(idEq("r.user_id", userID)).OrderBy("r.created_at ASC", "r.value ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list recommendations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error querying recommendations")
		return nil, fmt.Errorf("error querying recommendations: %w", err)
	}
	defer rows.Close()

	out := []models.UserCourseRecommendation{}
	for rows.Next() {
		var rec models.UserCourseRecommendation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CourseID, &rec.Value, &rec.ReasonMessage, &rec.CreatedAt, &rec.CourseTitle); err != nil {
			return nil, fmt.Errorf("error scanning recommendation row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CreateBatch inserts all recommendations in one transaction
func (r *RecommendationRepository) CreateBatch(ctx context.Context, recs []models.UserCourseRecommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for i := range recs {
			sql, args, err := r.sb.Insert("user_course_recommendations").
				Columns("user_id", "course_id", "value", "reason_message").
				Values(recs[i].UserID, recs[i].CourseID, recs[i].Value, recs[i].ReasonMessage).
				Suffix("RETURNING id, created_at").ToSql()
			if err != nil {
				return fmt.Errorf("failed to build create recommendation query: %w", err)
			}
			if err := tx.QueryRow(ctx, sql, args...).Scan(&recs[i].ID, &recs[i].CreatedAt); err != nil {
				if dberrors.IsDuplicateKeyError(err) {
					return apperrors.NewConflictError("recommendations already exist")
				}
				logger.Error().Err(err).Str("userID", recs[i].UserID.String()).Msg("Error inserting recommendation")
				return fmt.Errorf("error creating recommendation: %w", err)
			}
		}
		return nil
	})
}
