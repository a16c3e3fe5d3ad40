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
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

var interactionColumns = []string{"id", "type", "user_id", "target_id", "message", "organization_id", "created_at"}

// InteractionRepository stores likes, applies and scouts keyed by (type, user, target)
type InteractionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInteractionRepository creates a new InteractionRepository
func NewInteractionRepository(db *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{db: db, sb: psql}
}

func scanInteraction(row pgx.Row) (*models.Interaction, error) {
	i := &models.Interaction{}
	if err := row.Scan(&i.ID, &i.Type, &i.UserID, &i.TargetID, &i.Message, &i.OrganizationID, &i.CreatedAt); err != nil {
		return nil, err
	}
	return i, nil
}

func keyWhere(key models.InteractionKey) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"type": key.Type},
		idEq("user_id", key.UserID),
		idEq("target_id", key.TargetID),
	}
}

// Toggle removes the interaction when present and creates it otherwise.
// It returns whether the interaction exists afterwards.
func (r *InteractionRepository) Toggle(ctx context.Context, key models.InteractionKey) (bool, error) {
	deleteSQL, deleteArgs, err := r.sb.Delete("interactions").Where(keyWhere(key)).Suffix("RETURNING id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete interaction SQL")
		return false, fmt.Errorf("failed to build delete interaction query: %w", err)
	}
	insertSQL, insertArgs, err := r.sb.Insert("interactions").
		Columns("type", "user_id", "target_id").
		Values(key.Type, key.UserID, key.TargetID).
		Suffix("ON CONFLICT ON CONSTRAINT interactions_type_user_id_target_id_key DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert interaction SQL")
		return false, fmt.Errorf("failed to build insert interaction query: %w", err)
	}

	active := false
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var removed uuid.UUID
		err := tx.QueryRow(ctx, deleteSQL, deleteArgs...).Scan(&removed)
		switch {
		case err == nil:
			active = false
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("error deleting interaction: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("error inserting interaction: %w", err)
		}
		active = true
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("type", string(key.Type)).Str("targetID", key.TargetID.String()).Msg("Error toggling interaction")
		return false, err
	}
	return active, nil
}

// Create inserts the interaction unless one with the same key exists.
// created is false when the existing row was returned instead.
func (r *InteractionRepository) Create(ctx context.Context, i *models.Interaction) (bool, error) {
	sql, args, err := r.sb.Insert("interactions").
		Columns("type", "user_id", "target_id", "message", "organization_id").
		Values(i.Type, i.UserID, i.TargetID, i.Message, i.OrganizationID).
		Suffix("ON CONFLICT ON CONSTRAINT interactions_type_user_id_target_id_key DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create interaction SQL")
		return false, fmt.Errorf("failed to build create interaction query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&i.ID, &i.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("type", string(i.Type)).Msg("Error executing create interaction query")
		return false, fmt.Errorf("error creating interaction: %w", err)
	}

	existing, err := r.Get(ctx, i.Key())
	if err != nil {
		return false, err
	}
	*i = *existing
	return false, nil
}

// Get returns the interaction for key
func (r *InteractionRepository) Get(ctx context.Context, key models.InteractionKey) (*models.Interaction, error) {
	sql, args, err := r.sb.Select(interactionColumns...).From("interactions").Where(keyWhere(key)).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get interaction query: %w", err)
	}

	i, err := scanInteraction(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning interaction row")
		return nil, fmt.Errorf("error getting interaction: %w", err)
	}
	return i, nil
}

// ListByUser returns the interactions a user made, newest first. An empty type lists all.
func (r *InteractionRepository) ListByUser(ctx context.Context, userID uuid.UUID, t models.InteractionType) ([]models.Interaction, error) {
	where := squirrel.And{idEq("user_id", userID)}
	if t != "" {
		where = append(where, squirrel.Eq{"type": t})
	}
	return r.list(ctx, where)
}

// ListByTarget returns the interactions of one type pointing at targetID
func (r *InteractionRepository) ListByTarget(ctx context.Context, targetID uuid.UUID, t models.InteractionType) ([]models.Interaction, error) {
	return r.list(ctx, squirrel.And{idEq("target_id", targetID), squirrel.Eq{"type": t}})
}

func (r *InteractionRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]models.Interaction, error) {
	sql, args, err := r.sb.Select(interactionColumns...).From("interactions").Where(where).OrderBy("created_at DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list interactions SQL")
		return nil, fmt.Errorf("failed to build list interactions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list interactions query")
		return nil, fmt.Errorf("error querying interactions: %w", err)
	}
	defer rows.Close()

	out := []models.Interaction{}
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning interaction row: %w", err)
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}
