package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

// ErrNotFound is returned by single-row lookups that match nothing
var ErrNotFound = apperrors.ErrResourceNotFound

// psql is the shared statement builder using $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// idEq builds "col = ?" for a single uuid. squirrel.Eq would treat the
// [16]byte array as a list and expand it into an IN clause.
func idEq(col string, id uuid.UUID) squirrel.Sqlizer {
	return squirrel.Expr(col+" = ?", id)
}
