package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifiesPgErrors(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "interactions_type_user_id_target_id_key"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsDuplicateKeyError(dup))
	assert.True(t, IsDuplicateConstraintError(dup, "interactions_type_user_id_target_id_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "applications_job_id_user_id_key"))
	assert.True(t, IsForeignKeyError(fk))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsDuplicateKeyError(errors.New("boom")))
}
