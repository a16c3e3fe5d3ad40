package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

func TestToggleTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	store := newFakeInteractions()
	svc := NewInteractionService(store, testLogger)
	user := uuid.New()

	types := []models.InteractionType{models.InteractionLikeJob, models.InteractionLikeCompany, models.InteractionLikeUser}
	for _, typ := range types {
		for _, startActive := range []bool{false, true} {
			target := uuid.New()
			key := models.InteractionKey{Type: typ, UserID: user, TargetID: target}
			req := &dto.ToggleInteractionRequest{Type: typ, TargetID: target}
			if startActive {
				_, err := svc.Toggle(ctx, user, req)
				require.NoError(t, err)
			}
			before := store.exists(key)
			require.Equal(t, startActive, before)

			first, err := svc.Toggle(ctx, user, req)
			require.NoError(t, err)
			assert.Equal(t, !before, first.Active)

			second, err := svc.Toggle(ctx, user, req)
			require.NoError(t, err)
			assert.Equal(t, before, second.Active)
			assert.Equal(t, before, store.exists(key), "%s starting active=%v", typ, startActive)
		}
	}
}

func TestToggleRejectsNonLikeTypes(t *testing.T) {
	svc := NewInteractionService(newFakeInteractions(), testLogger)
	for _, typ := range []models.InteractionType{models.InteractionApply, models.InteractionScout, "poke"} {
		_, err := svc.Toggle(context.Background(), uuid.New(), &dto.ToggleInteractionRequest{Type: typ, TargetID: uuid.New()})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, string(typ))
	}
}
