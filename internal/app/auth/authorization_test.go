package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

type fakeMembers struct {
	members map[[2]uuid.UUID]bool
	err     error
}

func (f fakeMembers) IsMember(_ context.Context, orgID, userID uuid.UUID) (bool, error) {
	return f.members[[2]uuid.UUID{orgID, userID}], f.err
}

func TestOrganizationAccess(t *testing.T) {
	ctx := context.Background()
	org, member, outsider := uuid.New(), uuid.New(), uuid.New()
	svc := NewAuthorizationService(fakeMembers{members: map[[2]uuid.UUID]bool{{org, member}: true}})

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"member company admin", Actor{UserID: member, Role: models.RoleCompanyAdmin}, true},
		{"other company admin", Actor{UserID: outsider, Role: models.RoleCompanyAdmin}, false},
		{"system admin", Actor{UserID: outsider, Role: models.RoleSystemAdmin}, true},
		{"student listed as member", Actor{UserID: member, Role: models.RoleStudent}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.CanManageOrganization(ctx, tt.actor, org)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			err = svc.ValidateOrganizationAccess(ctx, tt.actor, org)
			if tt.want {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
			}
		})
	}
}

func TestOrganizationAccessLookupError(t *testing.T) {
	svc := NewAuthorizationService(fakeMembers{err: errors.New("db down")})
	err := svc.ValidateOrganizationAccess(context.Background(), Actor{UserID: uuid.New(), Role: models.RoleCompanyAdmin}, uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrPermissionDenied)
}
