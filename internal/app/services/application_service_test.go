package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/ehimebase/babybase/internal/app/auth"
	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/websocket"
)

func newApplicationFixture(status models.ApplicationStatus) (*ApplicationService, *fakeApplications, *fakeNotifier, appauth.Actor) {
	org, member := uuid.New(), uuid.New()
	app := &models.Application{ID: uuid.New(), JobID: uuid.New(), UserID: uuid.New(), Status: status, OrganizationID: org}
	store := &fakeApplications{app: app}
	orgs := &fakeOrganizations{members: map[[2]uuid.UUID]bool{{org, member}: true}}
	notifier := &fakeNotifier{}
	svc := NewApplicationService(store, nil, appauth.NewAuthorizationService(orgs), notifier, testLogger)
	return svc, store, notifier, appauth.Actor{UserID: member, Role: models.RoleCompanyAdmin}
}

func TestUpdateStatusFollowsPipeline(t *testing.T) {
	for _, from := range models.AllApplicationStatuses {
		for _, to := range models.AllApplicationStatuses {
			svc, store, notifier, actor := newApplicationFixture(from)
			got, err := svc.UpdateStatus(context.Background(), actor, store.app.ID, to)

			if models.CanTransition(from, to) {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got.Status)
				require.Len(t, notifier.sent, 1)
				assert.Equal(t, store.app.UserID, notifier.sent[0].userID)
				assert.Equal(t, websocket.KindApplicationStatus, notifier.sent[0].kind)
				continue
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", from, to)
			assert.Zero(t, store.updates)
			assert.Empty(t, notifier.sent)
		}
	}
}

func TestCanTransitionOnlyForwardOrReject(t *testing.T) {
	order := map[models.ApplicationStatus]int{}
	for i, s := range models.AllApplicationStatuses[:5] {
		order[s] = i
	}
	for _, from := range models.AllApplicationStatuses {
		for _, to := range models.AllApplicationStatuses {
			want := false
			if !from.IsTerminal() {
				if to == models.StatusRejected {
					want = true
				} else if fi, ok := order[from]; ok {
					if ti, ok := order[to]; ok && ti == fi+1 {
						want = true
					}
				}
			}
			assert.Equal(t, want, models.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestUpdateStatusConcurrentChangeConflicts(t *testing.T) {
	svc, store, notifier, actor := newApplicationFixture(models.StatusApplied)
	store.casFails = true

	_, err := svc.UpdateStatus(context.Background(), actor, store.app.ID, models.StatusScreening)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, notifier.sent)
}

func TestUpdateStatusRequiresMembership(t *testing.T) {
	svc, store, _, _ := newApplicationFixture(models.StatusApplied)
	outsider := appauth.Actor{UserID: uuid.New(), Role: models.RoleCompanyAdmin}

	_, err := svc.UpdateStatus(context.Background(), outsider, store.app.ID, models.StatusScreening)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, models.StatusApplied, store.app.Status)
}
