package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/pkg/cache"
)

func profilesOfSize(n int) *fakeProfiles {
	f := &fakeProfiles{profiles: make(map[uuid.UUID]*models.Profile)}
	for i := 0; i < n; i++ {
		id := uuid.New()
		f.profiles[id] = &models.Profile{ID: id, Role: models.RoleStudent}
	}
	return f
}

func TestAdminStatsCountsEverything(t *testing.T) {
	svc := NewAdminService(profilesOfSize(3), &fakeOrganizations{n: 2}, &fakeJobs{n: 5}, cache.New(nil, 0), testLogger)

	stats := svc.Stats(context.Background())
	assert.Equal(t, models.AdminStats{Users: 3, Companies: 2, Jobs: 5, Success: true}, stats)
}

func TestAdminStatsFallback(t *testing.T) {
	profiles := profilesOfSize(3)
	profiles.countErr = errors.New("connection refused")
	svc := NewAdminService(profiles, &fakeOrganizations{n: 2}, &fakeJobs{n: 5}, cache.New(nil, 0), testLogger)

	stats := svc.Stats(context.Background())
	assert.Equal(t, models.AdminStats{Users: 0, Companies: 0, Jobs: 0, Success: false}, stats)
}

func TestAdminStatsServedFromCache(t *testing.T) {
	c, mr := newRedisCache(t)
	jobs := &fakeJobs{n: 5}
	svc := NewAdminService(profilesOfSize(3), &fakeOrganizations{n: 2}, jobs, c, testLogger)

	first := svc.Stats(context.Background())
	assert.Equal(t, int64(5), first.Jobs)
	assert.True(t, mr.Exists(cache.AdminStatsKey))

	jobs.n = 9
	assert.Equal(t, first, svc.Stats(context.Background()))

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, int64(9), svc.Stats(context.Background()).Jobs)

	jobs.n = 11
	assert.Equal(t, int64(11), svc.RefreshStats(context.Background()).Jobs)
	assert.Equal(t, int64(11), svc.Stats(context.Background()).Jobs)
}

func TestAdminStatsFallbackIsNotCached(t *testing.T) {
	c, mr := newRedisCache(t)
	profiles := profilesOfSize(3)
	profiles.countErr = errors.New("connection refused")
	svc := NewAdminService(profiles, &fakeOrganizations{n: 2}, &fakeJobs{n: 5}, c, testLogger)

	assert.False(t, svc.Stats(context.Background()).Success)
	assert.False(t, mr.Exists(cache.AdminStatsKey))

	profiles.countErr = nil
	stats := svc.Stats(context.Background())
	assert.True(t, stats.Success)
	assert.Equal(t, int64(3), stats.Users)
	assert.True(t, mr.Exists(cache.AdminStatsKey))
}

func TestAdminStatsIgnoresCachedFailure(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set(cache.AdminStatsKey, `{"users":0,"companies":0,"jobs":0,"success":false}`))
	svc := NewAdminService(profilesOfSize(3), &fakeOrganizations{n: 2}, &fakeJobs{n: 5}, c, testLogger)

	assert.Equal(t, models.AdminStats{Users: 3, Companies: 2, Jobs: 5, Success: true}, svc.Stats(context.Background()))
}
