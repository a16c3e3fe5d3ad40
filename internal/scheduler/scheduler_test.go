package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
)

type fakeJobs struct {
	refreshed  atomic.Int32
	backlogged atomic.Int32
	backlogErr error
}

func (f *fakeJobs) RefreshStats(context.Context) models.AdminStats {
	f.refreshed.Add(1)
	return models.AdminStats{Users: 3, Companies: 2, Jobs: 5, Success: true}
}

func (f *fakeJobs) RecommendationBacklog(context.Context) (int64, error) {
	f.backlogged.Add(1)
	return 7, f.backlogErr
}

func TestStartWarmsStatsImmediately(t *testing.T) {
	jobs := &fakeJobs{}
	s := New(jobs, Config{}, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return jobs.refreshed.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New(&fakeJobs{}, Config{StatsWarmSpec: "every now and then"}, zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))

	s = New(&fakeJobs{}, Config{BacklogSpec: "@sometimes"}, zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
}

func TestReportBacklog(t *testing.T) {
	jobs := &fakeJobs{}
	s := New(jobs, Config{}, zerolog.Nop())

	s.ReportBacklog(context.Background())
	jobs.backlogErr = errors.New("db down")
	s.ReportBacklog(context.Background())

	assert.Equal(t, int32(2), jobs.backlogged.Load())
}
