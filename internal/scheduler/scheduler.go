// Package scheduler runs the periodic maintenance jobs: warming the admin
// statistics cache and reporting the recommendation backlog.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
)

// Jobs is the work the scheduler triggers
type Jobs interface {
	RefreshStats(ctx context.Context) models.AdminStats
	RecommendationBacklog(ctx context.Context) (int64, error)
}

// Config holds the cron specs
type Config struct {
	StatsWarmSpec string
	BacklogSpec   string
}

// Scheduler wraps robfig/cron
type Scheduler struct {
	cron   *cron.Cron
	jobs   Jobs
	cfg    Config
	logger zerolog.Logger
}

// New creates a Scheduler. Empty specs fall back to the defaults.
func New(jobs Jobs, cfg Config, logger zerolog.Logger) *Scheduler {
	if cfg.StatsWarmSpec == "" {
		cfg.StatsWarmSpec = "@every 10m"
	}
	if cfg.BacklogSpec == "" {
		cfg.BacklogSpec = "@daily"
	}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		jobs:   jobs,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the jobs and starts the cron loop. The stats cache is warmed
// once immediately so the first admin request does not pay for the counts.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.StatsWarmSpec, func() { s.WarmStats(ctx) }); err != nil {
		return fmt.Errorf("invalid stats warm spec %q: %w", s.cfg.StatsWarmSpec, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.BacklogSpec, func() { s.ReportBacklog(ctx) }); err != nil {
		return fmt.Errorf("invalid backlog spec %q: %w", s.cfg.BacklogSpec, err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("statsWarmSpec", s.cfg.StatsWarmSpec).
		Str("backlogSpec", s.cfg.BacklogSpec).
		Msg("Scheduler started")

	go s.WarmStats(ctx)
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// WarmStats recomputes and caches the admin statistics
func (s *Scheduler) WarmStats(ctx context.Context) {
	stats := s.jobs.RefreshStats(ctx)
	if !stats.Success {
		s.logger.Warn().Msg("Admin stats warm-up failed")
		return
	}
	s.logger.Debug().
		Int64("users", stats.Users).
		Int64("companies", stats.Companies).
		Int64("jobs", stats.Jobs).
		Msg("Admin stats cache warmed")
}

// ReportBacklog logs how many students have no recommendations yet
func (s *Scheduler) ReportBacklog(ctx context.Context) {
	n, err := s.jobs.RecommendationBacklog(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count recommendation backlog")
		return
	}
	s.logger.Info().Int64("studentsWithoutRecommendations", n).Msg("Recommendation backlog")
}
