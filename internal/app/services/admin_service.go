package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/pkg/cache"
)

// AdminService aggregates platform counters for the admin console
type AdminService struct {
	profiles ProfileStore
	orgs     OrganizationStore
	jobs     JobStore
	cache    *cache.Cache
	logger   zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(profiles ProfileStore, orgs OrganizationStore, jobs JobStore, c *cache.Cache, logger zerolog.Logger) *AdminService {
	return &AdminService{profiles: profiles, orgs: orgs, jobs: jobs, cache: c, logger: logger}
}

// FallbackStats is returned when any counter cannot be read
func FallbackStats() models.AdminStats {
	return models.AdminStats{Success: false}
}

// Stats returns the dashboard counters, from cache when possible.
// It never fails: on error the zeroed fallback is returned and logged.
func (s *AdminService) Stats(ctx context.Context) models.AdminStats {
	var cached models.AdminStats
	if ok, err := s.cache.GetJSON(ctx, cache.AdminStatsKey, &cached); err == nil && ok && cached.Success {
		return cached
	}
	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the counters and stores successful results in the cache
func (s *AdminService) RefreshStats(ctx context.Context) models.AdminStats {
	stats, err := s.count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error loading admin stats, returning fallback")
		return FallbackStats()
	}
	if err := s.cache.SetJSON(ctx, cache.AdminStatsKey, stats, 0); err != nil {
		s.logger.Debug().Err(err).Msg("Admin stats not cached")
	}
	return stats
}

func (s *AdminService) count(ctx context.Context) (models.AdminStats, error) {
	users, err := s.profiles.Count(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}
	companies, err := s.orgs.Count(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}
	jobs, err := s.jobs.Count(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}
	return models.AdminStats{Users: users, Companies: companies, Jobs: jobs, Success: true}, nil
}

// RecommendationBacklog counts students who have not generated recommendations yet
func (s *AdminService) RecommendationBacklog(ctx context.Context) (int64, error) {
	return s.profiles.CountStudentsWithoutRecommendations(ctx)
}
