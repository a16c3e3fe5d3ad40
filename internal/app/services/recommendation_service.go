package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/ai"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/cache"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/validation"
)

const recommendationLockTTL = 2 * time.Minute

// FallbackReason is used whenever the model gives no usable reason for a pair
func FallbackReason(value, courseTitle string) string {
	return fmt.Sprintf("「%s」を大切にするあなたには「%s」がおすすめです。", value, courseTitle)
}

// SelectCourses pairs each value with two courses. For value i and n courses the
// picks are (2i) mod n and (2i+1) mod n, so they are distinct whenever n >= 2.
// courses must already be in (sort_order, created_at) order.
func SelectCourses(values []string, courses []models.Course) []ai.RecommendationPair {
	n := len(courses)
	if n == 0 {
		return nil
	}

	pairs := make([]ai.RecommendationPair, 0, 2*len(values))
	for i, v := range values {
		picks := []int{(2 * i) % n}
		if second := (2*i + 1) % n; second != picks[0] {
			picks = append(picks, second)
		}
		for _, idx := range picks {
			c := courses[idx]
			pairs = append(pairs, ai.RecommendationPair{
				Value:       v,
				CourseID:    c.ID.String(),
				CourseTitle: c.Title,
				Description: helpers.Deref(c.Description),
			})
		}
	}
	return pairs
}

func sortCourses(courses []models.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].SortOrder != courses[j].SortOrder {
			return courses[i].SortOrder < courses[j].SortOrder
		}
		return courses[i].CreatedAt.Before(courses[j].CreatedAt)
	})
}

func reasonKey(value, courseID string) string {
	return value + "\x00" + courseID
}

// RecommendationService matches a student's values to courses
type RecommendationService struct {
	recs     RecommendationStore
	courses  CourseStore
	profiles ProfileStore
	ai       ai.Completer
	cache    *cache.Cache
	logger   zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(recs RecommendationStore, courses CourseStore, profiles ProfileStore, completer ai.Completer, c *cache.Cache, logger zerolog.Logger) *RecommendationService {
	return &RecommendationService{recs: recs, courses: courses, profiles: profiles, ai: completer, cache: c, logger: logger}
}

// List returns the user's recommendations
func (s *RecommendationService) List(ctx context.Context, userID uuid.UUID) ([]models.UserCourseRecommendation, error) {
	recs, err := s.recs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing recommendations: %w", err)
	}
	return recs, nil
}

// Generate creates recommendations once per user. Existing rows are returned unchanged.
func (s *RecommendationService) Generate(ctx context.Context, userID uuid.UUID, values []string) (*dto.RecommendationsResponse, error) {
	if res, err := s.existing(ctx, userID); err != nil || res != nil {
		return res, err
	}

	values, err := s.resolveValues(ctx, userID, values)
	if err != nil {
		return nil, err
	}

	lockKey := cache.RecommendationLockKey + userID.String()
	locked, err := s.cache.Lock(ctx, lockKey, recommendationLockTTL)
	switch {
	case err != nil:
		// Redis is down: generate without the cross-request lock
		s.logger.Warn().Err(err).Msg("Recommendation lock unavailable")
	case !locked:
		return nil, apperrors.NewConflictError("recommendations are already being generated")
	default:
		defer s.cache.Unlock(context.WithoutCancel(ctx), lockKey)
	}

	// another request may have finished between the first check and the lock
	if res, err := s.existing(ctx, userID); err != nil || res != nil {
		return res, err
	}

	pairs, err := s.pairs(ctx, values)
	if err != nil {
		return nil, err
	}

	reasons, err := s.askReasons(ctx, pairs)
	if err != nil {
		s.logger.Warn().Err(err).Str("userID", userID.String()).Msg("AI reasons unavailable, using fallback text")
		reasons = nil
	}

	rows := make([]models.UserCourseRecommendation, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, models.UserCourseRecommendation{
			UserID:        userID,
			CourseID:      uuid.MustParse(p.CourseID),
			Value:         p.Value,
			ReasonMessage: reasonFor(reasons, p),
			CourseTitle:   p.CourseTitle,
		})
	}

	if err := s.recs.CreateBatch(ctx, rows); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			if res, lerr := s.existing(ctx, userID); lerr == nil && res != nil {
				return res, nil
			}
		}
		return nil, fmt.Errorf("error saving recommendations: %w", err)
	}

	s.logger.Info().Str("userID", userID.String()).Int("count", len(rows)).Bool("aiReasons", reasons != nil).Msg("Recommendations generated")
	return &dto.RecommendationsResponse{Recommendations: rows, Generated: true}, nil
}

// existing returns the stored set, or nil when the user has none yet
func (s *RecommendationService) existing(ctx context.Context, userID uuid.UUID) (*dto.RecommendationsResponse, error) {
	rows, err := s.recs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing recommendations: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &dto.RecommendationsResponse{Recommendations: rows, Generated: false}, nil
}

// Preview returns AI reasons for the values without saving anything. Provider
// and parse errors are returned to the caller.
func (s *RecommendationService) Preview(ctx context.Context, userID uuid.UUID, values []string) ([]models.UserCourseRecommendation, error) {
	values = validation.NormalizeValues(values)
	if len(values) == 0 {
		return nil, apperrors.NewValidationError("values", "at least one value is required")
	}

	pairs, err := s.pairs(ctx, values)
	if err != nil {
		return nil, err
	}
	reasons, err := s.askReasons(ctx, pairs)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserCourseRecommendation, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.UserCourseRecommendation{
			UserID:        userID,
			CourseID:      uuid.MustParse(p.CourseID),
			Value:         p.Value,
			ReasonMessage: reasonFor(reasons, p),
			CourseTitle:   p.CourseTitle,
		})
	}
	return out, nil
}

func (s *RecommendationService) resolveValues(ctx context.Context, userID uuid.UUID, values []string) ([]string, error) {
	values = validation.NormalizeValues(values)
	if len(values) == 0 {
		p, err := s.profiles.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		values = validation.NormalizeValues(p.Values)
	}
	if len(values) == 0 {
		return nil, apperrors.NewValidationError("values", "select at least one value")
	}
	if len(values) > validation.MaxValues {
		values = values[:validation.MaxValues]
	}
	return values, nil
}

func (s *RecommendationService) pairs(ctx context.Context, values []string) ([]ai.RecommendationPair, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, apperrors.NewResourceNotFoundError("no courses available")
	}
	sortCourses(courses)
	return SelectCourses(values, courses), nil
}

// askReasons makes a single completion call for every pair
func (s *RecommendationService) askReasons(ctx context.Context, pairs []ai.RecommendationPair) (map[string]string, error) {
	text, err := s.ai.Complete(ctx, ai.RecommendationPrompt(pairs))
	if err != nil {
		return nil, err
	}

	var answer []ai.RecommendationReason
	if err := ai.DecodeJSON(text, &answer); err != nil {
		return nil, err
	}

	reasons := make(map[string]string, len(answer))
	for _, r := range answer {
		if r.Reason != "" {
			reasons[reasonKey(r.Value, r.CourseID)] = r.Reason
		}
	}
	return reasons, nil
}

func reasonFor(reasons map[string]string, p ai.RecommendationPair) string {
	if r := reasons[reasonKey(p.Value, p.CourseID)]; r != "" {
		return r
	}
	return FallbackReason(p.Value, p.CourseTitle)
}
