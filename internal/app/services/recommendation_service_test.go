package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/ai"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/cache"
)

func sampleCourses(n int) []models.Course {
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	courses := make([]models.Course, n)
	for i := range courses {
		courses[i] = models.Course{ID: uuid.New(), Title: string(rune('A' + i)), SortOrder: i, CreatedAt: base}
	}
	return courses
}

func newRecommendationFixture(completer ai.Completer, courses []models.Course) (*RecommendationService, *fakeRecommendations, uuid.UUID) {
	user := uuid.New()
	profiles := &fakeProfiles{profiles: map[uuid.UUID]*models.Profile{
		user: {ID: user, Role: models.RoleStudent, Values: []string{"挑戦", "地域貢献"}},
	}}
	recs := &fakeRecommendations{}
	svc := NewRecommendationService(recs, &fakeCourses{courses: courses}, profiles, completer, cache.New(nil, 0), testLogger)
	return svc, recs, user
}

func TestSelectCoursesIndexFormula(t *testing.T) {
	courses := sampleCourses(3)
	pairs := SelectCourses([]string{"a", "b", "c"}, courses)
	require.Len(t, pairs, 6)

	want := []int{0, 1, 2, 0, 1, 2}
	for i, p := range pairs {
		assert.Equal(t, courses[want[i]].ID.String(), p.CourseID)
	}

	single := SelectCourses([]string{"a", "b"}, sampleCourses(1))
	assert.Len(t, single, 2)
	assert.Empty(t, SelectCourses([]string{"a"}, nil))
}

func TestGenerateFallsBackWhenAIFails(t *testing.T) {
	svc, recs, user := newRecommendationFixture(&fakeCompleter{err: apperrors.ErrAIUnavailable}, sampleCourses(4))

	res, err := svc.Generate(context.Background(), user, []string{"挑戦", "地域貢献"})
	require.NoError(t, err)
	assert.True(t, res.Generated)
	require.Len(t, res.Recommendations, 4)
	assert.Len(t, recs.rows, 4)
	for _, r := range res.Recommendations {
		assert.NotEmpty(t, r.ReasonMessage)
		assert.Equal(t, FallbackReason(r.Value, r.CourseTitle), r.ReasonMessage)
	}
}

func TestGenerateUsesAIReasonsAndFillsGaps(t *testing.T) {
	courses := sampleCourses(2)
	answer, err := json.Marshal([]ai.RecommendationReason{
		{Value: "挑戦", CourseID: courses[0].ID.String(), Reason: "新しいことに挑戦できます"},
		{Value: "挑戦", CourseID: courses[1].ID.String(), Reason: "視野が広がります"},
		{Value: "地域貢献", CourseID: courses[0].ID.String(), Reason: ""},
	})
	require.NoError(t, err)
	completer := &fakeCompleter{text: "```json\n" + string(answer) + "\n```"}
	svc, _, user := newRecommendationFixture(completer, courses)

	res, err := svc.Generate(context.Background(), user, []string{"挑戦", "地域貢献"})
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 4)
	assert.Len(t, completer.prompts, 1)

	assert.Equal(t, "新しいことに挑戦できます", res.Recommendations[0].ReasonMessage)
	assert.Equal(t, "視野が広がります", res.Recommendations[1].ReasonMessage)
	assert.Equal(t, FallbackReason("地域貢献", courses[0].Title), res.Recommendations[2].ReasonMessage)
	assert.Equal(t, FallbackReason("地域貢献", courses[1].Title), res.Recommendations[3].ReasonMessage)
}

func TestGenerateFallsBackOnUnparseableAnswer(t *testing.T) {
	svc, _, user := newRecommendationFixture(&fakeCompleter{text: "sorry, no JSON today"}, sampleCourses(3))

	res, err := svc.Generate(context.Background(), user, nil)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 4, "profile values are used when none are sent")
	for _, r := range res.Recommendations {
		assert.NotEmpty(t, r.ReasonMessage)
	}
}

func TestGenerateReturnsExistingRows(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("unused")}
	svc, recs, user := newRecommendationFixture(completer, sampleCourses(2))

	first, err := svc.Generate(context.Background(), user, []string{"挑戦"})
	require.NoError(t, err)
	require.True(t, first.Generated)

	second, err := svc.Generate(context.Background(), user, []string{"挑戦", "地域貢献"})
	require.NoError(t, err)
	assert.False(t, second.Generated)
	assert.Len(t, second.Recommendations, 2)
	assert.Equal(t, 1, recs.batches)
}

func TestGenerateConcurrentRequestsSaveOneSet(t *testing.T) {
	c, _ := newRedisCache(t)
	user := uuid.New()
	profiles := &fakeProfiles{profiles: map[uuid.UUID]*models.Profile{
		user: {ID: user, Role: models.RoleStudent, Values: []string{"挑戦", "地域貢献"}},
	}}
	recs := &fakeRecommendations{}
	svc := NewRecommendationService(recs, &fakeCourses{courses: sampleCourses(4)}, profiles,
		&fakeCompleter{err: apperrors.ErrAIUnavailable}, c, testLogger)

	// the first request stalls on its profile lookup while a second one completes
	var first *dto.RecommendationsResponse
	profiles.onGet = func() {
		var err error
		first, err = svc.Generate(context.Background(), user, []string{"挑戦", "地域貢献"})
		require.NoError(t, err)
	}

	second, err := svc.Generate(context.Background(), user, nil)
	require.NoError(t, err)

	require.NotNil(t, first)
	assert.True(t, first.Generated)
	assert.False(t, second.Generated)
	assert.Len(t, second.Recommendations, 4)
	assert.Equal(t, 1, recs.batches)
	assert.Len(t, recs.rows, 4)
}

func TestGenerateConflictsWhileLocked(t *testing.T) {
	c, mr := newRedisCache(t)
	svc, recs, user := newRecommendationFixture(&fakeCompleter{err: apperrors.ErrAIUnavailable}, sampleCourses(4))
	svc.cache = c

	require.NoError(t, mr.Set(cache.RecommendationLockKey+user.String(), "1"))

	_, err := svc.Generate(context.Background(), user, []string{"挑戦"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Zero(t, recs.batches)

	mr.Del(cache.RecommendationLockKey + user.String())
	res, err := svc.Generate(context.Background(), user, []string{"挑戦"})
	require.NoError(t, err)
	assert.True(t, res.Generated)
	assert.False(t, mr.Exists(cache.RecommendationLockKey+user.String()), "lock is released after generating")
}

func TestPreviewSurfacesAIErrors(t *testing.T) {
	svc, recs, user := newRecommendationFixture(&fakeCompleter{err: apperrors.ErrAIRateLimited}, sampleCourses(2))

	_, err := svc.Preview(context.Background(), user, []string{"挑戦"})
	assert.ErrorIs(t, err, apperrors.ErrAIRateLimited)
	assert.Zero(t, recs.batches)
}
