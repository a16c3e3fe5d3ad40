package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/repositories"
	"github.com/ehimebase/babybase/internal/pkg/cache"
)

// Fakes embed the store interface so unused methods panic if a test reaches them.

var testLogger = zerolog.Nop()

// newRedisCache returns a cache backed by an in-process Redis server
func newRedisCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute), mr
}

type fakeInteractions struct {
	InteractionStore
	mu   sync.Mutex
	rows map[models.InteractionKey]models.Interaction
}

func newFakeInteractions() *fakeInteractions {
	return &fakeInteractions{rows: make(map[models.InteractionKey]models.Interaction)}
}

func (f *fakeInteractions) Toggle(_ context.Context, key models.InteractionKey) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[key]; ok {
		delete(f.rows, key)
		return false, nil
	}
	f.rows[key] = models.Interaction{ID: uuid.New(), Type: key.Type, UserID: key.UserID, TargetID: key.TargetID, CreatedAt: time.Now()}
	return true, nil
}

func (f *fakeInteractions) Create(_ context.Context, i *models.Interaction) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.rows[i.Key()]; ok {
		*i = existing
		return false, nil
	}
	i.ID = uuid.New()
	i.CreatedAt = time.Now()
	f.rows[i.Key()] = *i
	return true, nil
}

func (f *fakeInteractions) exists(key models.InteractionKey) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[key]
	return ok
}

func (f *fakeInteractions) ListByTarget(_ context.Context, targetID uuid.UUID, t models.InteractionType) ([]models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Interaction{}
	for _, i := range f.rows {
		if i.TargetID == targetID && i.Type == t {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeProfiles struct {
	ProfileStore
	profiles map[uuid.UUID]*models.Profile
	countErr error
	// onGet runs once, on the next GetByID
	onGet func()
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if hook := f.onGet; hook != nil {
		f.onGet = nil
		hook()
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Count(context.Context) (int64, error) {
	return int64(len(f.profiles)), f.countErr
}

type fakeOrganizations struct {
	OrganizationStore
	n       int64
	members map[[2]uuid.UUID]bool
	orgs    map[uuid.UUID]*models.Organization
}

func (f *fakeOrganizations) Count(context.Context) (int64, error) { return f.n, nil }

func (f *fakeOrganizations) IsMember(_ context.Context, orgID, userID uuid.UUID) (bool, error) {
	return f.members[[2]uuid.UUID{orgID, userID}], nil
}

func (f *fakeOrganizations) GetByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrganizations) GetSummaries(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.OrganizationSummary, error) {
	out := make(map[uuid.UUID]models.OrganizationSummary)
	for _, id := range ids {
		if o, ok := f.orgs[id]; ok {
			out[id] = models.OrganizationSummary{ID: o.ID, Name: o.Name, Industry: o.Industry}
		}
	}
	return out, nil
}

type fakeJobs struct {
	JobStore
	n int64
}

func (f *fakeJobs) Count(context.Context) (int64, error) { return f.n, nil }

type fakeApplications struct {
	ApplicationStore
	app      *models.Application
	casFails bool
	updates  int
}

func (f *fakeApplications) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	if f.app == nil || f.app.ID != id {
		return nil, repositories.ErrNotFound
	}
	cp := *f.app
	return &cp, nil
}

func (f *fakeApplications) UpdateStatusIfCurrent(_ context.Context, id uuid.UUID, current, next models.ApplicationStatus) (bool, error) {
	if f.casFails || f.app.Status != current {
		return false, nil
	}
	f.app.Status = next
	f.updates++
	return true, nil
}

type fakeCourses struct {
	CourseStore
	courses []models.Course
	trees   map[uuid.UUID]*models.Course
}

func (f *fakeCourses) ListCourses(context.Context) ([]models.Course, error) {
	return append([]models.Course(nil), f.courses...), nil
}

func (f *fakeCourses) GetCourseTree(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.trees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	cp.Curriculums = make([]models.Curriculum, len(c.Curriculums))
	for i, cur := range c.Curriculums {
		cur.Lessons = append([]models.Lesson(nil), cur.Lessons...)
		cp.Curriculums[i] = cur
	}
	return &cp, nil
}

type fakeProgress struct {
	ProgressStore
	done map[uuid.UUID][]uuid.UUID
}

func (f *fakeProgress) CompletedLessons(_ context.Context, _ uuid.UUID, courseID *uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	if courseID == nil {
		return f.done, nil
	}
	return map[uuid.UUID][]uuid.UUID{*courseID: f.done[*courseID]}, nil
}

type fakeRecommendations struct {
	RecommendationStore
	rows    []models.UserCourseRecommendation
	batches int
}

func (f *fakeRecommendations) ListByUser(_ context.Context, userID uuid.UUID) ([]models.UserCourseRecommendation, error) {
	out := []models.UserCourseRecommendation{}
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecommendations) CreateBatch(_ context.Context, recs []models.UserCourseRecommendation) error {
	f.batches++
	for i := range recs {
		recs[i].ID = uuid.New()
		recs[i].CreatedAt = time.Now()
	}
	f.rows = append(f.rows, recs...)
	return nil
}

type fakeCompleter struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type recordedNotification struct {
	userID  uuid.UUID
	kind    string
	payload any
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(userID uuid.UUID, kind string, payload any) {
	f.sent = append(f.sent, recordedNotification{userID: userID, kind: kind, payload: payload})
}
