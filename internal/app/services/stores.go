package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/repositories"
)

// The interfaces below are the persistence surface the services need.
// The concrete repositories satisfy them; tests use in-memory fakes.

// ProfileStore persists profiles
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error
	List(ctx context.Context, role models.Role, search string, offset uint64, limit int) ([]models.Profile, int64, error)
	Count(ctx context.Context) (int64, error)
	CountStudentsWithoutRecommendations(ctx context.Context) (int64, error)
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ProfileSummary, error)
}

// OrganizationStore persists organizations and memberships
type OrganizationStore interface {
	CreateWithOwner(ctx context.Context, o *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	List(ctx context.Context, f repositories.OrganizationListFilter, offset uint64, limit int) ([]models.Organization, int64, error)
	Update(ctx context.Context, o *models.Organization) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrganizationStatus) error
	UpdatePremium(ctx context.Context, id uuid.UUID, premium bool) error
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.OrganizationSummary, error)
}

// MembershipChecker answers organization membership questions
type MembershipChecker interface {
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
}

// JobStore persists jobs and quests
type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, f repositories.JobListFilter, offset uint64, limit int) ([]models.Job, int64, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// InteractionStore persists interactions
type InteractionStore interface {
	Toggle(ctx context.Context, key models.InteractionKey) (bool, error)
	Create(ctx context.Context, i *models.Interaction) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, t models.InteractionType) ([]models.Interaction, error)
	ListByTarget(ctx context.Context, targetID uuid.UUID, t models.InteractionType) ([]models.Interaction, error)
}

// ApplicationStore persists applications
type ApplicationStore interface {
	CreateWithInteraction(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error)
	UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, current, next models.ApplicationStatus) (bool, error)
	CountByStatus(ctx context.Context) ([]models.ApplicationStatusCount, error)
}

// MediaStore persists media library rows
type MediaStore interface {
	Create(ctx context.Context, m *models.MediaItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.MediaItem, error)
	ListForOwners(ctx context.Context, orgIDs, jobIDs []uuid.UUID) ([]models.MediaItem, error)
}

// CourseStore persists the learning hierarchy
type CourseStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetCourseTree(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CreateCourse(ctx context.Context, c *models.Course) error
	CreateCurriculum(ctx context.Context, c *models.Curriculum) error
	CreateLesson(ctx context.Context, l *models.Lesson) error
	CurriculumExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetLessonCourseID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error)
}

// ProgressStore persists lesson completion
type ProgressStore interface {
	MarkComplete(ctx context.Context, userID, lessonID, courseID uuid.UUID) error
	Reset(ctx context.Context, userID, lessonID uuid.UUID) error
	CompletedLessons(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

// RecommendationStore persists course recommendations
type RecommendationStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserCourseRecommendation, error)
	CreateBatch(ctx context.Context, recs []models.UserCourseRecommendation) error
}

// Notifier pushes realtime notifications to a user
type Notifier interface {
	Notify(userID uuid.UUID, kind string, payload any)
}

type noopNotifier struct{}

func (noopNotifier) Notify(uuid.UUID, string, any) {}

// Compile-time checks
var (
	_ ProfileStore        = (*repositories.ProfileRepository)(nil)
	_ OrganizationStore   = (*repositories.OrganizationRepository)(nil)
	_ JobStore            = (*repositories.JobRepository)(nil)
	_ InteractionStore    = (*repositories.InteractionRepository)(nil)
	_ ApplicationStore    = (*repositories.ApplicationRepository)(nil)
	_ MediaStore          = (*repositories.MediaRepository)(nil)
	_ CourseStore         = (*repositories.CourseRepository)(nil)
	_ ProgressStore       = (*repositories.ProgressRepository)(nil)
	_ RecommendationStore = (*repositories.RecommendationRepository)(nil)
)
