package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository        *ProfileRepository
	OrganizationRepository   *OrganizationRepository
	JobRepository            *JobRepository
	InteractionRepository    *InteractionRepository
	ApplicationRepository    *ApplicationRepository
	MediaRepository          *MediaRepository
	CourseRepository         *CourseRepository
	ProgressRepository       *ProgressRepository
	RecommendationRepository *RecommendationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:        NewProfileRepository(db),
		OrganizationRepository:   NewOrganizationRepository(db),
		JobRepository:            NewJobRepository(db),
		InteractionRepository:    NewInteractionRepository(db),
		ApplicationRepository:    NewApplicationRepository(db),
		MediaRepository:          NewMediaRepository(db),
		CourseRepository:         NewCourseRepository(db),
		ProgressRepository:       NewProgressRepository(db),
		RecommendationRepository: NewRecommendationRepository(db),
	}
}
