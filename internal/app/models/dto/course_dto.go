package dto

import (
	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/app/models"
)

// CourseRequest creates a course
type CourseRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl" binding:"omitempty,url"`
	SortOrder    int    `json:"sortOrder"`
}

// CurriculumRequest creates a module inside a course
type CurriculumRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

// LessonRequest creates a lesson inside a module
type LessonRequest struct {
	Title           string `json:"title" binding:"required,max=200"`
	Content         string `json:"content"`
	VideoURL        string `json:"videoUrl" binding:"omitempty,url"`
	DurationMinutes int    `json:"durationMinutes" binding:"min=0"`
	SortOrder       int    `json:"sortOrder"`
}

// CourseProgressResponse is a course tree annotated with the caller's completion
type CourseProgressResponse struct {
	Course           *models.Course `json:"course"`
	CompletedLessons int            `json:"completedLessons"`
	TotalLessons     int            `json:"totalLessons"`
	Percent          int            `json:"percent"`
}

// DashboardCourse is one card of the learning dashboard
type DashboardCourse struct {
	CourseID         uuid.UUID      `json:"courseId"`
	Title            string         `json:"title"`
	ThumbnailURL     *string        `json:"thumbnailUrl,omitempty"`
	CompletedLessons int            `json:"completedLessons"`
	TotalLessons     int            `json:"totalLessons"`
	Percent          int            `json:"percent"`
	NextLesson       *models.Lesson `json:"nextLesson,omitempty"`
}

// LearningDashboard aggregates progress and recommendations for one user
type LearningDashboard struct {
	Courses         []DashboardCourse                 `json:"courses"`
	Recommendations []models.UserCourseRecommendation `json:"recommendations"`
}
