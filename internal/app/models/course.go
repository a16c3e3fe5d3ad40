package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is the top level of the learning hierarchy (a track)
type Course struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title" example:"Working in Ehime 101"`
	Description  *string   `json:"description,omitempty" db:"description"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	SortOrder    int       `json:"sortOrder" db:"sort_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	CurriculumCount int          `json:"curriculumCount"`
	LessonCount     int          `json:"lessonCount"`
	Curriculums     []Curriculum `json:"curriculums,omitempty"`
}

// Curriculum is a module inside a course
type Curriculum struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	Lessons     []Lesson  `json:"lessons"`
}

// Lesson is a single unit of content
type Lesson struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CurriculumID    uuid.UUID `json:"curriculumId" db:"curriculum_id"`
	Title           string    `json:"title" db:"title"`
	Content         *string   `json:"content,omitempty" db:"content"`
	VideoURL        *string   `json:"videoUrl,omitempty" db:"video_url"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	SortOrder       int       `json:"sortOrder" db:"sort_order"`
	Completed       bool      `json:"completed"`
}

// CourseProgress is the completion state of one lesson for one user
type CourseProgress struct {
	UserID      uuid.UUID  `json:"userId" db:"user_id"`
	LessonID    uuid.UUID  `json:"lessonId" db:"lesson_id"`
	CourseID    uuid.UUID  `json:"courseId" db:"course_id"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// LessonIDs returns the lesson ids of c in curriculum then lesson order.
func (c *Course) LessonIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, cur := range c.Curriculums {
		for _, l := range cur.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
