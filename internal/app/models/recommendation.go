package models

import (
	"time"

	"github.com/google/uuid"
)

// UserCourseRecommendation ties one of a user's values to a course with an explanation
type UserCourseRecommendation struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	CourseID      uuid.UUID `json:"courseId" db:"course_id"`
	Value         string    `json:"value" db:"value" example:"challenge"`
	ReasonMessage string    `json:"reasonMessage" db:"reason_message"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	CourseTitle string `json:"courseTitle,omitempty"`
}
