package models

import (
	"time"

	"github.com/google/uuid"
)

// JobType distinguishes regular postings from quests
type JobType string

const (
	JobTypeJob   JobType = "job"
	JobTypeQuest JobType = "quest"
)

// IsValid reports whether t is a known job type
func (t JobType) IsValid() bool {
	return t == JobTypeJob || t == JobTypeQuest
}

// Job is a posting owned by an organization. Quests carry a reward, jobs a salary.
type Job struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organizationId" db:"organization_id"`
	Title          string    `json:"title" db:"title" example:"Orchard harvest helper"`
	Description    string    `json:"description" db:"description"`
	Type           JobType   `json:"type" db:"type" example:"quest"`
	Category       string    `json:"category" db:"category" example:"agriculture"`
	Location       *string   `json:"location,omitempty" db:"location"`
	Salary         *string   `json:"salary,omitempty" db:"salary"`
	Reward         *string   `json:"reward,omitempty" db:"reward"`
	RJPPositive    []string  `json:"rjpPositive" db:"rjp_positive"`
	RJPNegative    []string  `json:"rjpNegative" db:"rjp_negative"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	Organization *OrganizationSummary `json:"organization,omitempty"`
	Reels        []MediaItem          `json:"reels"`
}
