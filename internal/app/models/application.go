package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is a stage of the hiring pipeline.
//
//	applied ──► screening ──► interview ──► offer ──► hired
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──► rejected
//
// hired and rejected are terminal.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusHired     ApplicationStatus = "hired"
	StatusRejected  ApplicationStatus = "rejected"
)

// AllApplicationStatuses lists the pipeline in order
var AllApplicationStatuses = []ApplicationStatus{
	StatusApplied, StatusScreening, StatusInterview, StatusOffer, StatusHired, StatusRejected,
}

var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:   {StatusScreening, StatusRejected},
	StatusScreening: {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	StatusOffer:     {StatusHired, StatusRejected},
}

// ParseApplicationStatus converts a raw string, rejecting unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	for _, known := range AllApplicationStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition reports whether moving from -> to is allowed.
func CanTransition(from, to ApplicationStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s.
func (s ApplicationStatus) NextStatuses() []ApplicationStatus {
	return append([]ApplicationStatus(nil), validTransitions[s]...)
}

// IsTerminal reports whether no further transition is possible.
func (s ApplicationStatus) IsTerminal() bool {
	_, ok := validTransitions[s]
	return !ok
}

// Application is a student's application to a job
type Application struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	JobID     uuid.UUID         `json:"jobId" db:"job_id"`
	UserID    uuid.UUID         `json:"userId" db:"user_id"`
	Status    ApplicationStatus `json:"status" db:"status" example:"applied"`
	Message   *string           `json:"message,omitempty" db:"message"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`

	JobTitle       string          `json:"jobTitle,omitempty"`
	OrganizationID uuid.UUID       `json:"organizationId"`
	Applicant      *ProfileSummary `json:"applicant,omitempty"`
}
