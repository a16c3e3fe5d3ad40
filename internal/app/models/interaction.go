package models

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType is the kind of user-to-target edge
type InteractionType string

const (
	InteractionLikeJob     InteractionType = "like_job"
	InteractionLikeCompany InteractionType = "like_company"
	InteractionLikeUser    InteractionType = "like_user"
	InteractionApply       InteractionType = "apply"
	InteractionScout       InteractionType = "scout"
)

// IsValid reports whether t is a known interaction type
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionLikeJob, InteractionLikeCompany, InteractionLikeUser, InteractionApply, InteractionScout:
		return true
	}
	return false
}

// IsToggleable reports whether t is a like that users switch on and off
func (t InteractionType) IsToggleable() bool {
	switch t {
	case InteractionLikeJob, InteractionLikeCompany, InteractionLikeUser:
		return true
	}
	return false
}

// Interaction is unique per (type, user, target)
type Interaction struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Type      InteractionType `json:"type" db:"type"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	TargetID  uuid.UUID       `json:"targetId" db:"target_id"`
	Message   *string         `json:"message,omitempty" db:"message"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`

	// OrganizationID is set on scouts
	OrganizationID *uuid.UUID `json:"organizationId,omitempty" db:"organization_id"`
}

// InteractionKey is the deduplication key of an interaction
type InteractionKey struct {
	Type     InteractionType
	UserID   uuid.UUID
	TargetID uuid.UUID
}

// Key returns the deduplication key of i
func (i Interaction) Key() InteractionKey {
	return InteractionKey{Type: i.Type, UserID: i.UserID, TargetID: i.TargetID}
}
