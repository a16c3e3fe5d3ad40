package dto

import (
	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/app/models"
)

// ToggleInteractionRequest flips a like on or off
type ToggleInteractionRequest struct {
	Type     models.InteractionType `json:"type" binding:"required,oneof=like_job like_company like_user" example:"like_job"`
	TargetID uuid.UUID              `json:"targetId" binding:"required"`
}

// ToggleInteractionResponse reports the state after the toggle
type ToggleInteractionResponse struct {
	Type     models.InteractionType `json:"type"`
	TargetID uuid.UUID              `json:"targetId"`
	Active   bool                   `json:"active"`
}

// ScoutRequest is sent by a company to a student
type ScoutRequest struct {
	OrganizationID uuid.UUID `json:"organizationId" binding:"required"`
	UserID         uuid.UUID `json:"userId" binding:"required"`
	Message        string    `json:"message" binding:"max=2000"`
}

// ScoutResponse reports whether a new scout was recorded
type ScoutResponse struct {
	Interaction *models.Interaction `json:"interaction"`
	Created     bool                `json:"created"`
}

// ReceivedScout is a scout as seen by the student
type ReceivedScout struct {
	Interaction  models.Interaction          `json:"interaction"`
	Organization *models.OrganizationSummary `json:"organization,omitempty"`
}
