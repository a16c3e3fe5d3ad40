package dto

import (
	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/app/models"
)

// JobRequest is the create/update body of a job or quest
type JobRequest struct {
	OrganizationID uuid.UUID      `json:"organizationId" binding:"required"`
	Title          string         `json:"title" binding:"required,min=1,max=200"`
	Description    string         `json:"description"`
	Type           models.JobType `json:"type" binding:"omitempty,oneof=job quest"`
	Category       string         `json:"category" binding:"max=100"`
	Location       string         `json:"location" binding:"max=200"`
	Salary         string         `json:"salary" binding:"max=100"`
	Reward         string         `json:"reward" binding:"max=100"`
	RJPPositive    []string       `json:"rjpPositive"`
	RJPNegative    []string       `json:"rjpNegative"`
	IsActive       *bool          `json:"isActive"`
}

// JobFilter holds list query parameters
type JobFilter struct {
	Type           string `form:"type" binding:"omitempty,oneof=job quest"`
	Category       string `form:"category"`
	OrganizationID string `form:"organizationId" binding:"omitempty,uuid"`
	Search         string `form:"search"`
}
