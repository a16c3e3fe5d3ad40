package dto

import "github.com/ehimebase/babybase/internal/app/models"

// ApplyRequest is the body of a job application
type ApplyRequest struct {
	Message string `json:"message" binding:"max=4000"`
}

// UpdateApplicationStatusRequest moves an application through the pipeline
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=applied screening interview offer hired rejected" example:"screening"`
}

// ApplicationFilter narrows an organization's applicant list
type ApplicationFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=applied screening interview offer hired rejected"`
}
