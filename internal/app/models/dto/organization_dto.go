package dto

import "github.com/ehimebase/babybase/internal/app/models"

// OrganizationRequest is the create/update body of a company profile
type OrganizationRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200" example:"Matsuyama Citrus Co."`
	Industry      string `json:"industry" binding:"required,max=100" example:"Agriculture"`
	Description   string `json:"description"`
	Location      string `json:"location" binding:"max=200"`
	Website       string `json:"website" binding:"omitempty,httpurl"`
	LogoURL       string `json:"logoUrl" binding:"omitempty,url"`
	CoverURL      string `json:"coverUrl" binding:"omitempty,url"`
	EmployeeCount *int   `json:"employeeCount" binding:"omitempty,min=0"`
	Appeal        string `json:"appeal"`
}

// OrganizationFilter holds list query parameters
type OrganizationFilter struct {
	Industry string `form:"industry"`
	Search   string `form:"search"`
	Premium  *bool  `form:"premium"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// OrganizationStatusRequest is the admin moderation body
type OrganizationStatusRequest struct {
	Status models.OrganizationStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

// OrganizationPremiumRequest toggles the premium flag
type OrganizationPremiumRequest struct {
	IsPremium *bool `json:"isPremium" binding:"required"`
}
