package models

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationStatus is the moderation state of a company profile
type OrganizationStatus string

const (
	OrganizationPending  OrganizationStatus = "pending"
	OrganizationApproved OrganizationStatus = "approved"
	OrganizationRejected OrganizationStatus = "rejected"
)

// IsValid reports whether s is a known status
func (s OrganizationStatus) IsValid() bool {
	switch s {
	case OrganizationPending, OrganizationApproved, OrganizationRejected:
		return true
	}
	return false
}

// Organization is a company profile
type Organization struct {
	ID            uuid.UUID          `json:"id" db:"id"`
	Name          string             `json:"name" db:"name" example:"Matsuyama Citrus Co."`
	Industry      string             `json:"industry" db:"industry" example:"Agriculture"`
	Description   *string            `json:"description,omitempty" db:"description"`
	Location      *string            `json:"location,omitempty" db:"location" example:"Matsuyama, Ehime"`
	Website       *string            `json:"website,omitempty" db:"website"`
	LogoURL       *string            `json:"logoUrl,omitempty" db:"logo_url"`
	CoverURL      *string            `json:"coverUrl,omitempty" db:"cover_url"`
	EmployeeCount *int               `json:"employeeCount,omitempty" db:"employee_count"`
	Appeal        *string            `json:"appeal,omitempty" db:"appeal"`
	Status        OrganizationStatus `json:"status" db:"status" example:"approved"`
	IsPremium     bool               `json:"isPremium" db:"is_premium"`
	CreatedBy     uuid.UUID          `json:"createdBy" db:"created_by"`
	CreatedAt     time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" db:"updated_at"`

	Reels      []MediaItem `json:"reels"`
	ActiveJobs int         `json:"activeJobs"`
}

// OrganizationSummary is embedded in job listings
type OrganizationSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	LogoURL   *string   `json:"logoUrl,omitempty"`
	IsPremium bool      `json:"isPremium"`
}

// MemberRole is a user's role within an organization
type MemberRole string

const (
	MemberOwner  MemberRole = "owner"
	MemberEditor MemberRole = "editor"
)

// OrganizationMember links a company-admin profile to an organization
type OrganizationMember struct {
	OrganizationID uuid.UUID  `json:"organizationId" db:"organization_id"`
	UserID         uuid.UUID  `json:"userId" db:"user_id"`
	Role           MemberRole `json:"role" db:"role"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}
