package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is an end-user identity row in the 'profiles' table
type Profile struct {
	ID           uuid.UUID `json:"id" db:"id" example:"3f1c7a52-6d0e-4c0a-9a1e-2b7f0c8d9e11"`
	Email        string    `json:"email" db:"email" example:"hanako@example.jp"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name" example:"Hanako Yamada"`
	Role         Role      `json:"role" db:"role" example:"student"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	University   *string   `json:"university,omitempty" db:"university" example:"Ehime University"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	Values       []string  `json:"values" db:"values" example:"challenge,teamwork"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileSummary is the short applicant/scout view of a profile
type ProfileSummary struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	University *string   `json:"university,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
}
