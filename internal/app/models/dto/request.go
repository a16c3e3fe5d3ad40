package dto

// UpdateProfileRequest replaces the editable profile fields
type UpdateProfileRequest struct {
	FullName   string   `json:"fullName" binding:"required,min=2,max=100"`
	Bio        string   `json:"bio" binding:"max=2000"`
	University string   `json:"university" binding:"max=200"`
	AvatarURL  string   `json:"avatarUrl" binding:"omitempty,url"`
	Values     []string `json:"values" binding:"values,dive,min=1,max=50"`
}

// ProfileFilter narrows the admin user list
type ProfileFilter struct {
	Role   string `form:"role" binding:"omitempty,oneof=student company-admin system-admin"`
	Search string `form:"search"`
}
