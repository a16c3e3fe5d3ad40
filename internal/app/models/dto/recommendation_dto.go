package dto

import "github.com/ehimebase/babybase/internal/app/models"

// GenerateRecommendationsRequest lists the values to base recommendations on.
// When empty the caller's profile values are used.
type GenerateRecommendationsRequest struct {
	Values []string `json:"values" binding:"values,dive,min=1,max=50" example:"challenge,teamwork"`
}

// RecommendationsResponse carries the user's rows and whether they were just generated
type RecommendationsResponse struct {
	Recommendations []models.UserCourseRecommendation `json:"recommendations"`
	Generated       bool                              `json:"generated"`
}
