package dto

import "github.com/ehimebase/babybase/internal/app/models"

// ApplicationSummary counts applications per pipeline stage
type ApplicationSummary struct {
	Buckets []models.ApplicationStatusCount `json:"buckets"`
	Total   int64                           `json:"total"`
}
