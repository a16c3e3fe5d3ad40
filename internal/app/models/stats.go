package models

// AdminStats is the flat payload of the admin dashboard counters
type AdminStats struct {
	Users     int64 `json:"users"`
	Companies int64 `json:"companies"`
	Jobs      int64 `json:"jobs"`
	Success   bool  `json:"success"`
}

// ApplicationStatusCount is one bucket of the pipeline summary
type ApplicationStatusCount struct {
	Status ApplicationStatus `json:"status"`
	Count  int64             `json:"count"`
}
