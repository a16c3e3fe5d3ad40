package services

import (
	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/app/models"
)

// ReelsForJob selects the reels shown with a job: items tied to the job itself
// plus company-wide items (no job) of the job's organization.
func ReelsForJob(job *models.Job, media []models.MediaItem) []models.MediaItem {
	reels := []models.MediaItem{}
	for _, m := range media {
		switch {
		case m.JobID != nil:
			if *m.JobID == job.ID {
				reels = append(reels, m)
			}
		case m.OrganizationID != nil && *m.OrganizationID == job.OrganizationID:
			reels = append(reels, m)
		}
	}
	return reels
}

// ReelsForOrganization selects every item whose organization is org
func ReelsForOrganization(orgID uuid.UUID, media []models.MediaItem) []models.MediaItem {
	reels := []models.MediaItem{}
	for _, m := range media {
		if m.OrganizationID != nil && *m.OrganizationID == orgID {
			reels = append(reels, m)
		}
	}
	return reels
}

// AttachReelsToJobs fills Reels on each job from a flat media list
func AttachReelsToJobs(jobs []models.Job, media []models.MediaItem) {
	for i := range jobs {
		jobs[i].Reels = ReelsForJob(&jobs[i], media)
	}
}

// AttachReelsToOrganizations fills Reels on each organization from a flat media list
func AttachReelsToOrganizations(orgs []models.Organization, media []models.MediaItem) {
	for i := range orgs {
		orgs[i].Reels = ReelsForOrganization(orgs[i].ID, media)
	}
}

func jobOwnerIDs(jobs []models.Job) (orgIDs, jobIDs []uuid.UUID) {
	seen := make(map[uuid.UUID]bool)
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
		if !seen[j.OrganizationID] {
			seen[j.OrganizationID] = true
			orgIDs = append(orgIDs, j.OrganizationID)
		}
	}
	return orgIDs, jobIDs
}
