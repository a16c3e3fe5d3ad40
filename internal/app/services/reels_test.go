package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ehimebase/babybase/internal/app/models"
)

func mediaFor(orgID, jobID *uuid.UUID) models.MediaItem {
	return models.MediaItem{ID: uuid.New(), OrganizationID: orgID, JobID: jobID, MediaType: models.MediaEmbed}
}

func TestReelsForJob(t *testing.T) {
	org, otherOrg := uuid.New(), uuid.New()
	job := models.Job{ID: uuid.New(), OrganizationID: org}
	otherJob := uuid.New()

	media := []models.MediaItem{
		mediaFor(nil, &job.ID),         // tied to the job
		mediaFor(&org, &job.ID),        // tied to the job, org recorded too
		mediaFor(&org, nil),            // company-wide
		mediaFor(&org, nil),            // company-wide
		mediaFor(&org, &otherJob),      // another job of the same org
		mediaFor(&otherOrg, nil),       // another org
		mediaFor(&otherOrg, &otherJob), // another org's job
	}

	reels := ReelsForJob(&job, media)
	assert.Len(t, reels, 4)
	for _, r := range reels {
		if r.JobID != nil {
			assert.Equal(t, job.ID, *r.JobID)
		} else {
			assert.Equal(t, org, *r.OrganizationID)
		}
	}
}

func TestAttachReels(t *testing.T) {
	orgA, orgB := uuid.New(), uuid.New()
	jobs := []models.Job{
		{ID: uuid.New(), OrganizationID: orgA},
		{ID: uuid.New(), OrganizationID: orgB},
	}
	media := []models.MediaItem{
		mediaFor(&orgA, nil),
		mediaFor(&orgA, &jobs[0].ID),
		mediaFor(&orgB, &jobs[1].ID),
	}

	AttachReelsToJobs(jobs, media)
	assert.Len(t, jobs[0].Reels, 2)
	assert.Len(t, jobs[1].Reels, 1)

	orgs := []models.Organization{{ID: orgA}, {ID: orgB}, {ID: uuid.New()}}
	AttachReelsToOrganizations(orgs, media)
	assert.Len(t, orgs[0].Reels, 2)
	assert.Len(t, orgs[1].Reels, 1)
	assert.NotNil(t, orgs[2].Reels)
	assert.Empty(t, orgs[2].Reels)
}
