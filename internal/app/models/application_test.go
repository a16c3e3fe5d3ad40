package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, s := range []string{"applied", "screening", "interview", "offer", "hired", "rejected"} {
		got, err := models.ParseApplicationStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}

	_, err := models.ParseApplicationStatus("APPLIED")
	assert.Error(t, err)
	_, err = models.ParseApplicationStatus("")
	assert.Error(t, err)
}

func TestCanTransition_ForwardSingleSteps(t *testing.T) {
	pipeline := []models.ApplicationStatus{
		models.StatusApplied, models.StatusScreening, models.StatusInterview, models.StatusOffer, models.StatusHired,
	}
	for i := 0; i+1 < len(pipeline); i++ {
		assert.True(t, models.CanTransition(pipeline[i], pipeline[i+1]), "%s -> %s", pipeline[i], pipeline[i+1])
	}
}

func TestCanTransition_RejectFromAnyOpenStage(t *testing.T) {
	for _, from := range []models.ApplicationStatus{
		models.StatusApplied, models.StatusScreening, models.StatusInterview, models.StatusOffer,
	} {
		assert.True(t, models.CanTransition(from, models.StatusRejected), "%s -> rejected", from)
	}
}

// Exhaustive check over every pair: only forward single steps and rejections are allowed.
func TestCanTransition_NoSkipsOrBackwardMoves(t *testing.T) {
	order := map[models.ApplicationStatus]int{
		models.StatusApplied: 0, models.StatusScreening: 1, models.StatusInterview: 2, models.StatusOffer: 3, models.StatusHired: 4,
	}
	for _, from := range models.AllApplicationStatuses {
		for _, to := range models.AllApplicationStatuses {
			want := false
			if !from.IsTerminal() {
				if to == models.StatusRejected {
					want = true
				} else if fi, ok := order[from]; ok {
					want = order[to] == fi+1 && to != models.StatusApplied
				}
			}
			assert.Equal(t, want, models.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, models.StatusHired.IsTerminal())
	assert.True(t, models.StatusRejected.IsTerminal())
	assert.False(t, models.StatusOffer.IsTerminal())
	assert.Empty(t, models.StatusHired.NextStatuses())
	assert.Equal(t, []models.ApplicationStatus{models.StatusInterview, models.StatusRejected}, models.StatusScreening.NextStatuses())
}
