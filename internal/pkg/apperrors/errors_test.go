package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("service: %w", NewResourceNotFoundError("job not found"))

	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "service: job not found", err.Error())
	assert.Equal(t, "job not found", MessageOf(err, "fallback"))
}

func TestMessageOfFallsBackForPlainErrors(t *testing.T) {
	err := fmt.Errorf("%w: name is required", ErrValidationFailed)
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestIsMatchesAnyInList(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrAIRateLimited)
	assert.True(t, Is(err, ErrAIParse, ErrAIUnavailable, ErrAIRateLimited))
	assert.False(t, Is(err, ErrAIParse, ErrAIUnavailable))
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("status", "status must be one of applied, screening")
	var ce *CustomError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "status", ce.Details["field"])
	assert.True(t, errors.Is(err, ErrValidationFailed))
}
