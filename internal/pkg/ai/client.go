// Package ai wraps the generative model used to draft organization profiles,
// job descriptions and course recommendation reasons.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

// Completer returns a single completion for a prompt
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config selects the provider model
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls a langchaingo model with one prompt per request
type Client struct {
	model   llms.Model
	timeout time.Duration
}

// NewClient builds a Gemini backed completer. Without an API key it returns a
// completer that fails every call with apperrors.ErrAINotConfigured, so the
// server still starts.
func NewClient(ctx context.Context, cfg Config) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return unconfigured{}, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return NewClientWithModel(model, cfg.Timeout), nil
}

// NewClientWithModel wraps an existing llms.Model
func NewClientWithModel(model llms.Model, timeout time.Duration) *Client {
	return &Client{model: model, timeout: timeout}
}

// Complete sends prompt and returns the raw text. Provider failures are classified.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.4))
	if err != nil {
		return "", ClassifyError(err)
	}
	return resp, nil
}

type unconfigured struct{}

func (unconfigured) Complete(context.Context, string) (string, error) {
	return "", apperrors.ErrAINotConfigured
}

var rateLimitMarkers = []string{"quota", "rate limit", "resource_exhausted", "429"}

// ClassifyError maps a provider error to ErrAIRateLimited or ErrAIUnavailable
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, apperrors.ErrAINotConfigured) || apperrors.Is(err, apperrors.ErrAIRateLimited) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", apperrors.ErrAIRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrAIUnavailable, err)
}
