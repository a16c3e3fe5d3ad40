package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/ai"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/scraper"
)

// PageFetcher loads the readable text of a web page
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*scraper.Page, error)
}

// AIService drafts company profiles and postings with the completion API
type AIService struct {
	ai     ai.Completer
	pages  PageFetcher
	orgs   OrganizationStore
	recs   *RecommendationService
	logger zerolog.Logger
}

// NewAIService creates a new AIService
func NewAIService(completer ai.Completer, pages PageFetcher, orgs OrganizationStore, recs *RecommendationService, logger zerolog.Logger) *AIService {
	return &AIService{ai: completer, pages: pages, orgs: orgs, recs: recs, logger: logger}
}

// DraftOrganization turns free text and/or a company web page into profile fields
func (s *AIService) DraftOrganization(ctx context.Context, req *dto.OrganizationDraftRequest) (*dto.OrganizationDraft, error) {
	var parts []string
	if text := strings.TrimSpace(req.Text); text != "" {
		parts = append(parts, text)
	}
	if req.URL != "" {
		page, err := s.pages.Fetch(ctx, req.URL)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", req.URL).Msg("Failed to fetch company page")
			return nil, apperrors.NewValidationError("url", "could not read the page at url")
		}
		parts = append(parts, page.Text())
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: text or url is required", apperrors.ErrValidationFailed)
	}

	text, err := s.ai.Complete(ctx, ai.OrganizationProfilePrompt(strings.Join(parts, "\n\n")))
	if err != nil {
		return nil, err
	}

	var draft dto.OrganizationDraft
	if err := ai.DecodeJSON(text, &draft); err != nil {
		s.logger.Warn().Err(err).Msg("Unparseable organization draft")
		return nil, err
	}
	if err := ai.RequireFields(map[string]string{"name": draft.Name, "industry": draft.Industry}); err != nil {
		s.logger.Warn().Err(err).Msg("Incomplete organization draft")
		return nil, err
	}
	if draft.Website == "" && req.URL != "" {
		draft.Website = req.URL
	}
	return &draft, nil
}

// DraftJob writes a posting description with realistic job preview points
func (s *AIService) DraftJob(ctx context.Context, req *dto.JobDraftRequest) (*dto.JobDraft, error) {
	jobType := req.Type
	if jobType == "" {
		jobType = string(models.JobTypeJob)
	}

	orgName := ""
	if req.OrganizationID != nil && *req.OrganizationID != uuid.Nil {
		org, err := s.orgs.GetByID(ctx, *req.OrganizationID)
		if err != nil {
			return nil, err
		}
		orgName = org.Name
	}

	text, err := s.ai.Complete(ctx, ai.JobDescriptionPrompt(jobType, req.Title, orgName, req.Notes))
	if err != nil {
		return nil, err
	}

	var draft dto.JobDraft
	if err := ai.DecodeJSON(text, &draft); err != nil {
		s.logger.Warn().Err(err).Msg("Unparseable job draft")
		return nil, err
	}
	if err := ai.RequireFields(map[string]string{"description": draft.Description}); err != nil {
		return nil, err
	}
	if draft.Title == "" {
		draft.Title = req.Title
	}
	draft.RJPPositive = cleanLines(draft.RJPPositive)
	draft.RJPNegative = cleanLines(draft.RJPNegative)
	return &draft, nil
}

// PreviewRecommendations explains course picks for values without saving them
func (s *AIService) PreviewRecommendations(ctx context.Context, userID uuid.UUID, req *dto.RecommendationPreviewRequest) ([]models.UserCourseRecommendation, error) {
	return s.recs.Preview(ctx, userID, req.Values)
}
