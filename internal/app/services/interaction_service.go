package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

// InteractionService manages likes
type InteractionService struct {
	interactions InteractionStore
	logger       zerolog.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(interactions InteractionStore, logger zerolog.Logger) *InteractionService {
	return &InteractionService{interactions: interactions, logger: logger}
}

// Toggle flips a like of userID on the target and reports whether it is now active
func (s *InteractionService) Toggle(ctx context.Context, userID uuid.UUID, req *dto.ToggleInteractionRequest) (*dto.ToggleInteractionResponse, error) {
	if !req.Type.IsToggleable() {
		return nil, apperrors.NewValidationError("type", "only likes can be toggled")
	}
	if req.TargetID == uuid.Nil {
		return nil, apperrors.NewValidationError("targetId", "targetId is required")
	}

	key := models.InteractionKey{Type: req.Type, UserID: userID, TargetID: req.TargetID}
	active, err := s.interactions.Toggle(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error toggling interaction: %w", err)
	}

	s.logger.Debug().Str("userID", userID.String()).Str("type", string(req.Type)).Bool("active", active).Msg("Interaction toggled")
	return &dto.ToggleInteractionResponse{Type: req.Type, TargetID: req.TargetID, Active: active}, nil
}

// List returns the caller's interactions, optionally of one type
func (s *InteractionService) List(ctx context.Context, userID uuid.UUID, t models.InteractionType) ([]models.Interaction, error) {
	if t != "" && !t.IsValid() {
		return nil, apperrors.NewValidationError("type", "unknown interaction type")
	}
	items, err := s.interactions.ListByUser(ctx, userID, t)
	if err != nil {
		return nil, fmt.Errorf("error listing interactions: %w", err)
	}
	return items, nil
}
