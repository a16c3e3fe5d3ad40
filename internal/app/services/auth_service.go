package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/auth"
	"github.com/ehimebase/babybase/internal/pkg/validation"
)

// AuthService handles registration and login
type AuthService struct {
	profiles ProfileStore
	jwt      *auth.JWTService
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(profiles ProfileStore, jwt *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{profiles: profiles, jwt: jwt, logger: logger}
}

// validatePassword checks length and requires at least one letter and one digit
func validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", apperrors.ErrInvalidPassword)
	}
	return nil
}

// Register creates a profile and signs the caller in. System admins cannot self-register.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.RoleStudent && req.Role != models.RoleCompanyAdmin {
		return nil, fmt.Errorf("%w: role must be student or company-admin", apperrors.ErrValidationFailed)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		Values:       []string{},
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	s.logger.Info().Str("profileID", profile.ID.String()).Str("role", string(profile.Role)).Msg("Profile registered")
	return s.authResponse(profile)
}

// Login verifies credentials and returns a fresh access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	if !auth.CheckPassword(profile.PasswordHash, req.Password) {
		s.logger.Debug().Str("email", profile.Email).Msg("Login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.authResponse(profile)
}

func (s *AuthService) authResponse(p *models.Profile) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwt.GenerateAccessToken(p.ID, p.Email, string(p.Role))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate access token")
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &dto.AuthResponse{
		Token:   dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		Profile: p,
	}, nil
}
