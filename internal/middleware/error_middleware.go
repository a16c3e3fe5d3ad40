package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

// AI error messages returned to clients
const (
	MsgAIParse          = "Failed to parse AI response"
	MsgAIRateLimited    = "AI rate limit exceeded"
	MsgAINotConfigured  = "AI API key is not configured"
	MsgAIProviderFailed = "AI provider request failed"
)

func abortWith(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func customDetails(err error) interface{} {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Details != nil {
		return ce.Details
	}
	return nil
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWith(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err, "Resource not found")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		abortWith(c, http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.MessageOf(err, "Permission denied")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		abortWith(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"))
	case errors.Is(err, apperrors.ErrInvalidPassword):
		abortWith(c, http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeInvalidPassword, "Password must be at least 8 characters and contain a letter and a digit").WithField("password"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Validation failed"))
		if d := customDetails(err); d != nil {
			detail = detail.WithDetails(d)
		}
		abortWith(c, http.StatusBadRequest, detail)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		abortWith(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"))
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		abortWith(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Already applied to this job"))
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrResourceAlreadyExists):
		abortWith(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeConflict, apperrors.MessageOf(err, "Resource was modified concurrently")))
	case errors.Is(err, apperrors.ErrInvalidTransition):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, apperrors.MessageOf(err, "Invalid status transition"))
		if d := customDetails(err); d != nil {
			detail = detail.WithDetails(d)
		}
		abortWith(c, http.StatusUnprocessableEntity, detail)
	case errors.Is(err, apperrors.ErrAIRateLimited):
		abortWith(c, http.StatusTooManyRequests, dto.NewErrorDetail(dto.ErrorCodeRateLimited, MsgAIRateLimited))
	case errors.Is(err, apperrors.ErrAINotConfigured):
		abortWith(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, MsgAINotConfigured))
	case errors.Is(err, apperrors.ErrAIParse):
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("AI response could not be parsed")
		abortWith(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, MsgAIParse))
	case errors.Is(err, apperrors.ErrAIUnavailable):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("AI provider error")
		abortWith(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, MsgAIProviderFailed))
	default:
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("Unhandled API error")
		abortWith(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// HandleBindError answers a failed ShouldBind* call with the field level validation errors
func HandleBindError(c *gin.Context, err error) {
	abortWith(c, http.StatusBadRequest, dto.HandleValidationError(err))
}
