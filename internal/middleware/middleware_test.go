package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "babybase-test"})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	return res
}

func TestJWTAuthAndRoles(t *testing.T) {
	jwtSvc := newJWT()
	m := NewAuthMiddleware(jwtSvc)

	r := gin.New()
	r.GET("/company", m.JWTAuth(), m.RoleRequired(models.RoleCompanyAdmin, models.RoleSystemAdmin), func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, actor.UserID.String())
	})

	userID := uuid.New()
	companyToken, _, err := jwtSvc.GenerateAccessToken(userID, "c@example.jp", string(models.RoleCompanyAdmin))
	require.NoError(t, err)
	studentToken, _, err := jwtSvc.GenerateAccessToken(uuid.New(), "s@example.jp", string(models.RoleStudent))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"bearer header", "Bearer " + companyToken, "", http.StatusOK},
		{"raw token", companyToken, "", http.StatusOK},
		{"query token", "", companyToken, http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + studentToken, "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/company"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestOptionalJWT(t *testing.T) {
	m := NewAuthMiddleware(newJWT())
	r := gin.New()
	r.GET("/public", m.OptionalJWT(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": OptionalActor(c) == nil})
	})

	for _, header := range []string{"", "Bearer expired.or.bogus"} {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
	}
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.ErrResourceNotFound, http.StatusNotFound, "Resource not found"},
		{apperrors.NewResourceNotFoundError("course not found"), http.StatusNotFound, "course not found"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrPermissionDenied), http.StatusForbidden, "Permission denied"},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{apperrors.NewValidationError("title", "title is required"), http.StatusBadRequest, "title is required"},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, "Email already exists"},
		{apperrors.ErrAlreadyApplied, http.StatusConflict, "Already applied to this job"},
		{apperrors.NewConflictError("application status was changed by someone else"), http.StatusConflict, "application status was changed by someone else"},
		{apperrors.ErrInvalidTransition, http.StatusUnprocessableEntity, "Invalid status transition"},
		{fmt.Errorf("%w: quota exceeded", apperrors.ErrAIRateLimited), http.StatusTooManyRequests, MsgAIRateLimited},
		{apperrors.ErrAINotConfigured, http.StatusInternalServerError, MsgAINotConfigured},
		{fmt.Errorf("%w: missing industry, name", apperrors.ErrAIParse), http.StatusInternalServerError, MsgAIParse},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			res := decodeError(t, w)
			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Error.Message)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
