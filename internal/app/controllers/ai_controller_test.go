package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			panic(err)
		}
	}
}

type stubCompleter struct {
	text string
	err  error
}

func (s stubCompleter) Complete(context.Context, string) (string, error) {
	return s.text, s.err
}

func newAIRouter(completer stubCompleter) *gin.Engine {
	svc := services.NewAIService(completer, nil, nil, nil, zerolog.Nop())
	ctrl := NewAIController(svc, zerolog.Nop())

	r := gin.New()
	r.POST("/ai/organization-profile", ctrl.OrganizationProfile)
	r.POST("/ai/job-description", ctrl.JobDescription)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.False(t, res.Success)
	return res.Error.Message
}

func TestOrganizationProfileWithoutRequiredFields(t *testing.T) {
	cases := map[string]string{
		"missing industry": `{"name":"Ehime Zosen"}`,
		"missing name":     `{"industry":"造船"}`,
		"not json":         `I could not find a company here.`,
	}
	for name, answer := range cases {
		t.Run(name, func(t *testing.T) {
			r := newAIRouter(stubCompleter{text: answer})
			w := post(r, "/ai/organization-profile", `{"text":"今治の造船会社です"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "Failed to parse AI response", errorMessage(t, w))
		})
	}
}

func TestOrganizationProfileDraft(t *testing.T) {
	r := newAIRouter(stubCompleter{text: "```json\n{\"name\":\"Ehime Zosen\",\"industry\":\"造船\",\"location\":\"今治市\"}\n```"})
	w := post(r, "/ai/organization-profile", `{"text":"今治の造船会社です"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success bool                  `json:"success"`
		Data    dto.OrganizationDraft `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Ehime Zosen", res.Data.Name)
	assert.Equal(t, "造船", res.Data.Industry)
	assert.Equal(t, "今治市", res.Data.Location)
}

func TestOrganizationProfileEmployeeCount(t *testing.T) {
	one20 := 120
	cases := []struct {
		name   string
		answer string
		want   *int
	}{
		{"number", `{"name":"Iyo Foods","industry":"食品","employeeCount":120}`, &one20},
		{"null", `{"name":"Iyo Foods","industry":"食品","employeeCount":null}`, nil},
		{"empty string", `{"name":"Iyo Foods","industry":"食品","employeeCount":""}`, nil},
		{"approximate text", `{"name":"Iyo Foods","industry":"食品","employeeCount":"約120名"}`, &one20},
		{"unknown text", `{"name":"Iyo Foods","industry":"食品","employeeCount":"不明"}`, nil},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			r := newAIRouter(stubCompleter{text: tt.answer})
			w := post(r, "/ai/organization-profile", `{"text":"松山の食品会社です"}`)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var res struct {
				Data dto.OrganizationDraft `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, "Iyo Foods", res.Data.Name)
			assert.Equal(t, tt.want, res.Data.EmployeeCount)
		})
	}
}

func TestOrganizationProfileRequiresInput(t *testing.T) {
	r := newAIRouter(stubCompleter{text: `{"name":"x","industry":"y"}`})
	w := post(r, "/ai/organization-profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/ai/organization-profile", `{"url":"ftp://example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIProviderErrors(t *testing.T) {
	r := newAIRouter(stubCompleter{err: apperrors.ErrAIRateLimited})
	w := post(r, "/ai/job-description", `{"title":"溶接スタッフ"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "AI rate limit exceeded", errorMessage(t, w))

	r = newAIRouter(stubCompleter{err: apperrors.ErrAINotConfigured})
	w = post(r, "/ai/job-description", `{"title":"溶接スタッフ"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "AI API key is not configured", errorMessage(t, w))
}

func TestJobDescriptionWithoutDescription(t *testing.T) {
	r := newAIRouter(stubCompleter{text: `{"title":"溶接スタッフ","category":"製造"}`})
	w := post(r, "/ai/job-description", `{"title":"溶接スタッフ"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to parse AI response", errorMessage(t, w))
}

func TestUUIDParamRejectsGarbage(t *testing.T) {
	r := gin.New()
	r.GET("/jobs/:id", func(ctx *gin.Context) {
		if _, ok := uuidParam(ctx, "id"); ok {
			ctx.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/8f1b6a3e-2c4d-4e5f-9a0b-1c2d3e4f5a6b", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
