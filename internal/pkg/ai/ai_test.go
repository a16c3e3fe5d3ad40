package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"surrounding space", "  \n```json\n{}\n```  \n", `{}`},
		{"single line fence", "```{}```", `{}`},
		{"fence after prose", "以下がJSONです。\n```json\n{\"a\":1}\n```\nご確認ください。", `{"a":1}`},
		{"unfenced prose", "結果は次の通りです: {\"a\":1} 以上です。", `{"a":1}`},
		{"unfenced array", "回答: [{\"a\":1}]", `[{"a":1}]`},
		{"no json", "Sorry.", `Sorry.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"name\":\"Iyo Foods\"}\n```", &out))
	assert.Equal(t, "Iyo Foods", out.Name)

	require.NoError(t, DecodeJSON("以下がJSONです。\n```json\n{\"name\":\"Uwajima Pearl\"}\n```", &out))
	assert.Equal(t, "Uwajima Pearl", out.Name)

	err := DecodeJSON("Sorry, I cannot help with that.", &out)
	assert.ErrorIs(t, err, apperrors.ErrAIParse)

	err = DecodeJSON("```json\n```", &out)
	assert.ErrorIs(t, err, apperrors.ErrAIParse)
}

func TestRequireFields(t *testing.T) {
	assert.NoError(t, RequireFields(map[string]string{"name": "a", "industry": "b"}))

	err := RequireFields(map[string]string{"name": " ", "industry": ""})
	require.ErrorIs(t, err, apperrors.ErrAIParse)
	assert.Contains(t, err.Error(), "industry, name")
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"googleapi: Error 429: Resource has been exhausted", apperrors.ErrAIRateLimited},
		{"rpc error: code = RESOURCE_EXHAUSTED", apperrors.ErrAIRateLimited},
		{"You exceeded your current quota", apperrors.ErrAIRateLimited},
		{"Rate limit reached for requests", apperrors.ErrAIRateLimited},
		{"connection reset by peer", apperrors.ErrAIUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.ErrorIs(t, ClassifyError(errors.New(tt.msg)), tt.want)
		})
	}
	assert.Nil(t, ClassifyError(nil))
	assert.ErrorIs(t, ClassifyError(apperrors.ErrAINotConfigured), apperrors.ErrAINotConfigured)
}

func TestNewClientWithoutKey(t *testing.T) {
	c, err := NewClient(context.Background(), Config{Model: "gemini-2.5-flash"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, apperrors.ErrAINotConfigured)
}

func TestPrompts(t *testing.T) {
	p := RecommendationPrompt([]RecommendationPair{{Value: "挑戦", CourseID: "c1", CourseTitle: "Intro"}})
	assert.Contains(t, p, `"courseId": "c1"`)
	assert.Contains(t, p, "挑戦")

	assert.Contains(t, JobDescriptionPrompt("quest", "みかん収穫", "", "週末のみ"), "短期クエスト")
	assert.Contains(t, JobDescriptionPrompt("job", "営業", "Iyo Foods", ""), "Iyo Foods")
	assert.Contains(t, OrganizationProfilePrompt("  本文  "), "本文")
}
