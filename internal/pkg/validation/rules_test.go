package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValues(t *testing.T) {
	got := NormalizeValues([]string{" 挑戦 ", "", "teamwork", "挑戦", "  "})
	assert.Equal(t, []string{"挑戦", "teamwork"}, got)
	assert.Empty(t, NormalizeValues(nil))
}

func TestValidValues(t *testing.T) {
	assert.True(t, ValidValues([]string{"a", "b"}))
	assert.False(t, ValidValues(make([]string, MaxValues+1)))
	assert.False(t, ValidValues([]string{strings.Repeat("あ", MaxValueLength+1)}))
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://example.jp/about"))
	assert.True(t, IsHTTPURL("http://localhost:8080"))
	assert.False(t, IsHTTPURL("ftp://example.jp"))
	assert.False(t, IsHTTPURL("example.jp"))
	assert.False(t, IsHTTPURL(""))
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type req struct {
		Site   string   `validate:"omitempty,httpurl"`
		Values []string `validate:"values"`
	}
	assert.NoError(t, v.Struct(req{Site: "https://example.jp", Values: []string{"挑戦"}}))
	assert.Error(t, v.Struct(req{Site: "javascript:alert(1)"}))
	assert.Error(t, v.Struct(req{Values: make([]string, MaxValues+1)}))
}
