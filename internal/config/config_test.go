package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileThenEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  cors_origins: "http://a.example, http://b.example"
jwt:
  secret: from-file
ai:
  model: gemini-test
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("SCRAPER_MAX_CHARS", "1234")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "gemini-test", cfg.AI.Model)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 1234, cfg.Scraper.MaxChars)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins())
	// defaults survive a partial file
	assert.Equal(t, "babybase", cfg.Database.DBName)
	assert.Equal(t, "@every 10m", cfg.Scheduler.StatsWarmSpec)
}

func TestLoadConfig_MissingAIKeyIsNotFatal(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is required")
}

func TestLoadConfig_RejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_TTL", "soon")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ttl")
}

func TestPublicURL(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL())

	cfg.Server.PublicBaseURL = "https://api.babybase.jp/"
	assert.Equal(t, "https://api.babybase.jp", cfg.PublicURL())
}

func TestSetFieldFromEnv_StringSlice(t *testing.T) {
	var target struct {
		Tags []string `env:"TEST_TAGS"`
	}
	t.Setenv("TEST_TAGS", "a, b,,c")
	require.NoError(t, processStructFields(&target))
	assert.Equal(t, []string{"a", "b", "c"}, target.Tags)
}
