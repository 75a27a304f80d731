package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubspot-mcp/hubspot-mcp/internal/hubspot"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envMappings {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUBSPOT_ACCESS_TOKEN", "pat-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "pat-123", cfg.HubSpot.AccessToken)
	assert.Equal(t, hubspot.DefaultBaseURL, cfg.HubSpot.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.HubSpot.Timeout)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.Email.ResendAPIKey)
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUBSPOT_API_KEY", "key-1")
	t.Setenv("HUBSPOT_ACCESS_TOKEN", "pat-1")
	t.Setenv("HUBSPOT_BASE_URL", "http://localhost:9999")
	t.Setenv("HUBSPOT_TIMEOUT", "30s")
	t.Setenv("PORT", "8443")
	t.Setenv("MCP_TOKEN", "secret")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("EMAIL_FROM", "crm@example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, hubspot.Credentials{APIKey: "key-1", AccessToken: "pat-1"}, cfg.Credentials())
	assert.Equal(t, "http://localhost:9999", cfg.HubSpot.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HubSpot.Timeout)
	assert.Equal(t, 8443, cfg.HTTP.Port)
	assert.Equal(t, "secret", cfg.HTTP.Token)
	assert.Equal(t, "re_123", cfg.Email.ResendAPIKey)
	assert.Equal(t, "crm@example.com", cfg.Email.From)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")

	path := filepath.Join(t.TempDir(), "hubspot_mcp.yaml")
	yaml := `hubspot:
  apikey: from-file
http:
  port: 5000
  token: file-token
loglevel: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.HubSpot.APIKey)
	assert.Equal(t, "file-token", cfg.HTTP.Token)
	// Environment wins over the file.
	assert.Equal(t, 4000, cfg.HTTP.Port)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUBSPOT_API_KEY", "k")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLevelFallback(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, (&Config{LogLevel: "loud"}).Level())
	assert.Equal(t, zerolog.ErrorLevel, (&Config{LogLevel: "ERROR"}).Level())
}
