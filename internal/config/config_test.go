package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("parses yaml and expands environment variables", func(t *testing.T) {
		t.Setenv("ML_CLIENT_SECRET", "secret-from-env")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  allowed_origins:
    - http://localhost:4000
mercadolibre:
  site: MLB
  client_id: the-client
  client_secret: ${ML_CLIENT_SECRET}
  redirect_uri: https://example.com/callback
amazon:
  max_results: 3
observability:
  logging:
    level: debug
    format: json
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, []string{"http://localhost:4000"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "MLB", cfg.MercadoLibre.Site)
		assert.Equal(t, "secret-from-env", cfg.MercadoLibre.ClientSecret)
		assert.Equal(t, 3, cfg.Amazon.MaxResults)
		assert.Equal(t, "debug", cfg.Observability.Logging.Level)
		assert.Equal(t, "json", cfg.Observability.Logging.Format)
	})

	t.Run("applies defaults for omitted fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("mercadolibre:\n  client_id: x\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, 5, cfg.Amazon.MaxResults)
		assert.Equal(t, 60, cfg.Amazon.TimeoutSeconds)
		assert.Equal(t, 2, cfg.Amazon.MaxConcurrent)
		assert.Equal(t, "info", cfg.Observability.Logging.Level)
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8123")
	t.Setenv("ML_CLIENT_ID", "env-client")
	t.Setenv("ML_CLIENT_SECRET", "env-secret")
	t.Setenv("ML_REDIRECT_URI", "https://example.com/cb")
	t.Setenv("AMAZON_MAX_RESULTS", "7")

	cfg := LoadFromEnv()

	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "env-client", cfg.MercadoLibre.ClientID)
	assert.Equal(t, "env-secret", cfg.MercadoLibre.ClientSecret)
	assert.Equal(t, "https://example.com/cb", cfg.MercadoLibre.RedirectURI)
	assert.Equal(t, 7, cfg.Amazon.MaxResults)
	assert.Equal(t, "MLA", cfg.MercadoLibre.Site)
}

func TestLoadOrEnvWithPath(t *testing.T) {
	// Falls back to env when the file does not exist
	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.NotNil(t, cfg)
	assert.Equal(t, 5000, cfg.Server.Port)
}
