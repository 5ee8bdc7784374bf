package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "https://example.com, ,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com", "http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 15, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 100.0, cfg.Reorder.RowTolerance)
	assert.Equal(t, 250.0, cfg.Reorder.ProximityThreshold)
	assert.Equal(t, "en", cfg.Contact.Language)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "http")

	_, err := Load()
	assert.Error(t, err)
}
