package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "https://api.example.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.True(t, cfg.App.IsDev())
	assert.True(t, cfg.Stub.SeedDemo)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonHTTPBaseURL(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "ftp://api.example.test")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "https://api.example.test")
	t.Setenv("STOREFRONT_API_TIMEOUT", "0s")

	_, err := Load()
	require.Error(t, err)
}
