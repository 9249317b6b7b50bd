package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run away from any developer config file
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Hour, cfg.Booking.MinDuration)
	assert.Equal(t, 2*time.Hour, cfg.Booking.DefaultWindow)
	assert.NotEmpty(t, cfg.Auth.TokenPath)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.OTel.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEATCTL_API_BASE_URL", "https://booking.example.com/api")
	t.Setenv("SEATCTL_APP_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://booking.example.com/api", cfg.API.BaseURL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://backend:9000/api
  timeout: 10s
booking:
  min_duration: 30m
  default_window: 1h
`), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Booking.MinDuration)
	assert.Equal(t, time.Hour, cfg.Booking.DefaultWindow)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		API:     APIConfig{BaseURL: "http://localhost:8081/api", Timeout: time.Second},
		Auth:    AuthConfig{TokenPath: "/tmp/token"},
		Booking: BookingConfig{MinDuration: time.Hour, DefaultWindow: 2 * time.Hour},
	}
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.API.BaseURL = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Booking.DefaultWindow = 30 * time.Minute
	assert.Error(t, bad.Validate())
}
