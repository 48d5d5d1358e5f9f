package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-hail-client/internal/domain/user"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "rider")
	require.NoError(t, err)

	assert.Equal(t, user.RoleRider, cfg.UserRole())
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "ws://localhost:8000/ws", cfg.Realtime.URL)
	assert.Equal(t, 5, cfg.Realtime.MaxReconnectAttempts)
	assert.Equal(t, 3*time.Second, cfg.Realtime.ReconnectInterval)
	assert.Equal(t, 5*time.Second, cfg.Poll.RideInterval)
	assert.Equal(t, 10*time.Second, cfg.Poll.FallbackInterval)
	assert.Equal(t, 30*time.Second, cfg.Poll.AdminStatsInterval)
	assert.Equal(t, 10*time.Second, cfg.Location.ReportInterval)
	assert.Equal(t, 60*time.Second, cfg.Location.MaxFixAge)
}

func TestLoadYAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://api.staging.example.com
poll:
  ride_interval: 2s
`), 0o600))

	cfg, err := Load(path, "driver")
	require.NoError(t, err)
	assert.Equal(t, "https://api.staging.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Poll.RideInterval)
	assert.Equal(t, user.RoleDriver, cfg.UserRole())
	// untouched keys keep their defaults
	assert.Equal(t, 10*time.Second, cfg.Poll.FallbackInterval)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("RIDECLIENT_API__BASE_URL", "https://api.env.example.com")
	t.Setenv("RIDECLIENT_ROLE", "admin")

	cfg, err := Load("", "rider")
	require.NoError(t, err)
	assert.Equal(t, "https://api.env.example.com", cfg.API.BaseURL)
	assert.Equal(t, user.RoleAdmin, cfg.UserRole())
}

func TestLoadRejectsUnknownRole(t *testing.T) {
	_, err := Load("", "superuser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

func TestLoadRejectsMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "rider")
	assert.Error(t, err)
}

func TestValidateCatchesBadTimings(t *testing.T) {
	cfg, err := Load("", "rider")
	require.NoError(t, err)

	cfg.Poll.RideInterval = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll intervals")

	cfg, _ = Load("", "rider")
	cfg.Diag.Port = 70000
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diag.port")
}
