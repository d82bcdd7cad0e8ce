package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleConfig(t *testing.T) {
	cfg, err := New("config.json")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 100, cfg.RateLimit())
	assert.Zero(t, cfg.Timeout())
	assert.Equal(t, []string{"referral", "shortlist", "credentials"}, cfg.Buckets())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_API_BASE_URL", "https://api.sway.test/")
	t.Setenv("PORTAL_API_TIMEOUT", "15")
	t.Setenv("PORTAL_SEARCH_DEBOUNCE", "120")
	t.Setenv("PORTAL_ALLOWED_ORIGINS", "https://a.test,https://b.test")

	cfg, err := New("config.json")
	require.NoError(t, err)
	assert.Equal(t, "https://api.sway.test", cfg.APIBaseURL, "trailing slash trimmed")
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, 120*time.Millisecond, cfg.Debounce())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
}

func TestDefaults(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(loc, []byte(`{"apiBaseURL": "http://api"}`), 0600))

	cfg, err := New(loc)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "portal", cfg.DBName)
	assert.Equal(t, DefaultSearchDebounce, cfg.Debounce())
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit())
	assert.Equal(t, []string{"referral", "shortlist", "credentials"}, cfg.Buckets())
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	_, err := New(missing)
	assert.Error(t, err)

	loc := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(loc, []byte(`{"port": "9000"}`), 0600))
	_, err = New(loc)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(loc, []byte(`{nope`), 0600))
	_, err = New(loc)
	assert.Error(t, err)
}
