// File: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernweh-labs/consentgate/internal/consent"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	// Verify a few key defaults to ensure the mechanism works.
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "consentgate", cfg.Logger.ServiceName)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 45*time.Second, cfg.Browser.NavigationTimeout)
	assert.Equal(t, 3, cfg.Poll.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Poll.Interval)
	assert.Equal(t, "https://www.fernweh.travel", cfg.Suite.TargetURL)
	assert.Equal(t, 2, cfg.Suite.Concurrency)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, NewDefaultConfig().Validate())
	})

	t.Run("relative target URL is rejected", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Suite.TargetURL = "/deals"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "suite.target_url")
	})

	t.Run("negative poll budget is rejected", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Poll.MaxAttempts = -1
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll.max_attempts")
	})

	t.Run("zero concurrency is rejected", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Suite.Concurrency = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "suite.concurrency")
	})

	t.Run("expectation override without required cookies is rejected", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Suite.Expectations = map[string]consent.Expectation{
			"firefox-desktop": {Optional: []string{"_ga@.fernweh.travel"}},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "suite.expectations.firefox-desktop")
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
logger:
  level: debug
  format: json
suite:
  target_url: https://staging.fernweh.travel/deals
  environments: [chromium-desktop]
  concurrency: 1
  expectations:
    chromium-desktop:
      required:
        - cookieyes-consent@staging.fernweh.travel
poll:
  max_attempts: 5
  interval: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "https://staging.fernweh.travel/deals", cfg.Suite.TargetURL)
	assert.Equal(t, []string{"chromium-desktop"}, cfg.Suite.Environments)
	assert.Equal(t, 5, cfg.Poll.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)

	exp, ok := cfg.Suite.Expectations["chromium-desktop"]
	require.True(t, ok)
	assert.Equal(t, []string{"cookieyes-consent@staging.fernweh.travel"}, exp.Required)

	// File values layer on top of defaults, not replace them.
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "consentgate", cfg.Logger.ServiceName)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://www.fernweh.travel", cfg.Suite.TargetURL)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suite:\n  target_url: [not, a, string]\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
