// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernweh-labs/consentgate/internal/config"
)

// TestRootCmd_VersionFlag tests if the --version flag works correctly.
// Cobra resolves the version flag before the persistent hooks run, so no
// config file is needed.
func TestRootCmd_VersionFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--version"})

	err := rootCmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), Version)
}

// TestApplyRunFlags verifies that explicitly set command-line flags override
// the loaded configuration, and that untouched flags leave it alone.
func TestApplyRunFlags(t *testing.T) {
	cfg = config.NewDefaultConfig()
	defaultTarget := cfg.Suite.TargetURL

	require.NoError(t, runCmd.Flags().Set("env", "chromium-mobile"))
	require.NoError(t, runCmd.Flags().Set("max-attempts", "7"))
	require.NoError(t, runCmd.Flags().Set("poll-interval", "250ms"))
	require.NoError(t, runCmd.Flags().Set("output", "report.json"))

	applyRunFlags(runCmd)

	assert.Equal(t, []string{"chromium-mobile"}, cfg.Suite.Environments)
	assert.Equal(t, 7, cfg.Poll.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
	assert.Equal(t, "report.json", cfg.Report.Output)
	assert.Equal(t, defaultTarget, cfg.Suite.TargetURL, "target flag was not set and must not override config")
}
