//go:build e2e

package e2e

import (
	"os"
	"os/exec"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// browserBinaries are the executables chromedp knows how to launch.
var browserBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

var testLogger *zap.Logger

func TestMain(m *testing.M) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	testLogger, _ = cfg.Build()

	os.Exit(m.Run())
}

// requireChrome skips the test when no launchable browser binary is on PATH.
func requireChrome(t *testing.T) {
	t.Helper()
	for _, name := range browserBinaries {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no Chrome/Chromium binary found on PATH")
}
