package browser

import (
	"runtime"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernweh-labs/consentgate/internal/config"
)

func TestAllocatorFlags(t *testing.T) {
	t.Run("automation flag is forced off", func(t *testing.T) {
		flags := allocatorFlags(config.BrowserConfig{Headless: true})
		assert.Equal(t, false, flags["enable-automation"])
		assert.Equal(t, "AutomationControlled", flags["disable-blink-features"])
	})

	t.Run("headless drives gpu", func(t *testing.T) {
		flags := allocatorFlags(config.BrowserConfig{Headless: true})
		assert.Equal(t, true, flags["headless"])
		assert.Equal(t, true, flags["disable-gpu"])

		flags = allocatorFlags(config.BrowserConfig{Headless: false})
		assert.Equal(t, false, flags["headless"])
		assert.Equal(t, false, flags["disable-gpu"])
	})

	t.Run("ignore TLS errors", func(t *testing.T) {
		flags := allocatorFlags(config.BrowserConfig{IgnoreTLSErrors: true})
		assert.Equal(t, true, flags["ignore-certificate-errors"])
	})

	t.Run("custom args with and without values", func(t *testing.T) {
		flags := allocatorFlags(config.BrowserConfig{
			Args: []string{"--lang=de-DE", "--disable-notifications"},
		})
		assert.Equal(t, "de-DE", flags["lang"])
		assert.Equal(t, true, flags["disable-notifications"])
	})

	t.Run("custom args override the suite's flags", func(t *testing.T) {
		flags := allocatorFlags(config.BrowserConfig{
			Args: []string{"--disable-extensions=false"},
		})
		assert.Equal(t, "false", flags["disable-extensions"])
	})

	t.Run("container flags on linux", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("linux-only allocator flags")
		}
		flags := allocatorFlags(config.BrowserConfig{Headless: true})
		assert.Equal(t, true, flags["no-sandbox"])
		assert.Equal(t, true, flags["disable-dev-shm-usage"])
	})
}

// TestAllocatorOptionsLayering pins the option order: chromedp's defaults
// first, then one option per suite flag. chromedp applies options in order,
// so the suite's flags win over any default with the same name.
func TestAllocatorOptionsLayering(t *testing.T) {
	cfg := config.BrowserConfig{Headless: true, Args: []string{"--lang=de-DE"}}
	opts := AllocatorOptions(cfg)

	defaults := len(chromedp.DefaultExecAllocatorOptions)
	require.Len(t, opts, defaults+len(allocatorFlags(cfg)))
	for _, opt := range opts {
		assert.NotNil(t, opt)
	}
}
