package suite

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fernweh-labs/consentgate/internal/browser"
	"github.com/fernweh-labs/consentgate/internal/config"
)

// isolatedDriver couples a session with its dedicated browser process so
// closing the session also tears the process down.
type isolatedDriver struct {
	*browser.Session
	manager *browser.Manager
}

func (d *isolatedDriver) Close() {
	d.Session.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = d.manager.Shutdown(shutdownCtx)
}

// BrowserFactory returns a SessionFactory that launches a dedicated browser
// process per session. Profiles share nothing, so concurrently running
// environments cannot bleed cookies into each other's jars.
func BrowserFactory(cfg config.BrowserConfig, logger *zap.Logger) SessionFactory {
	return func(ctx context.Context, profile browser.Profile) (Driver, ConsentUI, error) {
		manager, err := browser.NewManager(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		session, err := manager.NewSession(ctx, profile)
		if err != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = manager.Shutdown(shutdownCtx)
			return nil, nil, err
		}
		banner := browser.NewBanner(session, cfg.BannerTimeout, logger)
		return &isolatedDriver{Session: session, manager: manager}, banner, nil
	}
}
