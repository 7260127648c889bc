package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fernweh-labs/consentgate/internal/config"
	"github.com/fernweh-labs/consentgate/internal/consent"
)

// Session is a single browser tab bound to one execution profile. It is the
// suite's cookie source: the poller reads the live cookie jar through it.
type Session struct {
	id      string
	profile Profile
	cfg     config.BrowserConfig
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	onClose   func()
	closeOnce sync.Once
}

// Session satisfies the polling engine's cookie source contract.
var _ consent.CookieSource = (*Session)(nil)

func newSession(allocatorCtx context.Context, profile Profile, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	sessionID := uuid.New().String()
	tabCtx, cancel := chromedp.NewContext(allocatorCtx)

	s := &Session{
		id:      sessionID,
		profile: profile,
		cfg:     cfg,
		logger: logger.Named("session").With(
			zap.String("session_id", sessionID),
			zap.String("environment", profile.ID)),
		ctx:    tabCtx,
		cancel: cancel,
	}

	// Apply the profile before any navigation so the site sees the emulated
	// device from the first request on.
	err := chromedp.Run(tabCtx,
		emulation.SetUserAgentOverride(profile.UserAgent),
		emulation.SetDeviceMetricsOverride(profile.Width, profile.Height, 1.0, profile.Mobile),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to apply profile %q: %w", profile.ID, err)
	}

	s.logger.Debug("Session opened.")
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Environment returns the identifier of the profile this session emulates.
func (s *Session) Environment() string {
	return s.profile.ID
}

// run executes chromedp actions on the session's tab while honoring the
// caller's context: cancelling ctx aborts the in-flight actions.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads the target URL and waits for the document body, bounded by
// the configured navigation timeout.
func (s *Session) Navigate(ctx context.Context, targetURL string) error {
	navCtx := ctx
	if s.cfg.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, s.cfg.NavigationTimeout)
		defer cancel()
	}

	s.logger.Debug("Navigating.", zap.String("url", targetURL))
	if err := s.run(navCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", targetURL, err)
	}
	return nil
}

// Cookies returns the tab's full cookie jar, third-party cookies included.
func (s *Session) Cookies(ctx context.Context) ([]consent.Cookie, error) {
	var out []consent.Cookie
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		out = make([]consent.Cookie, 0, len(cookies))
		for _, c := range cookies {
			out = append(out, consent.Cookie{Name: c.Name, Domain: c.Domain, Value: c.Value})
		}
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie jar: %w", err)
	}
	return out, nil
}

// ClearCookies empties the cookie jar. Scenario runs start from a clean
// visitor state so the banner is guaranteed to show.
func (s *Session) ClearCookies(ctx context.Context) error {
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return storage.ClearCookies().Do(ctx)
	}))
	if err != nil {
		return fmt.Errorf("failed to clear cookie jar: %w", err)
	}
	return nil
}

// WaitVisible blocks until the selector matches a visible element.
func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Click waits for the selector and clicks it.
func (s *Session) Click(ctx context.Context, selector string) error {
	return s.run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
}

// Evaluate runs a JavaScript expression in the page and stores the result.
func (s *Session) Evaluate(ctx context.Context, expression string, res any) error {
	return s.run(ctx, chromedp.Evaluate(expression, res))
}

// Close tears down the tab. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.logger.Debug("Closing session.")
		s.cancel()
		if s.onClose != nil {
			s.onClose()
		}
	})
}
