package browser

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CookieYes banner selectors, the CMP the booking site ships. The data-cky-tag
// attributes are the CMP's stable hooks; the class selectors cover older
// banner revisions still live on some locales.
const (
	bannerSelector        = ".cky-consent-container"
	acceptAllSelector     = `button[data-cky-tag="accept-button"], .cky-btn-accept`
	rejectAllSelector     = `button[data-cky-tag="reject-button"], .cky-btn-reject`
	customizeSelector     = `button[data-cky-tag="settings-button"], .cky-btn-customize`
	preferencesSelector   = ".cky-preference-center"
	savePrefsSelector     = `button[data-cky-tag="detail-save-btn"], .cky-btn-preferences`
	categorySwitchPattern = "#ckySwitch%s"
)

// CategoryPrefs selects which optional consent categories to grant in the
// granular customize flow. Necessary is always granted by the CMP and has no
// switch.
type CategoryPrefs struct {
	Functional    bool
	Analytics     bool
	Performance   bool
	Advertisement bool
}

// Banner drives the CookieYes consent UI on an open session.
type Banner struct {
	session *Session
	logger  *zap.Logger
	timeout time.Duration
}

// NewBanner wraps a session with the consent banner driver. The timeout
// bounds each wait for a banner element; banners render asynchronously after
// page load.
func NewBanner(session *Session, timeout time.Duration, logger *zap.Logger) *Banner {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Banner{
		session: session,
		logger:  logger.Named("banner"),
		timeout: timeout,
	}
}

// WaitReady blocks until the consent banner is visible.
func (b *Banner) WaitReady(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	if err := b.session.WaitVisible(waitCtx, bannerSelector); err != nil {
		return fmt.Errorf("consent banner did not appear: %w", err)
	}
	return nil
}

// AcceptAll clicks the banner's accept-all control.
func (b *Banner) AcceptAll(ctx context.Context) error {
	if err := b.click(ctx, acceptAllSelector); err != nil {
		return fmt.Errorf("accept-all click failed: %w", err)
	}
	b.logger.Info("Accepted all consent categories.")
	return nil
}

// RejectAll clicks the banner's reject-all control.
func (b *Banner) RejectAll(ctx context.Context) error {
	if err := b.click(ctx, rejectAllSelector); err != nil {
		return fmt.Errorf("reject-all click failed: %w", err)
	}
	b.logger.Info("Rejected all optional consent categories.")
	return nil
}

// Customize opens the preference center, sets each category switch to the
// requested state, and saves.
func (b *Banner) Customize(ctx context.Context, prefs CategoryPrefs) error {
	if err := b.click(ctx, customizeSelector); err != nil {
		return fmt.Errorf("opening preference center failed: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	if err := b.session.WaitVisible(waitCtx, preferencesSelector); err != nil {
		return fmt.Errorf("preference center did not appear: %w", err)
	}

	toggles := []struct {
		category string
		want     bool
	}{
		{"functional", prefs.Functional},
		{"analytics", prefs.Analytics},
		{"performance", prefs.Performance},
		{"advertisement", prefs.Advertisement},
	}
	for _, tg := range toggles {
		if err := b.setSwitch(ctx, tg.category, tg.want); err != nil {
			return fmt.Errorf("toggling %s failed: %w", tg.category, err)
		}
	}

	if err := b.click(ctx, savePrefsSelector); err != nil {
		return fmt.Errorf("saving preferences failed: %w", err)
	}
	b.logger.Info("Saved granular consent preferences.",
		zap.Bool("functional", prefs.Functional),
		zap.Bool("analytics", prefs.Analytics),
		zap.Bool("performance", prefs.Performance),
		zap.Bool("advertisement", prefs.Advertisement))
	return nil
}

// setSwitch reads the category checkbox and clicks it only when its state
// differs from the requested one. The switches are checkboxes; a blind click
// would invert an already-correct state.
func (b *Banner) setSwitch(ctx context.Context, category string, want bool) error {
	selector := fmt.Sprintf(categorySwitchPattern, category)

	var checked bool
	expr := fmt.Sprintf("document.querySelector(%q) !== null && document.querySelector(%q).checked", selector, selector)
	if err := b.session.Evaluate(ctx, expr, &checked); err != nil {
		return err
	}
	if checked == want {
		return nil
	}
	return b.click(ctx, selector)
}

func (b *Banner) click(ctx context.Context, selector string) error {
	clickCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.session.Click(clickCtx, selector)
}
