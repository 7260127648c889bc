// Package suite orchestrates the consent scenarios across the execution
// matrix: one browser session per (profile, scenario) pair, a consent action,
// the commit poll, and the cookie-set validation.
package suite

import (
	"context"
	"fmt"

	"github.com/fernweh-labs/consentgate/internal/browser"
	"github.com/fernweh-labs/consentgate/internal/consent"
)

// Driver is the slice of a browser session a scenario run needs. Production
// uses *browser.Session; tests substitute fakes.
type Driver interface {
	consent.CookieSource
	Navigate(ctx context.Context, url string) error
	ClearCookies(ctx context.Context) error
	Close()
}

// ConsentUI drives the consent banner controls on an open page.
type ConsentUI interface {
	WaitReady(ctx context.Context) error
	AcceptAll(ctx context.Context) error
	RejectAll(ctx context.Context) error
	Customize(ctx context.Context, prefs browser.CategoryPrefs) error
}

// SessionFactory opens a session plus its banner driver for a profile. The
// returned Driver is closed by the runner.
type SessionFactory func(ctx context.Context, profile browser.Profile) (Driver, ConsentUI, error)

// Scenario is one consent flow plus the state the cookie jar must reach
// afterwards.
type Scenario struct {
	Name string
	// Act performs the consent interaction on a page showing the banner.
	Act func(ctx context.Context, ui ConsentUI) error
	// WantCommitted is whether the consent cookie must reach its committed
	// (consent:yes) state within the polling budget.
	WantCommitted bool
	// WantFlags is the decoded consent value the cookie must carry.
	WantFlags consent.Flags
	// ExpectTracking selects the validation direction: true validates the
	// expected tracking cookies are present (accept paths), false validates
	// they are absent (reject and partial-deny paths).
	ExpectTracking bool
}

// BuiltinScenarios returns the three consent flows the suite covers:
// accept everything, reject everything optional, and a granular customize
// that grants functional cookies only.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			Name: "accept-all",
			Act: func(ctx context.Context, ui ConsentUI) error {
				return ui.AcceptAll(ctx)
			},
			WantCommitted: true,
			WantFlags: consent.Flags{
				Necessary: true, Functional: true, Analytics: true, Performance: true,
				Advertisement: true, Other: true, Consent: true, Action: true,
			},
			ExpectTracking: true,
		},
		{
			// Rejecting writes consent:no, so the poll is expected to
			// exhaust; the decoded flags and the absence of tracking cookies
			// carry the assertion.
			Name: "reject-all",
			Act: func(ctx context.Context, ui ConsentUI) error {
				return ui.RejectAll(ctx)
			},
			WantCommitted: false,
			WantFlags:     consent.Flags{Necessary: true, Action: true},
		},
		{
			Name: "customize-functional",
			Act: func(ctx context.Context, ui ConsentUI) error {
				return ui.Customize(ctx, browser.CategoryPrefs{Functional: true})
			},
			WantCommitted: true,
			WantFlags: consent.Flags{
				Necessary: true, Functional: true, Consent: true, Action: true,
			},
		},
	}
}

// ScenariosByName filters the built-in scenarios; empty names means all.
func ScenariosByName(names []string) ([]Scenario, error) {
	all := BuiltinScenarios()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]Scenario, len(all))
	for _, sc := range all {
		byName[sc.Name] = sc
	}
	var out []Scenario
	for _, name := range names {
		sc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		out = append(out, sc)
	}
	return out, nil
}
