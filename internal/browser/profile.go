// Package browser drives the headless Chrome instance the suite runs
// against: process lifecycle, per-scenario tabs, and the CookieYes banner UI.
package browser

// Profile describes an execution environment from the suite's matrix. The ID
// doubles as the environment identifier used for expectation lookups.
type Profile struct {
	ID        string
	UserAgent string
	Width     int64
	Height    int64
	Mobile    bool
}

// DefaultProfiles returns the execution matrix the suite runs by default.
// IDs must line up with the consent registry's environment identifiers;
// profiles without authored expectations run with validation skipped.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			ID:        "chromium-desktop",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			Width:     1920,
			Height:    1080,
		},
		{
			ID:        "chromium-mobile",
			UserAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36",
			Width:     412,
			Height:    915,
			Mobile:    true,
		},
		{
			ID:        "chromium-tablet",
			UserAgent: "Mozilla/5.0 (Linux; Android 14; SM-X910) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			Width:     1280,
			Height:    800,
			Mobile:    true,
		},
	}
}

// ProfileByID resolves a profile from the default matrix.
func ProfileByID(id string) (Profile, bool) {
	for _, p := range DefaultProfiles() {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}
