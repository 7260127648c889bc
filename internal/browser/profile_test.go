package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernweh-labs/consentgate/internal/consent"
)

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()
	require.NotEmpty(t, profiles)

	seen := make(map[string]struct{})
	for _, p := range profiles {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.UserAgent)
		assert.Positive(t, p.Width)
		assert.Positive(t, p.Height)

		_, dup := seen[p.ID]
		assert.False(t, dup, "duplicate profile id %q", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestDefaultProfilesHaveAuthoredExpectations(t *testing.T) {
	// The default matrix and the built-in expectation table are maintained
	// together; a profile without expectations runs with validation skipped,
	// which for the defaults would mean dead weight.
	reg := consent.DefaultRegistry()
	for _, p := range DefaultProfiles() {
		_, ok := reg.Lookup(p.ID)
		assert.True(t, ok, "profile %q has no expectation entry", p.ID)
	}
}

func TestProfileByID(t *testing.T) {
	p, ok := ProfileByID("chromium-mobile")
	require.True(t, ok)
	assert.True(t, p.Mobile)

	_, ok = ProfileByID("safari-desktop")
	assert.False(t, ok)
}
