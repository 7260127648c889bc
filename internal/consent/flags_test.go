package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFlags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Flags
	}{
		{
			name: "full grant",
			raw:  "consent:yes;action:yes;necessary:yes;functional:yes;analytics:yes;performance:yes;advertisement:yes;other:yes",
			want: Flags{
				Necessary: true, Functional: true, Analytics: true, Performance: true,
				Advertisement: true, Other: true, Consent: true, Action: true,
			},
		},
		{
			name: "reject all keeps only necessary",
			raw:  "consent:yes;action:yes;necessary:yes;functional:no;analytics:no;performance:no;advertisement:no;other:no",
			want: Flags{Necessary: true, Consent: true, Action: true},
		},
		{
			name: "partial value decodes listed keys only",
			raw:  "necessary:yes;analytics:no;advertisement:no",
			want: Flags{Necessary: true},
		},
		{
			name: "empty value decodes to all false",
			raw:  "",
			want: Flags{},
		},
		{
			name: "garbage value decodes to all false",
			raw:  "not-a-consent-cookie",
			want: Flags{},
		},
		{
			name: "reordered keys and stray whitespace still detected",
			raw:  "analytics:yes; consent:yes ;necessary:yes",
			want: Flags{Necessary: true, Analytics: true, Consent: true},
		},
		{
			name: "explicit no never reads as yes",
			raw:  "consent:no;necessary:no",
			want: Flags{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeFlags(tc.raw))
		})
	}
}
