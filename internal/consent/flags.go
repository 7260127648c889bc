package consent

import "strings"

// Flags is the decoded view of a consent cookie value. Every field is
// two-state: a category whose token is absent from the raw value decodes to
// false, exactly as if it had been explicitly denied.
type Flags struct {
	Necessary     bool `json:"necessary"`
	Functional    bool `json:"functional"`
	Analytics     bool `json:"analytics"`
	Performance   bool `json:"performance"`
	Advertisement bool `json:"advertisement"`
	Other         bool `json:"other"`
	Consent       bool `json:"consent"`
	Action        bool `json:"action"`
}

// DecodeFlags parses a raw consent cookie value of the form
// "consent:yes;action:yes;necessary:yes;...". The delimiter and token set are
// owned by the CMP, not by us, so detection is literal substring containment
// of "<key>:yes" rather than a structural split. Upstream format drift
// (reordered keys, stray whitespace, new categories) must degrade to a false
// flag, never to a parse failure. An empty or malformed value decodes to the
// zero Flags.
func DecodeFlags(raw string) Flags {
	granted := func(key string) bool {
		return strings.Contains(raw, key+":yes")
	}
	return Flags{
		Necessary:     granted("necessary"),
		Functional:    granted("functional"),
		Analytics:     granted("analytics"),
		Performance:   granted("performance"),
		Advertisement: granted("advertisement"),
		Other:         granted("other"),
		Consent:       granted("consent"),
		Action:        granted("action"),
	}
}
