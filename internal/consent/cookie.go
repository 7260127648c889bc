// Package consent holds the consent-cookie validation core: the expectation
// registry, the consent value decoder, the cookie set validator, and the
// polling engine that waits for the browser to commit the consent cookie.
package consent

// ConsentCookieName is the cookie the CookieYes CMP writes after any consent
// action. Its value encodes every granted/denied category for the session.
const ConsentCookieName = "cookieyes-consent"

// Cookie is a read-only snapshot of a single browser cookie. Instances are
// supplied by the browser collaborator; nothing in this package mutates them.
type Cookie struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Value  string `json:"value"`
}

// Key returns the "name@domain" identity used for expectation matching.
// Matching is exact and case-sensitive; there is no normalization or
// wildcarding on either side.
func (c Cookie) Key() string {
	return c.Name + "@" + c.Domain
}

// FindCookie returns the first cookie with the given name, or false when no
// such cookie is present in the snapshot.
func FindCookie(cookies []Cookie, name string) (Cookie, bool) {
	for _, c := range cookies {
		if c.Name == name {
			return c, true
		}
	}
	return Cookie{}, false
}
