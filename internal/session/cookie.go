// Package session encodes the backend-issued session token as a browser
// cookie directive and extracts it from inbound request headers. Everything
// here is a pure function; no I/O happens.
package session

import (
	"net/http"
	"strings"
	"time"
)

// CookieName matches the cookie the identity backend itself issues, so a
// session established through this front end is also honored on direct
// backend calls.
const CookieName = "payload-token"

// Encode returns the Set-Cookie directive carrying the session token until
// the backend-supplied expiry. The cookie is HTTP-only: scripts never see
// the token.
func Encode(token string, expires time.Time) string {
	c := http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	}
	return c.String()
}

// Clear returns the Set-Cookie directive that deletes the session cookie by
// expiring it at the Unix epoch.
func Clear() string {
	return Encode("", time.Unix(0, 0))
}

// Raw returns the inbound Cookie header exactly as the browser sent it, for
// forwarding to the backend. Multiple header lines merge the way RFC 6265
// prescribes.
func Raw(h http.Header) string {
	return strings.Join(h.Values("Cookie"), "; ")
}

// Extract returns the session token from the request's Cookie header. The
// second return is false when the request carries no session cookie; that is
// the anonymous case, not an error.
func Extract(h http.Header) (string, bool) {
	for _, line := range h.Values("Cookie") {
		cookies, err := http.ParseCookie(line)
		if err != nil {
			continue
		}
		for _, c := range cookies {
			if c.Name == CookieName {
				return c.Value, true
			}
		}
	}
	return "", false
}
