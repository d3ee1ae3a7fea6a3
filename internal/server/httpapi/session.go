// Package httpapi exposes the link archive over HTTP: session cookie
// transport, the authentication middleware, and the login/logout/links
// handlers.
package httpapi

import (
	"net/http"
	"time"
)

// CookieName is the fixed session cookie name shared by client and server.
const CookieName = "session-token"

// SetSessionCookie attaches the session token to the response. HttpOnly and
// SameSite=Strict are mandatory: the token must never be readable by page
// scripts and must never ride along on cross-site navigations.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// SessionToken extracts the session token from the request's cookies,
// whichever Cookie header line it arrived on. The value is returned
// verbatim.
func SessionToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ClearSessionCookie re-issues the cookie already expired so the browser
// drops the token immediately. Tokens are stateless, so logout is purely a
// client-side transport action.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
