package auth

import (
	"net/http"
	"strings"
	"time"
)

const (
	DefaultCookieName = "clickup_session"
	LegacyCookieName  = "auth_token"
)

// CookieConfig describes the session cookie: Path=/, HttpOnly, SameSite=Lax, Secure in production.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

func (c CookieConfig) maxAge() time.Duration {
	if c.MaxAge <= 0 {
		return DefaultSessionTTL
	}
	return c.MaxAge
}

func (c CookieConfig) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge().Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie and the legacy one.
func (c CookieConfig) ClearSessionCookie(w http.ResponseWriter) {
	names := []string{c.name()}
	if c.name() != LegacyCookieName {
		names = append(names, LegacyCookieName)
	}
	for _, name := range names {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// Token reads the session token from the cookie, the legacy cookie, or an Authorization bearer header.
func (c CookieConfig) Token(r *http.Request) string {
	for _, name := range []string{c.name(), LegacyCookieName} {
		if ck, err := r.Cookie(name); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
