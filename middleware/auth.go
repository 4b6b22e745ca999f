// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/devpatel66/golden-sleek-vision/auth"
)

type sessionKey struct{}

// SessionResolver turns a cookie token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (auth.Session, error)
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.Session)
	return s, ok
}

// SessionToken reads the admin cookie, or "" when absent.
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(auth.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func resolve(r *http.Request, resolver SessionResolver) (auth.Session, bool) {
	s, err := resolver.Resolve(r.Context(), SessionToken(r))
	if err != nil {
		return auth.Session{}, false
	}
	return s, true
}

// RequireAdmin rejects API requests without a live session with 401.
func RequireAdmin(resolver SessionResolver, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := resolve(r, resolver)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r.WithContext(WithSession(r.Context(), s)))
	}
}

// RequireAdminPage sends visitors without a session to the login page,
// remembering where they were headed.
func RequireAdminPage(resolver SessionResolver, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := resolve(r, resolver)
		if !ok {
			target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next(w, r.WithContext(WithSession(r.Context(), s)))
	}
}
