// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/devpatel66/golden-sleek-vision/auth"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
)

type LoginResponse struct {
	User      auth.User `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetSessionCookie stores the session token in the admin cookie.
func SetSessionCookie(w http.ResponseWriter, s auth.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type AuthHandler struct {
	authn  *auth.Authenticator
	secure bool
}

// NewAuthHandler sets Secure on cookies when the site is served over TLS.
func NewAuthHandler(authn *auth.Authenticator, secure bool) *AuthHandler {
	return &AuthHandler{authn: authn, secure: secure}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeInput(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s, err := h.authn.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("failed login", "email", req.Email, "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	SetSessionCookie(w, s, h.secure)
	slog.Info("admin signed in", "email", s.User.Email)
	middleware.JSONResponse(w, http.StatusOK, LoginResponse{User: s.User, ExpiresAt: s.ExpiresAt})
}

// Logout handles POST /api/auth/logout. It succeeds without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authn.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		slog.Warn("failed to delete session", "error", err)
	}
	ClearSessionCookie(w, h.secure)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me (behind RequireAdmin)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, LoginResponse{User: s.User, ExpiresAt: s.ExpiresAt})
}
