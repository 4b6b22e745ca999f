// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Credentials is the single demo login. It gates the admin area and
// nothing more.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// Check compares in constant time. Email is case-insensitive.
func (c Credentials) Check(email, password string) error {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(c.Email)),
	)
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password))
	if emailOK&passOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// LoginRecorder is notified after a successful login.
type LoginRecorder interface {
	TouchLastLogin(ctx context.Context, email string) error
}

// Authenticator issues and resolves admin sessions.
type Authenticator struct {
	creds    Credentials
	sessions SessionRepository
	ttl      time.Duration
	recorder LoginRecorder
	now      func() time.Time
}

func NewAuthenticator(creds Credentials, sessions SessionRepository, ttl time.Duration, recorder LoginRecorder) *Authenticator {
	return &Authenticator{
		creds:    creds,
		sessions: sessions,
		ttl:      ttl,
		recorder: recorder,
		now:      time.Now,
	}
}

// Login checks the credential and stores a new session.
func (a *Authenticator) Login(ctx context.Context, email, password string) (Session, error) {
	if err := a.creds.Check(email, password); err != nil {
		return Session{}, err
	}

	token, err := GenerateID(32)
	if err != nil {
		return Session{}, err
	}

	now := a.now()
	s := Session{
		Token: token,
		User: User{
			ID:    "1",
			Email: a.creds.Email,
			Name:  a.creds.Name,
			Role:  "admin",
		},
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	if a.recorder != nil {
		if err := a.recorder.TouchLastLogin(ctx, s.User.Email); err != nil {
			slog.Warn("failed to record login", "email", s.User.Email, "error", err)
		}
	}
	return s, nil
}

// Resolve returns the live session for token.
func (a *Authenticator) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}
	s, err := a.sessions.Load(ctx, token)
	if err != nil {
		return Session{}, err
	}
	if !a.now().Before(s.ExpiresAt) {
		_ = a.sessions.Delete(ctx, token)
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (a *Authenticator) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.Delete(ctx, token)
}

func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}
