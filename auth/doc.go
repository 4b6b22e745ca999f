// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin login gate and its sessions.

# Demo Credential

There is one configured email/password pair (admin@example.com / admin123
unless overridden). It is a placeholder that keeps casual visitors out of
/admin, not an account system. Credentials.Check compares in constant time.

# Sessions

A successful Login creates a Session with a random 256-bit hex token and
an expiry of now + TTL. The token travels in the admin_session cookie.

	a := auth.NewAuthenticator(creds, auth.NewMemorySessions(), cfg.SessionTTL, users)
	s, err := a.Login(ctx, email, password)
	s, err = a.Resolve(ctx, token)
	err = a.Logout(ctx, token)

Sessions live behind SessionRepository:

  - MemorySessions: a mutex-guarded map, the default
  - RedisSessions: JSON values under session:<token> with a matching TTL,
    used when REDIS_URL is set so several instances share logins

# Errors

	ErrInvalidCredentials - wrong email or password
	ErrSessionNotFound    - unknown, deleted, or expired token

# ID Generation

GenerateID returns crypto/rand bytes as hex:

	token, err := auth.GenerateID(32) // 64 hex chars
*/
package auth
