// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"32 bytes", 32, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestCredentialsCheck(t *testing.T) {
	creds := Credentials{Email: "admin@example.com", Password: "admin123"}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"exact match", "admin@example.com", "admin123", false},
		{"email case and spaces", "  Admin@Example.COM ", "admin123", false},
		{"wrong password", "admin@example.com", "admin1234", true},
		{"password is case sensitive", "admin@example.com", "ADMIN123", true},
		{"wrong email", "root@example.com", "admin123", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := creds.Check(tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Check() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

type recorder struct{ emails []string }

func (r *recorder) TouchLastLogin(_ context.Context, email string) error {
	r.emails = append(r.emails, email)
	return nil
}

func TestAuthenticatorLifecycle(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	a := NewAuthenticator(
		Credentials{Email: "admin@example.com", Password: "admin123", Name: "Admin User"},
		NewMemorySessions(), time.Hour, rec,
	)

	if _, err := a.Login(ctx, "admin@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() with bad password error = %v", err)
	}
	if len(rec.emails) != 0 {
		t.Error("failed login must not be recorded")
	}

	s, err := a.Login(ctx, "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(s.Token) != 64 {
		t.Errorf("token length = %d, want 64", len(s.Token))
	}
	if s.User.Role != "admin" || s.User.Name != "Admin User" {
		t.Errorf("unexpected user %+v", s.User)
	}
	if len(rec.emails) != 1 {
		t.Errorf("login recorded %d times, want 1", len(rec.emails))
	}

	got, err := a.Resolve(ctx, s.Token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.User.Email != "admin@example.com" {
		t.Errorf("Resolve() email = %s", got.User.Email)
	}

	if err := a.Logout(ctx, s.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := a.Resolve(ctx, s.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Resolve() after logout error = %v", err)
	}
}

func TestAuthenticatorExpiry(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(Credentials{Email: "a@b.co", Password: "pw"}, NewMemorySessions(), time.Minute, nil)

	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return start }

	s, err := a.Login(ctx, "a@b.co", "pw")
	if err != nil {
		t.Fatal(err)
	}

	a.now = func() time.Time { return start.Add(59 * time.Second) }
	if _, err := a.Resolve(ctx, s.Token); err != nil {
		t.Errorf("session should still be live: %v", err)
	}

	a.now = func() time.Time { return start.Add(time.Minute) }
	if _, err := a.Resolve(ctx, s.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Resolve() expired error = %v", err)
	}
}

func TestResolveEmptyToken(t *testing.T) {
	a := NewAuthenticator(Credentials{}, NewMemorySessions(), time.Minute, nil)
	if _, err := a.Resolve(context.Background(), ""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Resolve(\"\") error = %v", err)
	}
}
