// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Session struct {
	Token     string    `json:"-"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRepository stores sessions by token. Load returns
// ErrSessionNotFound for unknown tokens.
type SessionRepository interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// MemorySessions keeps sessions in process. Sessions are lost on restart.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]Session)}
}

func (m *MemorySessions) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *MemorySessions) Load(_ context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemorySessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

const sessionKeyPrefix = "session:"

// RedisSessions stores sessions as JSON with a TTL matching ExpiresAt, so
// several instances can share logins.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (r *RedisSessions) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return r.client.Set(ctx, sessionKeyPrefix+s.Token, data, ttl).Err()
}

func (r *RedisSessions) Load(ctx context.Context, token string) (Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	s.Token = token
	return s, nil
}

func (r *RedisSessions) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}
