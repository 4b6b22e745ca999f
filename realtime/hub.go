// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	SettingsTable = "site_settings"
	EventUpdate   = "update"
)

// Event is the payload pushed to websocket clients.
type Event struct {
	Table string   `json:"table"`
	Event string   `json:"event"`
	Keys  []string `json:"keys,omitempty"`
}

func SettingsChanged(keys []string) Event {
	return Event{Table: SettingsTable, Event: EventUpdate, Keys: keys}
}

// Publisher announces a change to every connected client.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Hub fans events out to in-process subscribers. A slow subscriber drops
// events instead of blocking the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		close(ch)
		delete(h.subs, id)
	}
	h.mu.Unlock()
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- e:
		default:
			slog.Warn("dropping event for slow subscriber", "subscriber", id, "table", e.Table)
		}
	}
}

// Publish satisfies Publisher for single-instance deployments.
func (h *Hub) Publish(_ context.Context, e Event) error {
	h.Broadcast(e)
	return nil
}
