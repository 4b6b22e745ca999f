// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const Channel = "site_settings_changes"

// RedisBroker relays events between instances through Redis pub/sub.
// Every instance publishes to Redis and delivers what it receives to its
// local Hub, so a change made on one instance reaches clients on all.
type RedisBroker struct {
	client    *redis.Client
	hub       *Hub
	onReceive []func(Event)
}

func NewRedisBroker(client *redis.Client, hub *Hub) *RedisBroker {
	return &RedisBroker{client: client, hub: hub}
}

// OnReceive registers fn to run for every event read from Redis, before
// it reaches the hub. Register hooks before Start.
func (b *RedisBroker) OnReceive(fn func(Event)) {
	b.onReceive = append(b.onReceive, fn)
}

func (b *RedisBroker) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", Channel, err)
	}
	return nil
}

// Start subscribes to the channel and forwards messages to the hub until
// ctx is cancelled. It returns once the subscription is confirmed.
func (b *RedisBroker) Start(ctx context.Context) error {
	ps := b.client.Subscribe(ctx, Channel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return fmt.Errorf("subscribe %s: %w", Channel, err)
	}

	go func() {
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					slog.Warn("ignoring malformed event", "channel", msg.Channel, "error", err)
					continue
				}
				for _, fn := range b.onReceive {
					fn(e)
				}
				b.hub.Broadcast(e)
			}
		}
	}()
	return nil
}
