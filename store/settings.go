// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/devpatel66/golden-sleek-vision/models"
)

type Settings struct{ db *sql.DB }

func (r *Settings) All(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var out []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Values returns every stored setting as a key/value map.
func (r *Settings) Values(ctx context.Context) (map[string]string, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(all))
	for _, s := range all {
		values[s.Key] = s.Value
	}
	return values, nil
}

func (r *Settings) Grouped(ctx context.Context) (models.SettingsGroups, error) {
	values, err := r.Values(ctx)
	if err != nil {
		return models.SettingsGroups{}, err
	}
	return models.GroupSettings(values), nil
}

// Update writes a batch of settings in one transaction. Either every key
// is written or none is.
func (r *Settings) Update(ctx context.Context, updates []models.SettingUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	t := now()
	for _, u := range updates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO site_settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, u.Key, u.Value, t)
		if err != nil {
			return fmt.Errorf("upsert setting %s: %w", u.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const publicSettingsKey = "settings:public"

// SettingsCache keeps the public settings in memory between writes. Public
// pages read it on every request.
type SettingsCache struct {
	repo  *Settings
	cache *cache.Cache
}

func NewSettingsCache(repo *Settings, ttl time.Duration) *SettingsCache {
	return &SettingsCache{repo: repo, cache: cache.New(ttl, 2*ttl)}
}

// Public returns the public settings. When the database cannot be read the
// defaults are served and the error is returned alongside them.
func (c *SettingsCache) Public(ctx context.Context) (map[string]string, error) {
	if v, ok := c.cache.Get(publicSettingsKey); ok {
		return v.(map[string]string), nil
	}
	values, err := c.repo.Values(ctx)
	if err != nil {
		return models.PublicSettings(nil), err
	}
	pub := models.PublicSettings(values)
	c.cache.SetDefault(publicSettingsKey, pub)
	return pub, nil
}

// Value reads a single setting through the database, falling back to its
// default.
func (c *SettingsCache) Value(ctx context.Context, key string) string {
	values, err := c.repo.Values(ctx)
	if err != nil {
		values = nil
	}
	if v, ok := values[key]; ok {
		return v
	}
	for _, d := range models.DefaultSettings() {
		if d.Key == key {
			return d.Value
		}
	}
	return ""
}

func (c *SettingsCache) Invalidate() {
	c.cache.Delete(publicSettingsKey)
}
