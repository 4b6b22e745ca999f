// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/realtime"
	"github.com/devpatel66/golden-sleek-vision/store"
)

type SettingsHandler struct {
	settings  *store.Settings
	cache     *store.SettingsCache
	publisher realtime.Publisher
}

func NewSettingsHandler(settings *store.Settings, cache *store.SettingsCache, publisher realtime.Publisher) *SettingsHandler {
	return &SettingsHandler{settings: settings, cache: cache, publisher: publisher}
}

// Public handles GET /api/settings/public. A failed read still answers
// with the defaults.
func (h *SettingsHandler) Public(w http.ResponseWriter, r *http.Request) {
	values, err := h.cache.Public(r.Context())
	if err != nil {
		slog.Warn("serving default settings", "error", err)
	}
	middleware.JSONResponse(w, http.StatusOK, values)
}

// Get handles GET /api/admin/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	groups, err := h.settings.Grouped(r.Context())
	if err != nil {
		storeError(w, err, "settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// Update handles PUT /api/admin/settings. The body is a list of
// {"key","value"} pairs saved all-or-nothing.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var updates []models.SettingUpdate
	if !decodeInput(w, r, &updates) {
		return
	}
	if len(updates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no settings to update")
		return
	}
	keys := make([]string, 0, len(updates))
	for _, u := range updates {
		if err := u.Validate(); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		keys = append(keys, u.Key)
	}

	if err := h.settings.Update(r.Context(), updates); err != nil {
		storeError(w, err, "settings")
		return
	}
	h.cache.Invalidate()

	if err := h.publisher.Publish(r.Context(), realtime.SettingsChanged(keys)); err != nil {
		slog.Warn("failed to announce settings change", "keys", keys, "error", err)
	}
	slog.Info("settings updated", "keys", keys)

	groups, err := h.settings.Grouped(r.Context())
	if err != nil {
		storeError(w, err, "settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// InvalidateOnChange returns a hook that drops the cached public settings
// whenever another instance announces a settings write.
func InvalidateOnChange(cache *store.SettingsCache) func(realtime.Event) {
	return func(e realtime.Event) {
		if e.Table == realtime.SettingsTable {
			cache.Invalidate()
		}
	}
}
