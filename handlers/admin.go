// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/store"
)

type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{store: st}
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Dashboard(r.Context())
	if err != nil {
		storeError(w, err, "dashboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Health handles GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		middleware.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
