// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/store"
)

// Repository is the table API every admin section shares.
type Repository[T any, In any] interface {
	List(ctx context.Context, f store.ListFilter) ([]T, int, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id string, in In) (T, error)
	Delete(ctx context.Context, id string) error
}

type Validator interface {
	Validate() error
}

// Resource serves list/get/create/update/delete for one admin table.
type Resource[T any, In Validator] struct {
	name  string
	table string
	repo  Repository[T, In]
}

// NewResource builds the handler set for table; name is the singular used
// in messages ("service", "job position").
func NewResource[T any, In Validator](name, table string, repo Repository[T, In]) *Resource[T, In] {
	return &Resource[T, In]{name: name, table: table, repo: repo}
}

// List handles GET /api/admin/{table}
func (h *Resource[T, In]) List(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidStatus(h.table, status) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown status "+status)
			return
		}
		f.Status = status
	}

	items, total, err := h.repo.List(r.Context(), f)
	if err != nil {
		storeError(w, err, h.name)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// Get handles GET /api/admin/{table}/{id}
func (h *Resource[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, h.name)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, item)
}

// Create handles POST /api/admin/{table}
func (h *Resource[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if !decodeInput(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.repo.Create(r.Context(), in)
	if err != nil {
		storeError(w, err, h.name)
		return
	}

	slog.Info(h.name+" created", "table", h.table)
	middleware.JSONResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/admin/{table}/{id}
func (h *Resource[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in In
	if !decodeInput(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		storeError(w, err, h.name)
		return
	}

	slog.Info(h.name+" updated", "table", h.table, "id", id)
	middleware.JSONResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/{table}/{id}
func (h *Resource[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		storeError(w, err, h.name)
		return
	}

	slog.Info(h.name+" deleted", "table", h.table, "id", id)
	w.WriteHeader(http.StatusNoContent)
}
