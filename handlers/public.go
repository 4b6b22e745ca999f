// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/store"
)

// PublicHandler serves the read-only listings behind the marketing pages.
// Visitors only ever see published rows; projects are the exception and
// show everything past planning.
type PublicHandler struct {
	store *store.Store
}

func NewPublicHandler(st *store.Store) *PublicHandler {
	return &PublicHandler{store: st}
}

// Services handles GET /api/services
func (h *PublicHandler) Services(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	f.Status = string(models.ContentPublished)
	items, total, err := h.store.Services.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "service")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// Projects handles GET /api/projects
func (h *PublicHandler) Projects(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	f.ExcludeStatus = string(models.ProjectPlanning)
	items, total, err := h.store.Projects.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "project")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// Blogs handles GET /api/blogs
func (h *PublicHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	f.Status = string(models.ContentPublished)
	items, total, err := h.store.Blogs.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "blog")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// Blog handles GET /api/blogs/{id} and counts the view.
func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.store.Blogs.IncrementViews(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		// a lost view is not worth failing the read
		slog.Warn("failed to count blog view", "id", id, "error", err)
	}

	blog, err := h.store.Blogs.Get(r.Context(), id)
	if err != nil {
		storeError(w, err, "blog")
		return
	}
	if blog.Status != models.ContentPublished {
		middleware.ErrorResponse(w, http.StatusNotFound, "blog not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, blog)
}

// Testimonials handles GET /api/testimonials
func (h *PublicHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	f.Status = string(models.ContentPublished)
	items, total, err := h.store.Testimonials.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "testimonial")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// Jobs handles GET /api/careers/jobs
func (h *PublicHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	f.Status = string(models.ContentPublished)
	items, total, err := h.store.Positions.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "job position")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// Job handles GET /api/careers/jobs/{id}
func (h *PublicHandler) Job(w http.ResponseWriter, r *http.Request) {
	job, err := h.store.Positions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "job position")
		return
	}
	if job.Status != models.ContentPublished {
		middleware.ErrorResponse(w, http.StatusNotFound, "job position not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, job)
}
