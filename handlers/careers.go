// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/devpatel66/golden-sleek-vision/media"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/notify"
	"github.com/devpatel66/golden-sleek-vision/resume"
	"github.com/devpatel66/golden-sleek-vision/store"
)

// ResumeParseFailed is shown when nothing could be read from a résumé.
const ResumeParseFailed = "Could not read details from the résumé, please fill in the form manually"

var resumeExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
}

type ResumeParseResponse struct {
	resume.Fields
	Message string `json:"message,omitempty"`
}

type CareersHandler struct {
	store  *store.Store
	blobs  media.BlobStore
	alerts *notify.Alerts
}

func NewCareersHandler(st *store.Store, blobs media.BlobStore, alerts *notify.Alerts) *CareersHandler {
	return &CareersHandler{store: st, blobs: blobs, alerts: alerts}
}

func resumeTypeOK(w http.ResponseWriter, filename string) bool {
	if !resumeExtensions[strings.ToLower(filepath.Ext(filename))] {
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, "résumé must be a .pdf, .doc, .docx or .txt file")
		return false
	}
	return true
}

// ParseResume handles POST /api/careers/resume/parse. Oversized and
// unsupported files are refused before any extraction; everything else
// gets 200, with empty fields when nothing could be read.
func (h *CareersHandler) ParseResume(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, resume.MaxFileSize) {
		return
	}
	data, header, ok := readFormFile(w, r, "resume", resume.MaxFileSize)
	if !ok {
		return
	}
	if !resumeTypeOK(w, header.Filename) {
		return
	}

	fields := resume.Extract(bytes.NewReader(data), header.Filename, header.Header.Get("Content-Type"))
	resp := ResumeParseResponse{Fields: fields}
	if fields.Empty() {
		resp.Message = ResumeParseFailed
	}

	slog.Info("resume parsed", "file", header.Filename, "found_email", fields.Email != "")
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Apply handles POST /api/careers/jobs/{id}/applications
func (h *CareersHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	if !parseMultipart(w, r, resume.MaxFileSize) {
		return
	}
	data, header, ok := readFormFile(w, r, "resume", resume.MaxFileSize)
	if !ok {
		return
	}
	if !resumeTypeOK(w, header.Filename) {
		return
	}

	in := models.ApplicationInput{
		JobID:          jobID,
		FirstName:      strings.TrimSpace(r.FormValue("first_name")),
		LastName:       strings.TrimSpace(r.FormValue("last_name")),
		Email:          strings.TrimSpace(r.FormValue("email")),
		Phone:          strings.TrimSpace(r.FormValue("phone")),
		CoverLetter:    r.FormValue("cover_letter"),
		ResumeFileName: filepath.Base(header.Filename),
	}
	if err := in.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Check the position first so closed jobs never leave a stored file.
	job, err := h.store.Positions.Get(r.Context(), jobID)
	if err != nil {
		storeError(w, err, "job position")
		return
	}
	if job.Status != models.ContentPublished {
		storeError(w, store.ErrPositionClosed, "job position")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	obj, err := h.blobs.Put(r.Context(), media.ResumeKey(header.Filename), bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		slog.Error("failed to store resume", "job_id", jobID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store résumé")
		return
	}
	in.ResumeURL = obj.URL

	app, err := h.store.Applications.Submit(r.Context(), in)
	if err != nil {
		h.discard(obj.Key)
		storeError(w, err, "job position")
		return
	}

	slog.Info("application submitted", "job_id", jobID, "application_id", app.ID)
	h.alerts.NewApplication(r.Context(), app)
	middleware.JSONResponse(w, http.StatusCreated, app)
}

func (h *CareersHandler) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.blobs.Delete(ctx, key); err != nil {
		slog.Warn("failed to remove orphaned resume", "key", key, "error", err)
	}
}

// Applications handles GET /api/admin/careers/applications
func (h *CareersHandler) Applications(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	f.JobID = r.URL.Query().Get("job_id")
	if status := r.URL.Query().Get("status"); status != "" {
		if _, err := models.ParseApplicationStatus(status); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Status = status
	}

	items, total, err := h.store.Applications.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "application")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// UpdateApplicationStatus handles PUT /api/admin/careers/applications/{id}/status
func (h *CareersHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.StatusUpdate
	if !decodeInput(w, r, &req) {
		return
	}
	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Applications.UpdateStatus(r.Context(), id, status); err != nil {
		storeError(w, err, "application")
		return
	}
	app, err := h.store.Applications.Get(r.Context(), id)
	if err != nil {
		storeError(w, err, "application")
		return
	}

	slog.Info("application status updated", "id", id, "status", status)
	middleware.JSONResponse(w, http.StatusOK, app)
}

// DeleteApplication handles DELETE /api/admin/careers/applications/{id}
func (h *CareersHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Applications.Delete(r.Context(), id); err != nil {
		storeError(w, err, "application")
		return
	}
	slog.Info("application deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ExportApplications handles GET /api/admin/careers/applications/export.csv
func (h *CareersHandler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	f := store.ListFilter{JobID: r.URL.Query().Get("job_id"), Status: r.URL.Query().Get("status")}
	items, err := collectAll(r.Context(), f, h.store.Applications.List)
	if err != nil {
		storeError(w, err, "application")
		return
	}
	writeCSV(w, "applications.csv", items)
}
