// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/notify"
	"github.com/devpatel66/golden-sleek-vision/store"
)

type ContactHandler struct {
	contacts *store.Contacts
	alerts   *notify.Alerts
}

func NewContactHandler(contacts *store.Contacts, alerts *notify.Alerts) *ContactHandler {
	return &ContactHandler{contacts: contacts, alerts: alerts}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if !decodeInput(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.contacts.Create(r.Context(), in)
	if err != nil {
		storeError(w, err, "contact submission")
		return
	}

	slog.Info("contact submission received", "id", c.ID, "ip", middleware.GetClientIP(r))
	h.alerts.NewContact(r.Context(), c)
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// List handles GET /api/admin/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	f, page := pageFilter(r)
	if status := r.URL.Query().Get("status"); status != "" {
		if _, err := models.ParseContactStatus(status); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Status = status
	}

	items, total, err := h.contacts.List(r.Context(), f)
	if err != nil {
		storeError(w, err, "contact submission")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, listResponse(items, total, f, page))
}

// UpdateStatus handles PUT /api/admin/contacts/{id}/status
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.StatusUpdate
	if !decodeInput(w, r, &req) {
		return
	}
	status, err := models.ParseContactStatus(req.Status)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contacts.UpdateStatus(r.Context(), id, status); err != nil {
		storeError(w, err, "contact submission")
		return
	}
	c, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		storeError(w, err, "contact submission")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /api/admin/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		storeError(w, err, "contact submission")
		return
	}
	slog.Info("contact submission deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/admin/contacts/export.csv
func (h *ContactHandler) Export(w http.ResponseWriter, r *http.Request) {
	f := store.ListFilter{Status: r.URL.Query().Get("status")}
	items, err := collectAll(r.Context(), f, h.contacts.List)
	if err != nil {
		storeError(w, err, "contact submission")
		return
	}
	writeCSV(w, "contacts.csv", items)
}
