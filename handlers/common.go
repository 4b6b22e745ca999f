// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/store"
)

// multipartOverhead is the slack allowed on top of a file limit for the
// other form fields and part headers.
const multipartOverhead = 512 << 10

// pageFilter reads page and page_size from the query string. Bad values
// fall back to the defaults.
func pageFilter(r *http.Request) (store.ListFilter, int) {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(q.Get("page_size"))
	if err != nil || size < 1 {
		size = store.DefaultPageSize
	}
	if size > store.MaxPageSize {
		size = store.MaxPageSize
	}

	return store.ListFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    size,
		Offset:   (page - 1) * size,
	}, page
}

func listResponse[T any](items []T, total int, f store.ListFilter, page int) models.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return models.ListResponse[T]{Items: items, Total: total, Page: page, PageSize: f.Limit}
}

// decodeInput parses a JSON body. Unknown enum values come back as a
// validation message rather than "Invalid JSON".
func decodeInput(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			middleware.ErrorResponse(w, http.StatusBadRequest, ve.Error())
			return false
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

// storeError maps repository errors onto responses. what names the record
// in messages and logs ("blog", "job position").
func storeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, what+" already exists")
	case errors.Is(err, store.ErrPositionClosed):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case models.IsValidationError(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("database error", "record", what, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
