// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/devpatel66/golden-sleek-vision/media"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
)

func tooLarge(w http.ResponseWriter, limit int64) {
	middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("file is larger than %s", humanize.IBytes(uint64(limit))))
}

// parseMultipart caps the body at limit plus form overhead and parses it.
func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			tooLarge(w, limit)
			return false
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

// readFormFile returns the named file part once it is known to be within
// limit. Nothing is read from a part that is too large.
func readFormFile(w http.ResponseWriter, r *http.Request, field string, limit int64) ([]byte, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		middleware.ErrorResponse(w, http.StatusBadRequest, field+" is required")
		return nil, nil, false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, nil, false
	}
	defer file.Close()

	if header.Size > limit {
		tooLarge(w, limit)
		return nil, nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		slog.Error("failed to read upload", "field", field, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Could not read upload")
		return nil, nil, false
	}
	if int64(len(data)) > limit {
		tooLarge(w, limit)
		return nil, nil, false
	}
	return data, header, true
}

type UploadHandler struct {
	blobs media.BlobStore
}

func NewUploadHandler(blobs media.BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// Image handles POST /api/admin/uploads
func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, media.MaxImageSize) {
		return
	}
	data, header, ok := readFormFile(w, r, "file", media.MaxImageSize)
	if !ok {
		return
	}

	info, err := media.InspectImage(data)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, "only JPEG, PNG, GIF and WebP images are accepted")
		return
	}

	obj, err := h.blobs.Put(r.Context(), media.ImageKey(info.ContentType), bytes.NewReader(data), int64(len(data)), info.ContentType)
	if err != nil {
		slog.Error("failed to store image", "file", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	slog.Info("image uploaded",
		"key", obj.Key,
		"size", humanize.Bytes(uint64(obj.Size)),
		"dimensions", fmt.Sprintf("%dx%d", info.Width, info.Height),
	)
	middleware.JSONResponse(w, http.StatusCreated, models.UploadResponse{
		URL:         obj.URL,
		Key:         obj.Key,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	})
}
