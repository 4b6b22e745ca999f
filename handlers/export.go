// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/gocarina/gocsv"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/store"
)

// collectAll pages through a listing until every matching row is read.
func collectAll[T any](ctx context.Context, f store.ListFilter, list func(context.Context, store.ListFilter) ([]T, int, error)) ([]T, error) {
	f.Limit = store.MaxPageSize
	f.Offset = 0

	all := []T{}
	for {
		items, total, err := list(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) == 0 || len(all) >= total {
			return all, nil
		}
		f.Offset += len(items)
	}
}

// writeCSV renders rows with their csv struct tags as an attachment.
func writeCSV[T any](w http.ResponseWriter, filename string, rows []T) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		slog.Error("failed to encode CSV", "file", filename, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
