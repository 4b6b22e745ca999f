// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const layoutName = "layout"

// Renderer holds the parsed page templates. Every page is rendered on its
// own and then placed into the layout as {{ content }}.
type Renderer struct {
	engine *liquid.Engine
	layout *liquid.Template
	pages  map[string]*liquid.Template
}

func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()
	registerFilters(engine)

	names, err := fs.Glob(templateFS, "templates/*.liquid")
	if err != nil {
		return nil, err
	}

	r := &Renderer{engine: engine, pages: make(map[string]*liquid.Template, len(names))}
	for _, name := range names {
		src, err := templateFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", name, perr)
		}
		key := strings.TrimSuffix(path.Base(name), ".liquid")
		if key == layoutName {
			r.layout = tpl
			continue
		}
		r.pages[key] = tpl
	}
	if r.layout == nil {
		return nil, fmt.Errorf("missing %s template", layoutName)
	}
	return r, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

// Render writes page inside the layout. Render errors become a bare 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, b liquid.Bindings) {
	tpl, ok := r.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, rerr := tpl.Render(b)
	if rerr != nil {
		slog.Error("failed to render page", "page", page, "error", rerr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	b["content"] = string(body)

	out, rerr := r.layout.Render(b)
	if rerr != nil {
		slog.Error("failed to render layout", "page", page, "error", rerr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		slog.Warn("failed to write page", "page", page, "error", err)
	}
}

func registerFilters(engine *liquid.Engine) {
	// "3 days ago"
	engine.RegisterFilter("ago", func(s string) string {
		t, ok := parseTime(s)
		if !ok {
			return ""
		}
		return humanize.Time(t)
	})
	engine.RegisterFilter("short_date", func(s string) string {
		t, ok := parseTime(s)
		if !ok {
			return ""
		}
		return t.Format("Jan 2, 2006")
	})
	engine.RegisterFilter("stars", func(n int) string {
		n = max(0, min(n, 5))
		return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
	})
	// in-progress -> In Progress
	engine.RegisterFilter("label", func(s string) string {
		words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(s))
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		return strings.Join(words, " ")
	})
	engine.RegisterFilter("comma", func(n int64) string {
		return humanize.Comma(n)
	})
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// bind converts a value to the plain maps and slices templates read, so
// pages see the same field names as the JSON API.
func bind(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to bind template value", "error", err)
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
