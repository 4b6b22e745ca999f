// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/store"
)

const (
	defaultImportLimit = 10
	maxImportLimit     = 50
	excerptLength      = 200
	feedTimeout        = 15 * time.Second
)

var htmlTags = regexp.MustCompile(`<[^>]*>`)

type ImportResponse struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Items    []models.Blog `json:"items"`
}

// BlogImporter copies posts from an RSS or Atom feed into the blog as
// drafts, skipping titles that already exist.
type BlogImporter struct {
	blogs  *store.Blogs
	parser *gofeed.Parser
}

func NewBlogImporter(blogs *store.Blogs) *BlogImporter {
	return &BlogImporter{blogs: blogs, parser: gofeed.NewParser()}
}

// Import handles POST /api/admin/blogs/import
func (h *BlogImporter) Import(w http.ResponseWriter, r *http.Request) {
	var req models.ImportFeedRequest
	if !decodeInput(w, r, &req) {
		return
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "url must be an http or https address")
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultImportLimit
	}
	limit = min(limit, maxImportLimit)

	ctx, cancel := context.WithTimeout(r.Context(), feedTimeout)
	defer cancel()
	feed, err := h.parser.ParseURLWithContext(req.URL, ctx)
	if err != nil {
		slog.Warn("failed to fetch feed", "url", req.URL, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Could not read the feed")
		return
	}

	resp := ImportResponse{Items: []models.Blog{}}
	for _, item := range feed.Items {
		if resp.Imported >= limit {
			break
		}
		in := blogFromItem(feed, item, req.Category)
		if in.Validate() != nil {
			resp.Skipped++
			continue
		}

		exists, err := h.blogs.TitleExists(r.Context(), in.Title)
		if err != nil {
			storeError(w, err, "blog")
			return
		}
		if exists {
			resp.Skipped++
			continue
		}

		blog, err := h.blogs.Create(r.Context(), in)
		if err != nil {
			storeError(w, err, "blog")
			return
		}
		resp.Items = append(resp.Items, blog)
		resp.Imported++
	}

	slog.Info("feed imported", "url", req.URL, "imported", resp.Imported, "skipped", resp.Skipped)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func blogFromItem(feed *gofeed.Feed, item *gofeed.Item, category string) models.BlogInput {
	in := models.BlogInput{
		Title:   strings.TrimSpace(item.Title),
		Excerpt: excerpt(item.Description),
		Content: item.Content,
		Status:  models.ContentDraft,
	}
	if in.Content == "" {
		in.Content = item.Description
	}
	if in.Excerpt == "" {
		in.Excerpt = excerpt(in.Content)
	}

	switch {
	case len(item.Authors) > 0 && item.Authors[0].Name != "":
		in.Author = item.Authors[0].Name
	case item.Author != nil && item.Author.Name != "":
		in.Author = item.Author.Name
	default:
		in.Author = feed.Title
	}

	in.Category = category
	if in.Category == "" && len(item.Categories) > 0 {
		in.Category = item.Categories[0]
	}
	if in.Category == "" {
		in.Category = "General"
	}

	if item.Image != nil {
		in.ImageURL = item.Image.URL
	} else {
		for _, enc := range item.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				in.ImageURL = enc.URL
				break
			}
		}
	}
	return in
}

// excerpt strips markup and cuts at a word boundary.
func excerpt(s string) string {
	text := strings.Join(strings.Fields(html.UnescapeString(htmlTags.ReplaceAllString(s, " "))), " ")
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	cut := string(runes[:excerptLength])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
