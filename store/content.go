// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devpatel66/golden-sleek-vision/models"
)

// Services

const serviceColumns = "id, title, description, category, status, created_at, updated_at"

type Services struct{ db *sql.DB }

func scanService(s scanner) (models.Service, error) {
	var v models.Service
	err := s.Scan(&v.ID, &v.Title, &v.Description, &v.Category, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *Services) List(ctx context.Context, f ListFilter) ([]models.Service, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.eq("category", f.Category)
	w.search(f.Search, "title", "description")
	return listQuery(ctx, r.db, "services", serviceColumns, w, f, scanService)
}

func (r *Services) Get(ctx context.Context, id string) (models.Service, error) {
	return getByID(ctx, r.db, "services", serviceColumns, id, scanService)
}

func (r *Services) Create(ctx context.Context, in models.ServiceInput) (models.Service, error) {
	t := now()
	v := models.Service{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      orDefault(in.Status, models.ContentDraft),
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, title, description, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.ID, v.Title, v.Description, v.Category, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.Service{}, fmt.Errorf("insert service: %w", err)
	}
	return v, nil
}

func (r *Services) Update(ctx context.Context, id string, in models.ServiceInput) (models.Service, error) {
	err := execOne(ctx, r.db, `
		UPDATE services SET title = $1, description = $2, category = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, in.Title, in.Description, in.Category, orDefault(in.Status, models.ContentDraft), now(), id)
	if err != nil {
		return models.Service{}, wrapUpdate("service", err)
	}
	return r.Get(ctx, id)
}

func (r *Services) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "services", id)
}

// Projects

const projectColumns = "id, title, description, category, client, image_url, live_url, status, created_at, updated_at"

type Projects struct{ db *sql.DB }

func scanProject(s scanner) (models.Project, error) {
	var v models.Project
	err := s.Scan(&v.ID, &v.Title, &v.Description, &v.Category, &v.Client, &v.ImageURL, &v.LiveURL,
		&v.Status, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *Projects) List(ctx context.Context, f ListFilter) ([]models.Project, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.notEq("status", f.ExcludeStatus)
	w.eq("category", f.Category)
	w.search(f.Search, "title", "client", "description")
	return listQuery(ctx, r.db, "projects", projectColumns, w, f, scanProject)
}

func (r *Projects) Get(ctx context.Context, id string) (models.Project, error) {
	return getByID(ctx, r.db, "projects", projectColumns, id, scanProject)
}

func (r *Projects) Create(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	t := now()
	v := models.Project{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Client:      in.Client,
		ImageURL:    in.ImageURL,
		LiveURL:     in.LiveURL,
		Status:      orDefault(in.Status, models.ProjectPlanning),
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, category, client, image_url, live_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, v.ID, v.Title, v.Description, v.Category, v.Client, v.ImageURL, v.LiveURL, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return v, nil
}

func (r *Projects) Update(ctx context.Context, id string, in models.ProjectInput) (models.Project, error) {
	err := execOne(ctx, r.db, `
		UPDATE projects SET title = $1, description = $2, category = $3, client = $4, image_url = $5,
			live_url = $6, status = $7, updated_at = $8
		WHERE id = $9
	`, in.Title, in.Description, in.Category, in.Client, in.ImageURL, in.LiveURL,
		orDefault(in.Status, models.ProjectPlanning), now(), id)
	if err != nil {
		return models.Project{}, wrapUpdate("project", err)
	}
	return r.Get(ctx, id)
}

func (r *Projects) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "projects", id)
}

// Blogs

const blogColumns = "id, title, excerpt, content, author, category, image_url, status, views, published_at, created_at, updated_at"

type Blogs struct{ db *sql.DB }

func scanBlog(s scanner) (models.Blog, error) {
	var v models.Blog
	var published sql.NullTime
	err := s.Scan(&v.ID, &v.Title, &v.Excerpt, &v.Content, &v.Author, &v.Category, &v.ImageURL,
		&v.Status, &v.Views, &published, &v.CreatedAt, &v.UpdatedAt)
	if published.Valid {
		v.PublishedAt = &published.Time
	}
	return v, err
}

func (r *Blogs) List(ctx context.Context, f ListFilter) ([]models.Blog, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.eq("category", f.Category)
	w.search(f.Search, "title", "excerpt", "author")
	return listQuery(ctx, r.db, "blogs", blogColumns, w, f, scanBlog)
}

func (r *Blogs) Get(ctx context.Context, id string) (models.Blog, error) {
	return getByID(ctx, r.db, "blogs", blogColumns, id, scanBlog)
}

func (r *Blogs) Create(ctx context.Context, in models.BlogInput) (models.Blog, error) {
	t := now()
	v := models.Blog{
		ID:        newID(),
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Author:    in.Author,
		Category:  in.Category,
		ImageURL:  in.ImageURL,
		Status:    orDefault(in.Status, models.ContentDraft),
		CreatedAt: t,
		UpdatedAt: t,
	}
	if v.Status == models.ContentPublished {
		v.PublishedAt = &t
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blogs (id, title, excerpt, content, author, category, image_url, status, views, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, $11)
	`, v.ID, v.Title, v.Excerpt, v.Content, v.Author, v.Category, v.ImageURL, v.Status, v.PublishedAt, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.Blog{}, fmt.Errorf("insert blog: %w", err)
	}
	return v, nil
}

// Update replaces every editable field. published_at is set the first time
// a post is published and kept afterwards.
func (r *Blogs) Update(ctx context.Context, id string, in models.BlogInput) (models.Blog, error) {
	t := now()
	status := orDefault(in.Status, models.ContentDraft)
	var publishedAt sql.NullTime
	if status == models.ContentPublished {
		publishedAt = sql.NullTime{Time: t, Valid: true}
	}
	err := execOne(ctx, r.db, `
		UPDATE blogs SET title = $1, excerpt = $2, content = $3, author = $4, category = $5,
			image_url = $6, status = $7, published_at = COALESCE(published_at, $8), updated_at = $9
		WHERE id = $10
	`, in.Title, in.Excerpt, in.Content, in.Author, in.Category, in.ImageURL, status, publishedAt, t, id)
	if err != nil {
		return models.Blog{}, wrapUpdate("blog", err)
	}
	return r.Get(ctx, id)
}

func (r *Blogs) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "blogs", id)
}

// IncrementViews bumps the public view counter of a published post.
// TitleExists reports whether a post with this title is already stored.
// Titles match exactly or ignoring ASCII case.
func (r *Blogs) TitleExists(ctx context.Context, title string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM blogs WHERE title = $1 OR LOWER(title) = LOWER($1) LIMIT 1`, title).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check blog title: %w", err)
	}
	return true, nil
}

func (r *Blogs) IncrementViews(ctx context.Context, id string) error {
	err := execOne(ctx, r.db, `UPDATE blogs SET views = views + 1 WHERE id = $1 AND status = $2`,
		id, models.ContentPublished)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("increment blog views: %w", err)
	}
	return err
}

// Content items

const contentColumns = "id, title, content, author, status, created_at, updated_at"

type ContentItems struct{ db *sql.DB }

func scanContent(s scanner) (models.Content, error) {
	var v models.Content
	err := s.Scan(&v.ID, &v.Title, &v.Content, &v.Author, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *ContentItems) List(ctx context.Context, f ListFilter) ([]models.Content, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.search(f.Search, "title", "author")
	return listQuery(ctx, r.db, "content", contentColumns, w, f, scanContent)
}

func (r *ContentItems) Get(ctx context.Context, id string) (models.Content, error) {
	return getByID(ctx, r.db, "content", contentColumns, id, scanContent)
}

func (r *ContentItems) Create(ctx context.Context, in models.ContentInput) (models.Content, error) {
	t := now()
	v := models.Content{
		ID:        newID(),
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		Status:    orDefault(in.Status, models.ContentDraft),
		CreatedAt: t,
		UpdatedAt: t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content (id, title, content, author, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.ID, v.Title, v.Content, v.Author, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.Content{}, fmt.Errorf("insert content: %w", err)
	}
	return v, nil
}

func (r *ContentItems) Update(ctx context.Context, id string, in models.ContentInput) (models.Content, error) {
	err := execOne(ctx, r.db, `
		UPDATE content SET title = $1, content = $2, author = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, in.Title, in.Content, in.Author, orDefault(in.Status, models.ContentDraft), now(), id)
	if err != nil {
		return models.Content{}, wrapUpdate("content", err)
	}
	return r.Get(ctx, id)
}

func (r *ContentItems) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "content", id)
}

// Testimonials

const testimonialColumns = "id, name, position, company, content, rating, image_url, status, created_at, updated_at"

type Testimonials struct{ db *sql.DB }

func scanTestimonial(s scanner) (models.Testimonial, error) {
	var v models.Testimonial
	err := s.Scan(&v.ID, &v.Name, &v.Position, &v.Company, &v.Content, &v.Rating, &v.ImageURL,
		&v.Status, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *Testimonials) List(ctx context.Context, f ListFilter) ([]models.Testimonial, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.search(f.Search, "name", "company", "content")
	return listQuery(ctx, r.db, "testimonials", testimonialColumns, w, f, scanTestimonial)
}

func (r *Testimonials) Get(ctx context.Context, id string) (models.Testimonial, error) {
	return getByID(ctx, r.db, "testimonials", testimonialColumns, id, scanTestimonial)
}

func (r *Testimonials) Create(ctx context.Context, in models.TestimonialInput) (models.Testimonial, error) {
	t := now()
	v := models.Testimonial{
		ID:        newID(),
		Name:      in.Name,
		Position:  in.Position,
		Company:   in.Company,
		Content:   in.Content,
		Rating:    rating(in.Rating),
		ImageURL:  in.ImageURL,
		Status:    orDefault(in.Status, models.ContentDraft),
		CreatedAt: t,
		UpdatedAt: t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO testimonials (id, name, position, company, content, rating, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, v.ID, v.Name, v.Position, v.Company, v.Content, v.Rating, v.ImageURL, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.Testimonial{}, fmt.Errorf("insert testimonial: %w", err)
	}
	return v, nil
}

func (r *Testimonials) Update(ctx context.Context, id string, in models.TestimonialInput) (models.Testimonial, error) {
	err := execOne(ctx, r.db, `
		UPDATE testimonials SET name = $1, position = $2, company = $3, content = $4, rating = $5,
			image_url = $6, status = $7, updated_at = $8
		WHERE id = $9
	`, in.Name, in.Position, in.Company, in.Content, rating(in.Rating), in.ImageURL,
		orDefault(in.Status, models.ContentDraft), now(), id)
	if err != nil {
		return models.Testimonial{}, wrapUpdate("testimonial", err)
	}
	return r.Get(ctx, id)
}

func (r *Testimonials) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "testimonials", id)
}

func rating(n int) int {
	if n == 0 {
		return 5
	}
	return n
}

func wrapUpdate(what string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("update %s: %w", what, err)
}
