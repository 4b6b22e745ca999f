// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/osteele/liquid"

	"github.com/devpatel66/golden-sleek-vision/auth"
	"github.com/devpatel66/golden-sleek-vision/handlers"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/notify"
	"github.com/devpatel66/golden-sleek-vision/store"
)

const blogPageSize = 9

// Pages serves the server-rendered public site and admin area.
type Pages struct {
	store    *store.Store
	settings *store.SettingsCache
	authn    *auth.Authenticator
	alerts   *notify.Alerts
	render   *Renderer
	secure   bool
}

func NewPages(st *store.Store, settings *store.SettingsCache, authn *auth.Authenticator, alerts *notify.Alerts, render *Renderer, secure bool) *Pages {
	return &Pages{
		store:    st,
		settings: settings,
		authn:    authn,
		alerts:   alerts,
		render:   render,
		secure:   secure,
	}
}

// bindings returns the values every page sees: site settings, the active
// nav entry and the signed-in admin, if any.
func (p *Pages) bindings(r *http.Request, nav string) liquid.Bindings {
	site, err := p.settings.Public(r.Context())
	if err != nil {
		slog.Warn("serving default site settings", "error", err)
	}
	b := liquid.Bindings{
		"site": site,
		"nav":  nav,
		"year": time.Now().Year(),
	}

	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		s, err = p.authn.Resolve(r.Context(), middleware.SessionToken(r))
		ok = err == nil
	}
	if ok {
		b["user"] = bind(s.User)
	}
	return b
}

func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("page query failed", "path", r.URL.Path, "error", err)
	b := p.bindings(r, "")
	b["title"] = "Something went wrong"
	p.render.Render(w, http.StatusInternalServerError, "error", b)
}

// NotFound renders the 404 page.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	b := p.bindings(r, "")
	b["title"] = "Page not found"
	p.render.Render(w, http.StatusNotFound, "not_found", b)
}

func published() store.ListFilter {
	return store.ListFilter{Status: string(models.ContentPublished)}
}

// Home handles GET /
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f := published()
	f.Limit = 6
	services, _, err := p.store.Services.List(ctx, f)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	projects, _, err := p.store.Projects.List(ctx, store.ListFilter{ExcludeStatus: string(models.ProjectPlanning), Limit: 3})
	if err != nil {
		p.fail(w, r, err)
		return
	}
	f.Limit = 3
	testimonials, _, err := p.store.Testimonials.List(ctx, f)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	blogs, _, err := p.store.Blogs.List(ctx, f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "home")
	b["services"] = bind(services)
	b["projects"] = bind(projects)
	b["testimonials"] = bind(testimonials)
	b["blogs"] = bind(blogs)
	p.render.Render(w, http.StatusOK, "home", b)
}

// About handles GET /about
func (p *Pages) About(w http.ResponseWriter, r *http.Request) {
	f := published()
	f.Limit = store.MaxPageSize
	content, _, err := p.store.Content.List(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	f.Limit = 6
	testimonials, _, err := p.store.Testimonials.List(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "about")
	b["title"] = "About us"
	b["sections"] = bind(content)
	b["testimonials"] = bind(testimonials)
	p.render.Render(w, http.StatusOK, "about", b)
}

// Services handles GET /services
func (p *Pages) Services(w http.ResponseWriter, r *http.Request) {
	f := published()
	f.Limit = store.MaxPageSize
	f.Category = r.URL.Query().Get("category")
	services, _, err := p.store.Services.List(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "services")
	b["title"] = "Services"
	b["category"] = f.Category
	b["services"] = bind(services)
	p.render.Render(w, http.StatusOK, "services", b)
}

// Portfolio handles GET /portfolio. Planned projects stay hidden.
func (p *Pages) Portfolio(w http.ResponseWriter, r *http.Request) {
	f := store.ListFilter{
		ExcludeStatus: string(models.ProjectPlanning),
		Category:      r.URL.Query().Get("category"),
		Limit:         store.MaxPageSize,
	}
	projects, _, err := p.store.Projects.List(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "portfolio")
	b["title"] = "Portfolio"
	b["category"] = f.Category
	b["projects"] = bind(projects)
	p.render.Render(w, http.StatusOK, "portfolio", b)
}

// Blog handles GET /blog with search, category and page parameters.
func (p *Pages) Blog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	f := published()
	f.Search = strings.TrimSpace(q.Get("search"))
	f.Category = q.Get("category")
	f.Limit = blogPageSize
	f.Offset = (page - 1) * blogPageSize

	posts, total, err := p.store.Blogs.List(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "blog")
	b["title"] = "Blog"
	b["posts"] = bind(posts)
	b["search"] = f.Search
	b["category"] = f.Category
	b["page"] = page
	b["total"] = total
	if page > 1 {
		b["prev_page"] = page - 1
	}
	if page*blogPageSize < total {
		b["next_page"] = page + 1
	}
	p.render.Render(w, http.StatusOK, "blog", b)
}

// BlogPost handles GET /blog/{id} and counts the view.
func (p *Pages) BlogPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	post, err := p.store.Blogs.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && post.Status != models.ContentPublished) {
		p.NotFound(w, r)
		return
	}
	if err != nil {
		p.fail(w, r, err)
		return
	}

	if err := p.store.Blogs.IncrementViews(r.Context(), id); err != nil {
		slog.Warn("failed to count blog view", "id", id, "error", err)
	} else {
		post.Views++
	}

	b := p.bindings(r, "blog")
	b["title"] = post.Title
	b["post"] = bind(post)
	p.render.Render(w, http.StatusOK, "blog_post", b)
}

// Careers handles GET /careers
func (p *Pages) Careers(w http.ResponseWriter, r *http.Request) {
	f := published()
	f.Limit = store.MaxPageSize
	jobs, _, err := p.store.Positions.List(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "careers")
	b["title"] = "Careers"
	b["jobs"] = bind(jobs)
	p.render.Render(w, http.StatusOK, "careers", b)
}

// CareerJob handles GET /careers/{id}. The application form posts to the
// JSON API.
func (p *Pages) CareerJob(w http.ResponseWriter, r *http.Request) {
	job, err := p.store.Positions.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && job.Status != models.ContentPublished) {
		p.NotFound(w, r)
		return
	}
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "careers")
	b["title"] = job.Title
	b["job"] = bind(job)
	p.render.Render(w, http.StatusOK, "career_job", b)
}

// Contact handles GET /contact
func (p *Pages) Contact(w http.ResponseWriter, r *http.Request) {
	b := p.bindings(r, "contact")
	b["title"] = "Contact"
	b["sent"] = r.URL.Query().Get("sent") == "1"
	p.render.Render(w, http.StatusOK, "contact", b)
}

// SubmitContact handles POST /contact and redirects back on success.
func (p *Pages) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, middleware.MaxJSONBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	in := models.ContactInput{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	if err := in.Validate(); err != nil {
		b := p.bindings(r, "contact")
		b["title"] = "Contact"
		b["error"] = err.Error()
		b["form"] = bind(in)
		p.render.Render(w, http.StatusBadRequest, "contact", b)
		return
	}

	c, err := p.store.Contacts.Create(r.Context(), in)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	slog.Info("contact submission received", "id", c.ID, "ip", middleware.GetClientIP(r))
	p.alerts.NewContact(r.Context(), c)

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

// LoginForm handles GET /login
func (p *Pages) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if _, err := p.authn.Resolve(r.Context(), middleware.SessionToken(r)); err == nil {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	b := p.bindings(r, "login")
	b["title"] = "Sign in"
	b["next"] = next
	p.render.Render(w, http.StatusOK, "login", b)
}

// Login handles POST /login
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, middleware.MaxJSONBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	next := safeNext(r.PostFormValue("next"))

	s, err := p.authn.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Invalid email or password"
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("failed to create session", "error", err)
			status, msg = http.StatusInternalServerError, "Could not sign in, please try again"
		} else {
			slog.Warn("failed login", "email", email, "ip", middleware.GetClientIP(r))
		}
		b := p.bindings(r, "login")
		b["title"] = "Sign in"
		b["next"] = next
		b["email"] = email
		b["error"] = msg
		p.render.Render(w, status, "login", b)
		return
	}

	handlers.SetSessionCookie(w, s, p.secure)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles POST /logout
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	if err := p.authn.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		slog.Warn("failed to delete session", "error", err)
	}
	handlers.ClearSessionCookie(w, p.secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/admin"
	}
	return next
}
