// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/devpatel66/golden-sleek-vision/auth"
	"github.com/devpatel66/golden-sleek-vision/cliparse"
	"github.com/devpatel66/golden-sleek-vision/handlers"
	"github.com/devpatel66/golden-sleek-vision/media"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/notify"
	"github.com/devpatel66/golden-sleek-vision/realtime"
	"github.com/devpatel66/golden-sleek-vision/store"
	"github.com/devpatel66/golden-sleek-vision/web"
)

// Deps is everything the routes need. Built once in main.
type Deps struct {
	Config   cliparse.Config
	Store    *store.Store
	Settings *store.SettingsCache
	Auth     *auth.Authenticator
	Blobs    media.BlobStore
	Alerts   *notify.Alerts
	Renderer *web.Renderer

	// Hub feeds the websocket stream. Publisher defaults to Hub; set it to
	// a realtime.RedisBroker to fan out across instances.
	Hub       *realtime.Hub
	Publisher realtime.Publisher

	// LocalMedia is served under Config.MediaURLPath when uploads are kept
	// on disk.
	LocalMedia *media.LocalStore
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	cfg := d.Config
	secure := strings.HasPrefix(cfg.PublicBaseURL, "https://")

	publisher := d.Publisher
	if publisher == nil {
		publisher = d.Hub
	}

	// Initialize handlers
	public := handlers.NewPublicHandler(d.Store)
	authH := handlers.NewAuthHandler(d.Auth, secure)
	adminH := handlers.NewAdminHandler(d.Store)
	careers := handlers.NewCareersHandler(d.Store, d.Blobs, d.Alerts)
	contact := handlers.NewContactHandler(d.Store.Contacts, d.Alerts)
	settings := handlers.NewSettingsHandler(d.Store.Settings, d.Settings, publisher)
	uploads := handlers.NewUploadHandler(d.Blobs)
	importer := handlers.NewBlogImporter(d.Store.Blogs)
	pages := web.NewPages(d.Store, d.Settings, d.Auth, d.Alerts, d.Renderer, secure)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(h))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireAdmin(d.Auth, h))
	}
	adminPage := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireAdminPage(d.Auth, h))
	}

	// Health check
	handle("GET /health", adminH.Health)

	// Public API
	handle("GET /api/services", public.Services)
	handle("GET /api/projects", public.Projects)
	handle("GET /api/blogs", public.Blogs)
	handle("GET /api/blogs/{id}", public.Blog)
	handle("GET /api/testimonials", public.Testimonials)
	handle("GET /api/careers/jobs", public.Jobs)
	handle("GET /api/careers/jobs/{id}", public.Job)
	handle("POST /api/careers/jobs/{id}/applications", careers.Apply)
	handle("POST /api/careers/resume/parse", careers.ParseResume)
	handle("POST /api/contact", contact.Submit)
	handle("GET /api/settings/public", settings.Public)
	handle("GET /api/settings/stream", realtime.ServeWS(d.Hub, cfg.AllowedOrigins))

	// Session
	handle("POST /api/auth/login", authH.Login)
	handle("POST /api/auth/logout", authH.Logout)
	admin("GET /api/auth/me", authH.Me)

	// Admin API
	admin("GET /api/admin/dashboard", adminH.Dashboard)
	crud(admin, "/api/admin/services", handlers.NewResource("service", "services", d.Store.Services))
	crud(admin, "/api/admin/projects", handlers.NewResource("project", "projects", d.Store.Projects))
	crud(admin, "/api/admin/blogs", handlers.NewResource("blog", "blogs", d.Store.Blogs))
	crud(admin, "/api/admin/content", handlers.NewResource("content", "content", d.Store.Content))
	crud(admin, "/api/admin/testimonials", handlers.NewResource("testimonial", "testimonials", d.Store.Testimonials))
	crud(admin, "/api/admin/users", handlers.NewResource("user", "users", d.Store.Users))
	crud(admin, "/api/admin/careers/jobs", handlers.NewResource("job position", "job_positions", d.Store.Positions))
	admin("POST /api/admin/blogs/import", importer.Import)
	admin("POST /api/admin/uploads", uploads.Image)

	admin("GET /api/admin/careers/applications", careers.Applications)
	admin("GET /api/admin/careers/applications/export.csv", careers.ExportApplications)
	admin("PUT /api/admin/careers/applications/{id}/status", careers.UpdateApplicationStatus)
	admin("DELETE /api/admin/careers/applications/{id}", careers.DeleteApplication)

	admin("GET /api/admin/contacts", contact.List)
	admin("GET /api/admin/contacts/export.csv", contact.Export)
	admin("PUT /api/admin/contacts/{id}/status", contact.UpdateStatus)
	admin("DELETE /api/admin/contacts/{id}", contact.Delete)

	admin("GET /api/admin/settings", settings.Get)
	admin("PUT /api/admin/settings", settings.Update)

	// Uploaded files kept on disk
	if d.LocalMedia != nil {
		prefix := cfg.MediaURLPath
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(d.LocalMedia.Dir())))
		mux.Handle("GET "+prefix, files)
	}

	// Public pages
	handle("GET /{$}", pages.Home)
	handle("GET /about", pages.About)
	handle("GET /services", pages.Services)
	handle("GET /portfolio", pages.Portfolio)
	handle("GET /blog", pages.Blog)
	handle("GET /blog/{id}", pages.BlogPost)
	handle("GET /careers", pages.Careers)
	handle("GET /careers/{id}", pages.CareerJob)
	handle("GET /contact", pages.Contact)
	handle("POST /contact", pages.SubmitContact)
	handle("GET /login", pages.LoginForm)
	handle("POST /login", pages.Login)
	handle("POST /logout", pages.Logout)

	// Admin pages
	adminPage("GET /admin", pages.Dashboard)
	adminPage("GET /admin/settings", pages.Settings)
	adminPage("GET /admin/{section}", pages.AdminSection)

	// Everything else
	handle("GET /", pages.NotFound)

	return chimw.RequestID(chimw.RealIP(chimw.Recoverer(
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		})(mux),
	)))
}

func crud[T any, In handlers.Validator](register func(string, http.HandlerFunc), base string, res *handlers.Resource[T, In]) {
	register("GET "+base, res.List)
	register("POST "+base, res.Create)
	register("GET "+base+"/{id}", res.Get)
	register("PUT "+base+"/{id}", res.Update)
	register("DELETE "+base+"/{id}", res.Delete)
}
