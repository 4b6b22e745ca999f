// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the site.

# Route Registration

NewRouter wires every handler from a Deps value built in main:

	h := router.NewRouter(router.Deps{Config: cfg, Store: st, ...})

The returned handler is a Go 1.22 ServeMux wrapped in chi's RequestID,
RealIP and Recoverer middleware and go-chi/cors. Every route is logged
through middleware.WithLogging.

# Endpoints

Pages (HTML):

	GET  /, /about, /services, /portfolio, /blog, /blog/{id}
	GET  /careers, /careers/{id}, /contact, /login
	POST /contact, /login, /logout
	GET  /admin, /admin/settings, /admin/{section}    - session required

Public API:

	GET  /health
	GET  /api/services, /api/projects, /api/blogs, /api/blogs/{id}
	GET  /api/testimonials, /api/careers/jobs, /api/careers/jobs/{id}
	GET  /api/settings/public
	GET  /api/settings/stream                          - websocket
	POST /api/contact
	POST /api/careers/jobs/{id}/applications           - multipart
	POST /api/careers/resume/parse                     - multipart
	POST /api/auth/login, /api/auth/logout

Admin API (admin_session cookie required, 401 otherwise):

	GET /api/auth/me, /api/admin/dashboard
	GET|POST /api/admin/{services,projects,blogs,content,testimonials,users,careers/jobs}
	GET|PUT|DELETE /api/admin/.../{id}
	GET /api/admin/careers/applications[/export.csv]
	PUT /api/admin/careers/applications/{id}/status
	GET /api/admin/contacts[/export.csv]
	PUT /api/admin/contacts/{id}/status
	GET|PUT /api/admin/settings
	POST /api/admin/uploads, /api/admin/blogs/import

When uploads are kept on disk the files are served under MEDIA_URL_PATH.
*/
package router
