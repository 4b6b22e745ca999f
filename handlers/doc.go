// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the JSON API behind the Golden Age Infotech site.

# Handler Types

Each handler is a struct built from its dependencies:

  - PublicHandler: published services, projects, blogs, testimonials, jobs
  - CareersHandler: applications (multipart with résumé), résumé parsing,
    admin review and CSV export
  - ContactHandler: contact form, admin inbox and CSV export
  - SettingsHandler: public settings, grouped admin view, batch update
  - AuthHandler: login, logout and the current admin
  - AdminHandler: dashboard counters and /health
  - UploadHandler: admin image uploads
  - BlogImporter: RSS/Atom import of posts as drafts

The admin sections that are plain table CRUD share one generic handler:

	services := handlers.NewResource("service", "services", st.Services)
	mux.HandleFunc("GET /api/admin/services", services.List)
	mux.HandleFunc("PUT /api/admin/services/{id}", services.Update)

# Listings

Every list endpoint accepts page (1-based), page_size (default 12, max 100),
category and search, and answers with

	{"items": [...], "total": 42, "page": 1, "page_size": 12}

Admin listings also accept status; an unknown status is a 400.

# Errors

Errors use the middleware.ErrorResponse envelope. Validation failures are
400 with the first bad field, missing records 404, duplicate user emails
and closed job positions 409, uploads over 5 MB 413 and unsupported file
types 415. A résumé that cannot be read is not an error: the parse
endpoint answers 200 with empty fields and a message asking the applicant
to fill in the form by hand.
*/
package handlers
