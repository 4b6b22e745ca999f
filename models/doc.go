// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and response types for the site.

# Domain Types

One struct per table:

  - Service, Project, Blog, Content, Testimonial
  - JobPosition, JobApplication
  - ContactSubmission
  - User
  - Setting (key/value)

# Status Enums

Status columns are closed string types. Unknown values are rejected while
decoding JSON, so a handler never sees them:

	ContentStatus     draft | published | archived
	ProjectStatus     planning | in-progress | completed | on-hold
	ApplicationStatus pending | reviewed | interviewed | rejected | hired
	JobType           full-time | part-time | contract | internship
	ContactStatus     new | read | replied | archived
	UserRole          admin | user
	UserStatus        active | inactive

Query-string filters go through ParseContentStatus and friends.

# Request Types

Each admin form has a typed input (ServiceInput, BlogInput, ...) with a
Validate method. Validate returns a *ValidationError naming the first
field that failed:

	if err := in.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

# Site Settings

The known setting keys, their groups, and their defaults live in
settings.go. GroupSettings and PublicSettings fold stored values over
those defaults.

# Response Types

  - ErrorResponse: error, message
  - ListResponse[T]: items, total, page, page_size
  - UploadResponse: url, key, content_type, size
  - DashboardStats
*/
package models
