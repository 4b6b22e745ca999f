// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data access layer: one repository per table behind a
single Store.

	s := store.New(conn)
	blogs, total, err := s.Blogs.List(ctx, store.ListFilter{Status: "published", Limit: 12})

Content repositories share one method set, which lets the admin handlers
treat them generically:

	List(ctx, ListFilter) ([]T, int, error)
	Get(ctx, id) (T, error)
	Create(ctx, input) (T, error)
	Update(ctx, id, input) (T, error)
	Delete(ctx, id) error

Listings are ordered newest first. Update replaces every editable column
with the submitted form.

# Errors

  - ErrNotFound: no row with that id
  - ErrConflict: a user with that email already exists
  - ErrPositionClosed: the job position is not published

Everything else is a wrapped driver error.

# Settings

Settings.Update writes a batch of keys in one transaction. SettingsCache
keeps the public subset in a go-cache between writes; callers invalidate
it after an update.
*/
package store
