// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (foreign keys switched on, one connection)

# Schema Creation

CreateSchema initializes all required tables. Safe to call multiple times -
uses IF NOT EXISTS for all tables and indexes. SeedSettings then inserts
the default site settings without overwriting edited values.

# Tables

  - services, projects, blogs, content, testimonials
  - job_positions, job_applications
  - contact_submissions
  - site_settings (key/value)
  - users

# Relationships

	job_positions 1──* job_applications

Deleting a position keeps its applications (ON DELETE SET NULL).

The DDL sticks to types and clauses both engines understand: TEXT ids,
TIMESTAMP columns filled by the application, CHECK constraints for status
enums, and JSON arrays in TEXT for list columns.
*/
package db
