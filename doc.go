// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main runs the Golden Age Infotech site server: the public
marketing site, the admin area and the JSON API behind both.

# Starting the Server

	DATABASE_URL=file:site.db go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

# Configuration

Flags win over environment variables (a .env file is loaded first), which
win over the YAML file given with -c or CONFIG_FILE.

Required:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): server port (default 3318)
  - ADMIN_EMAIL / ADMIN_PASSWORD: the demo admin login
  - SESSION_TTL, CACHE_TTL: durations (24h, 5m)
  - REDIS_URL (--redis): shared sessions and settings events
  - ALLOWED_ORIGINS (--origins): CORS origins
  - MEDIA_DIR or S3_BUCKET / AWS_REGION / S3_PUBLIC_URL: upload storage
  - SES_REGION, MAIL_FROM, NOTIFY_TO: email alerts

# Architecture

  - cliparse: configuration
  - db: driver selection, schema and seed settings
  - models: row types, typed inputs and status enums
  - store: one repository per table, settings cache
  - auth: demo credential check and sessions (memory or Redis)
  - resume: contact details from uploaded résumés
  - media: image checks and blob storage (disk or S3)
  - notify: email alerts (SES or log)
  - realtime: settings change events over websocket and Redis
  - handlers: JSON API
  - web: HTML pages (Liquid templates)
  - middleware: logging, JSON helpers, admin gate
  - router: route table
*/
package main
