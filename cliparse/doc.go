// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Each value is taken from the first source that sets it:

 1. CLI flag
 2. Environment variable (a .env file in the working directory is loaded
    first with godotenv)
 3. YAML file given with -c or CONFIG_FILE
 4. Built-in default

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (sqlite or postgres)
	-c              YAML config file
	-redis          Redis URL
	-origins        Comma-separated CORS origins
	-admin-email    Demo admin email
	-admin-password Demo admin password
	-session-ttl    Session lifetime (Go duration)
	-cache-ttl      Public settings cache lifetime
	-media-dir      Local upload directory
	-s3-bucket      S3 bucket for uploads

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, CONFIG_FILE, REDIS_URL,
	ALLOWED_ORIGINS, PUBLIC_BASE_URL, ADMIN_EMAIL, ADMIN_PASSWORD,
	ADMIN_NAME, SESSION_TTL, CACHE_TTL, MEDIA_DIR, MEDIA_URL_PATH,
	S3_BUCKET, AWS_REGION, S3_PUBLIC_URL, SES_REGION, MAIL_FROM, NOTIFY_TO

# Validation

ParseFlags returns an error if:

  - no database URL is given
  - PORT is not a number
  - DATABASE_TYPE is neither sqlite nor postgres
  - a TTL is not a positive Go duration
  - the config file cannot be read or parsed

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
*/
package cliparse
