// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to PostgreSQL or SQLite depending on dbType.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypePostgres:
		return sql.Open("postgres", url)
	case TypeSQLite:
		conn, err := sql.Open("sqlite", withForeignKeys(url))
		if err != nil {
			return nil, err
		}
		// SQLite serialises writers; one connection also keeps a
		// :memory: database alive for the life of the pool.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

func withForeignKeys(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}
