// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrConflict       = errors.New("record already exists")
	ErrPositionClosed = errors.New("job position is not accepting applications")
)

// DefaultPageSize is used when a filter carries no limit.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ListFilter narrows a listing. Zero values mean "no filter".
type ListFilter struct {
	Status        string
	ExcludeStatus string
	Category      string
	Search        string
	JobID         string
	Limit         int
	Offset        int
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		return MaxPageSize
	}
	return f.Limit
}

// Store groups the repositories behind one database handle.
type Store struct {
	db *sql.DB

	Services     *Services
	Projects     *Projects
	Blogs        *Blogs
	Content      *ContentItems
	Testimonials *Testimonials
	Positions    *Positions
	Applications *Applications
	Contacts     *Contacts
	Users        *Users
	Settings     *Settings
}

func New(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Services:     &Services{db: db},
		Projects:     &Projects{db: db},
		Blogs:        &Blogs{db: db},
		Content:      &ContentItems{db: db},
		Testimonials: &Testimonials{db: db},
		Positions:    &Positions{db: db},
		Applications: &Applications{db: db},
		Contacts:     &Contacts{db: db},
		Users:        &Users{db: db},
		Settings:     &Settings{db: db},
	}
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func newID() string {
	return uuid.New().String()
}

func now() time.Time {
	return time.Now().UTC()
}

// where accumulates conditions with numbered placeholders.
type where struct {
	conds []string
	args  []any
}

func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) eq(col string, v string) {
	if v == "" {
		return
	}
	w.conds = append(w.conds, col+" = "+w.arg(v))
}

func (w *where) notEq(col string, v string) {
	if v == "" {
		return
	}
	w.conds = append(w.conds, col+" <> "+w.arg(v))
}

// search matches term case-insensitively against any of cols.
func (w *where) search(term string, cols ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return
	}
	p := w.arg("%" + strings.ToLower(term) + "%")
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + ") LIKE " + p
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// listQuery runs the count and page queries for a table and hands each row
// to scan.
func listQuery[T any](ctx context.Context, db *sql.DB, table, columns string, w *where, f ListFilter, scan func(scanner) (T, error)) ([]T, int, error) {
	var total int
	countSQL := "SELECT COUNT(*) FROM " + table + w.String()
	if err := db.QueryRowContext(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	args := append([]any{}, w.args...)
	args = append(args, f.limit(), max(f.Offset, 0))
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		columns, table, w.String(), len(args)-1, len(args))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	return items, total, nil
}

func getByID[T any](ctx context.Context, db *sql.DB, table, columns, id string, scan func(scanner) (T, error)) (T, error) {
	row := db.QueryRowContext(ctx, "SELECT "+columns+" FROM "+table+" WHERE id = $1", id)
	item, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s: %w", table, err)
	}
	return item, nil
}

// execOne runs a write that must touch exactly one row.
func execOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}

func deleteByID(ctx context.Context, db *sql.DB, table, id string) error {
	if err := execOne(ctx, db, "DELETE FROM "+table+" WHERE id = $1", id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func updateStatus(ctx context.Context, db *sql.DB, table, id, status string) error {
	err := execOne(ctx, db, "UPDATE "+table+" SET status = $1, updated_at = $2 WHERE id = $3", status, now(), id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("update %s status: %w", table, err)
	}
	return err
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}
