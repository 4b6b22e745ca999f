// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/devpatel66/golden-sleek-vision/cliparse"
	"github.com/devpatel66/golden-sleek-vision/db"
)

// TestDBURL opens a private in-memory SQLite database per pool.
const TestDBURL = "file::memory:"

// SetupTestDB creates a fresh in-memory database with the full schema and
// the default settings.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.SeedSettings(context.Background(), conn); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
		AdminName:     "Admin User",
		SessionTTL:    time.Hour,
		CacheTTL:      time.Minute,
		PublicBaseURL: "http://localhost:3318",
		MediaURLPath:  "/media/",
	}
}

// CreateTestPosition inserts a job position with the given status and
// returns its ID.
func CreateTestPosition(t *testing.T, conn *sql.DB, title, status string) string {
	t.Helper()

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO job_positions (id, title, department, location, type, description, status, posted_date, created_at, updated_at)
		VALUES ($1, $2, 'Engineering', 'Remote', 'full-time', 'Build things', $3, $4, $4, $4)
	`, id, title, status, now)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return id
}

// CreateTestBlog inserts a blog post and returns its ID.
func CreateTestBlog(t *testing.T, conn *sql.DB, title, status string, views int) string {
	t.Helper()

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO blogs (id, title, author, category, status, views, created_at, updated_at)
		VALUES ($1, $2, 'Jane Doe', 'Cloud', $3, $4, $5, $5)
	`, id, title, status, views, now)
	if err != nil {
		t.Fatalf("Failed to create test blog: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// FormFile describes one file part of a multipart request.
type FormFile struct {
	Field       string
	Name        string
	ContentType string
	Data        io.Reader
}

// MakeMultipartRequest builds a multipart/form-data request.
func MakeMultipartRequest(t *testing.T, method, path string, fields map[string]string, files ...FormFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field: %v", err)
		}
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + f.Field + `"; filename="` + f.Name + `"`}
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h["Content-Type"] = []string{ct}
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("Failed to create part: %v", err)
		}
		if _, err := io.Copy(part, f.Data); err != nil {
			t.Fatalf("Failed to write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
