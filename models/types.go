package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Domain types

type Service struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Status      ContentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Client      string        `json:"client"`
	ImageURL    string        `json:"image_url"`
	LiveURL     string        `json:"live_url"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Blog struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt"`
	Content     string        `json:"content"`
	Author      string        `json:"author"`
	Category    string        `json:"category"`
	ImageURL    string        `json:"image_url"`
	Status      ContentStatus `json:"status"`
	Views       int64         `json:"views"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Content is a free-form page section managed from /admin/content.
type Content struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Author    string        `json:"author"`
	Status    ContentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Testimonial struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Position  string        `json:"position"`
	Company   string        `json:"company"`
	Content   string        `json:"content"`
	Rating    int           `json:"rating"`
	ImageURL  string        `json:"image_url"`
	Status    ContentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type JobPosition struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Department        string        `json:"department"`
	Location          string        `json:"location"`
	Type              JobType       `json:"type"`
	Salary            string        `json:"salary"`
	Description       string        `json:"description"`
	Requirements      StringList    `json:"requirements"`
	Benefits          StringList    `json:"benefits"`
	Status            ContentStatus `json:"status"`
	PostedDate        time.Time     `json:"posted_date"`
	ApplicationsCount int           `json:"applications_count"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type JobApplication struct {
	ID             string            `json:"id" csv:"id"`
	JobID          *string           `json:"job_id" csv:"-"`
	JobTitle       string            `json:"job_title,omitempty" csv:"job_title"`
	FirstName      string            `json:"first_name" csv:"first_name"`
	LastName       string            `json:"last_name" csv:"last_name"`
	Email          string            `json:"email" csv:"email"`
	Phone          string            `json:"phone" csv:"phone"`
	CoverLetter    string            `json:"cover_letter" csv:"-"`
	ResumeFileName string            `json:"resume_file_name" csv:"resume_file_name"`
	ResumeURL      string            `json:"resume_url" csv:"resume_url"`
	Status         ApplicationStatus `json:"status" csv:"status"`
	AppliedDate    time.Time         `json:"applied_date" csv:"applied_date"`
	CreatedAt      time.Time         `json:"created_at" csv:"-"`
	UpdatedAt      time.Time         `json:"updated_at" csv:"-"`
}

type ContactSubmission struct {
	ID        string        `json:"id" csv:"id"`
	Name      string        `json:"name" csv:"name"`
	Email     string        `json:"email" csv:"email"`
	Phone     string        `json:"phone" csv:"phone"`
	Subject   string        `json:"subject" csv:"subject"`
	Message   string        `json:"message" csv:"message"`
	Status    ContactStatus `json:"status" csv:"status"`
	CreatedAt time.Time     `json:"created_at" csv:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" csv:"-"`
}

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type DashboardStats struct {
	TotalUsers          int   `json:"total_users"`
	TotalBlogs          int   `json:"total_blogs"`
	TotalProjects       int   `json:"total_projects"`
	TotalServices       int   `json:"total_services"`
	TotalBlogViews      int64 `json:"total_blog_views"`
	PendingApplications int   `json:"pending_applications"`
}

// StringList is stored as a JSON array in a TEXT column so the schema works
// on both PostgreSQL and SQLite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(b, (*[]string)(l))
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ListResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ValidationError reports the first field of a form that failed a check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
