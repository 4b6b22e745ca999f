// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"net/mail"
	"strings"
)

// Request types. Each admin form decodes into one of these and is checked
// with Validate before it reaches the store. Empty status fields take the
// table default.

type ServiceInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Status      ContentStatus `json:"status"`
}

func (in ServiceInput) Validate() error {
	return firstError(
		required("title", in.Title),
		required("category", in.Category),
	)
}

type ProjectInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Client      string        `json:"client"`
	ImageURL    string        `json:"image_url"`
	LiveURL     string        `json:"live_url"`
	Status      ProjectStatus `json:"status"`
}

func (in ProjectInput) Validate() error {
	return firstError(
		required("title", in.Title),
		required("category", in.Category),
	)
}

type BlogInput struct {
	Title    string        `json:"title"`
	Excerpt  string        `json:"excerpt"`
	Content  string        `json:"content"`
	Author   string        `json:"author"`
	Category string        `json:"category"`
	ImageURL string        `json:"image_url"`
	Status   ContentStatus `json:"status"`
}

func (in BlogInput) Validate() error {
	return firstError(
		required("title", in.Title),
		required("author", in.Author),
		required("category", in.Category),
	)
}

type ContentInput struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Author  string        `json:"author"`
	Status  ContentStatus `json:"status"`
}

func (in ContentInput) Validate() error {
	return firstError(
		required("title", in.Title),
		required("author", in.Author),
	)
}

type TestimonialInput struct {
	Name     string        `json:"name"`
	Position string        `json:"position"`
	Company  string        `json:"company"`
	Content  string        `json:"content"`
	Rating   int           `json:"rating"`
	ImageURL string        `json:"image_url"`
	Status   ContentStatus `json:"status"`
}

func (in TestimonialInput) Validate() error {
	err := firstError(
		required("name", in.Name),
		required("position", in.Position),
		required("company", in.Company),
		required("content", in.Content),
	)
	if err != nil {
		return err
	}
	// zero means "not set" and falls back to 5
	if in.Rating < 0 || in.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}

type JobPositionInput struct {
	Title        string        `json:"title"`
	Department   string        `json:"department"`
	Location     string        `json:"location"`
	Type         JobType       `json:"type"`
	Salary       string        `json:"salary"`
	Description  string        `json:"description"`
	Requirements StringList    `json:"requirements"`
	Benefits     StringList    `json:"benefits"`
	Status       ContentStatus `json:"status"`
}

func (in JobPositionInput) Validate() error {
	err := firstError(
		required("title", in.Title),
		required("department", in.Department),
		required("location", in.Location),
		required("description", in.Description),
	)
	if err != nil {
		return err
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "is required"}
	}
	return nil
}

// ApplicationInput is built from the careers multipart form.
type ApplicationInput struct {
	JobID          string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CoverLetter    string
	ResumeFileName string
	ResumeURL      string
}

func (in ApplicationInput) Validate() error {
	return firstError(
		required("job_id", in.JobID),
		required("first_name", in.FirstName),
		required("last_name", in.LastName),
		email("email", in.Email),
	)
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in ContactInput) Validate() error {
	return firstError(
		required("name", in.Name),
		email("email", in.Email),
		required("subject", in.Subject),
		required("message", in.Message),
	)
}

type UserInput struct {
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Role   UserRole   `json:"role"`
	Status UserStatus `json:"status"`
}

func (in UserInput) Validate() error {
	return firstError(
		email("email", in.Email),
		required("name", in.Name),
	)
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ImportFeedRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func email(field, v string) error {
	if err := required(field, v); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return &ValidationError{Field: field, Reason: "is not a valid email address"}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
