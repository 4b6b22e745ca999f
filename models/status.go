// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
)

// ContentStatus is the publication state shared by services, blogs,
// content, testimonials and job positions.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
	ContentArchived  ContentStatus = "archived"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on-hold"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

var (
	contentStatuses     = []ContentStatus{ContentDraft, ContentPublished, ContentArchived}
	projectStatuses     = []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold}
	applicationStatuses = []ApplicationStatus{ApplicationPending, ApplicationReviewed, ApplicationInterviewed, ApplicationRejected, ApplicationHired}
	jobTypes            = []JobType{JobFullTime, JobPartTime, JobContract, JobInternship}
	contactStatuses     = []ContactStatus{ContactNew, ContactRead, ContactReplied, ContactArchived}
	userRoles           = []UserRole{RoleAdmin, RoleUser}
	userStatuses        = []UserStatus{UserActive, UserInactive}
)

func oneOf[T ~string](v T, set []T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// decodeEnum rejects any value outside set while decoding JSON. An empty
// string is accepted so that callers can apply a default.
func decodeEnum[T ~string](data []byte, dst *T, set []T, kind string) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s must be a string", kind)
	}
	v := T(raw)
	if raw != "" && !oneOf(v, set) {
		return &ValidationError{Field: kind, Reason: fmt.Sprintf("unknown value %q", raw)}
	}
	*dst = v
	return nil
}

func (s ContentStatus) Valid() bool     { return oneOf(s, contentStatuses) }
func (s ProjectStatus) Valid() bool     { return oneOf(s, projectStatuses) }
func (s ApplicationStatus) Valid() bool { return oneOf(s, applicationStatuses) }
func (t JobType) Valid() bool           { return oneOf(t, jobTypes) }
func (s ContactStatus) Valid() bool     { return oneOf(s, contactStatuses) }
func (r UserRole) Valid() bool          { return oneOf(r, userRoles) }
func (s UserStatus) Valid() bool        { return oneOf(s, userStatuses) }

func (s *ContentStatus) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, s, contentStatuses, "status")
}

func (s *ProjectStatus) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, s, projectStatuses, "status")
}

func (s *ApplicationStatus) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, s, applicationStatuses, "status")
}

func (t *JobType) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, t, jobTypes, "type")
}

func (s *ContactStatus) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, s, contactStatuses, "status")
}

func (r *UserRole) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, r, userRoles, "role")
}

func (s *UserStatus) UnmarshalJSON(b []byte) error {
	return decodeEnum(b, s, userStatuses, "status")
}

// ParseContentStatus is used for query-string filters.
func ParseContentStatus(s string) (ContentStatus, error) {
	v := ContentStatus(s)
	if !v.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return v, nil
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	v := ProjectStatus(s)
	if !v.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return v, nil
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	v := ApplicationStatus(s)
	if !v.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return v, nil
}

func ParseContactStatus(s string) (ContactStatus, error) {
	v := ContactStatus(s)
	if !v.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", s)}
	}
	return v, nil
}

// ValidStatus reports whether s is a valid status for the named table.
// Tables without a status column accept nothing.
func ValidStatus(table, s string) bool {
	switch table {
	case "projects":
		return ProjectStatus(s).Valid()
	case "job_applications":
		return ApplicationStatus(s).Valid()
	case "contact_submissions":
		return ContactStatus(s).Valid()
	case "users":
		return UserStatus(s).Valid()
	case "services", "blogs", "content", "testimonials", "job_positions":
		return ContentStatus(s).Valid()
	}
	return false
}
