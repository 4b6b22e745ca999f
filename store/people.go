// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/devpatel66/golden-sleek-vision/models"
)

// Contact submissions

const contactColumns = "id, name, email, phone, subject, message, status, created_at, updated_at"

type Contacts struct{ db *sql.DB }

func scanContact(s scanner) (models.ContactSubmission, error) {
	var v models.ContactSubmission
	err := s.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Subject, &v.Message, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *Contacts) List(ctx context.Context, f ListFilter) ([]models.ContactSubmission, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.search(f.Search, "name", "email", "subject")
	return listQuery(ctx, r.db, "contact_submissions", contactColumns, w, f, scanContact)
}

func (r *Contacts) Get(ctx context.Context, id string) (models.ContactSubmission, error) {
	return getByID(ctx, r.db, "contact_submissions", contactColumns, id, scanContact)
}

func (r *Contacts) Create(ctx context.Context, in models.ContactInput) (models.ContactSubmission, error) {
	t := now()
	v := models.ContactSubmission{
		ID:        newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.ContactNew,
		CreatedAt: t,
		UpdatedAt: t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, name, email, phone, subject, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID, v.Name, v.Email, v.Phone, v.Subject, v.Message, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.ContactSubmission{}, fmt.Errorf("insert contact submission: %w", err)
	}
	return v, nil
}

func (r *Contacts) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	return updateStatus(ctx, r.db, "contact_submissions", id, string(status))
}

func (r *Contacts) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "contact_submissions", id)
}

// Users

const userColumns = "id, email, name, role, status, last_login, created_at, updated_at"

type Users struct{ db *sql.DB }

func scanUser(s scanner) (models.User, error) {
	var v models.User
	var last sql.NullTime
	err := s.Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.Status, &last, &v.CreatedAt, &v.UpdatedAt)
	if last.Valid {
		v.LastLogin = &last.Time
	}
	return v, err
}

func (r *Users) List(ctx context.Context, f ListFilter) ([]models.User, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.eq("role", f.Category)
	w.search(f.Search, "name", "email")
	return listQuery(ctx, r.db, "users", userColumns, w, f, scanUser)
}

func (r *Users) Get(ctx context.Context, id string) (models.User, error) {
	return getByID(ctx, r.db, "users", userColumns, id, scanUser)
}

func (r *Users) Create(ctx context.Context, in models.UserInput) (models.User, error) {
	email := normalizeEmail(in.Email)
	if err := r.checkEmail(ctx, email, ""); err != nil {
		return models.User{}, err
	}

	t := now()
	v := models.User{
		ID:        newID(),
		Email:     email,
		Name:      in.Name,
		Role:      orDefault(in.Role, models.RoleUser),
		Status:    orDefault(in.Status, models.UserActive),
		CreatedAt: t,
		UpdatedAt: t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.ID, v.Email, v.Name, v.Role, v.Status, v.CreatedAt, v.UpdatedAt)
	if isUniqueViolation(err) {
		return models.User{}, ErrConflict
	}
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return v, nil
}

func (r *Users) Update(ctx context.Context, id string, in models.UserInput) (models.User, error) {
	email := normalizeEmail(in.Email)
	if err := r.checkEmail(ctx, email, id); err != nil {
		return models.User{}, err
	}

	err := execOne(ctx, r.db, `
		UPDATE users SET email = $1, name = $2, role = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, email, in.Name, orDefault(in.Role, models.RoleUser), orDefault(in.Status, models.UserActive), now(), id)
	if isUniqueViolation(err) {
		return models.User{}, ErrConflict
	}
	if err != nil {
		return models.User{}, wrapUpdate("user", err)
	}
	return r.Get(ctx, id)
}

func (r *Users) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "users", id)
}

// TouchLastLogin records a login for the user with the given email. It is
// a no-op when no such user exists.
func (r *Users) TouchLastLogin(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE email = $2`, now(), normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("touch last_login: %w", err)
	}
	return nil
}

// checkEmail returns ErrConflict when another user already owns email.
func (r *Users) checkEmail(ctx context.Context, email, selfID string) error {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1 AND id <> $2`, email, selfID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	return ErrConflict
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
