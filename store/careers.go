// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devpatel66/golden-sleek-vision/models"
)

// Job positions

const positionColumns = "id, title, department, location, type, salary, description, requirements, benefits, " +
	"status, posted_date, applications_count, created_at, updated_at"

type Positions struct{ db *sql.DB }

func scanPosition(s scanner) (models.JobPosition, error) {
	var v models.JobPosition
	err := s.Scan(&v.ID, &v.Title, &v.Department, &v.Location, &v.Type, &v.Salary, &v.Description,
		&v.Requirements, &v.Benefits, &v.Status, &v.PostedDate, &v.ApplicationsCount, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *Positions) List(ctx context.Context, f ListFilter) ([]models.JobPosition, int, error) {
	w := &where{}
	w.eq("status", f.Status)
	w.eq("department", f.Category)
	w.search(f.Search, "title", "department", "location")
	return listQuery(ctx, r.db, "job_positions", positionColumns, w, f, scanPosition)
}

func (r *Positions) Get(ctx context.Context, id string) (models.JobPosition, error) {
	return getByID(ctx, r.db, "job_positions", positionColumns, id, scanPosition)
}

func (r *Positions) Create(ctx context.Context, in models.JobPositionInput) (models.JobPosition, error) {
	t := now()
	v := models.JobPosition{
		ID:           newID(),
		Title:        in.Title,
		Department:   in.Department,
		Location:     in.Location,
		Type:         in.Type,
		Salary:       in.Salary,
		Description:  in.Description,
		Requirements: nonNil(in.Requirements),
		Benefits:     nonNil(in.Benefits),
		Status:       orDefault(in.Status, models.ContentDraft),
		PostedDate:   t,
		CreatedAt:    t,
		UpdatedAt:    t,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO job_positions (id, title, department, location, type, salary, description, requirements,
			benefits, status, posted_date, applications_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13)
	`, v.ID, v.Title, v.Department, v.Location, v.Type, v.Salary, v.Description, v.Requirements,
		v.Benefits, v.Status, v.PostedDate, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.JobPosition{}, fmt.Errorf("insert job position: %w", err)
	}
	return v, nil
}

func (r *Positions) Update(ctx context.Context, id string, in models.JobPositionInput) (models.JobPosition, error) {
	err := execOne(ctx, r.db, `
		UPDATE job_positions SET title = $1, department = $2, location = $3, type = $4, salary = $5,
			description = $6, requirements = $7, benefits = $8, status = $9, updated_at = $10
		WHERE id = $11
	`, in.Title, in.Department, in.Location, in.Type, in.Salary, in.Description,
		nonNil(in.Requirements), nonNil(in.Benefits), orDefault(in.Status, models.ContentDraft), now(), id)
	if err != nil {
		return models.JobPosition{}, wrapUpdate("job position", err)
	}
	return r.Get(ctx, id)
}

// Delete removes a position. Its applications stay with job_id cleared.
func (r *Positions) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "job_positions", id)
}

func nonNil(l models.StringList) models.StringList {
	if l == nil {
		return models.StringList{}
	}
	return l
}

// Job applications

const applicationColumns = "a.id, a.job_id, COALESCE(p.title, ''), a.first_name, a.last_name, a.email, a.phone, " +
	"a.cover_letter, a.resume_file_name, a.resume_url, a.status, a.applied_date, a.created_at, a.updated_at"

const applicationFrom = "job_applications a LEFT JOIN job_positions p ON p.id = a.job_id"

type Applications struct{ db *sql.DB }

func scanApplication(s scanner) (models.JobApplication, error) {
	var v models.JobApplication
	var jobID sql.NullString
	err := s.Scan(&v.ID, &jobID, &v.JobTitle, &v.FirstName, &v.LastName, &v.Email, &v.Phone,
		&v.CoverLetter, &v.ResumeFileName, &v.ResumeURL, &v.Status, &v.AppliedDate, &v.CreatedAt, &v.UpdatedAt)
	if jobID.Valid {
		v.JobID = &jobID.String
	}
	return v, err
}

func (r *Applications) List(ctx context.Context, f ListFilter) ([]models.JobApplication, int, error) {
	w := &where{}
	w.eq("a.status", f.Status)
	w.eq("a.job_id", f.JobID)
	w.search(f.Search, "a.first_name", "a.last_name", "a.email")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+applicationFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count job_applications: %w", err)
	}

	args := append([]any{}, w.args...)
	args = append(args, f.limit(), max(f.Offset, 0))
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY a.applied_date DESC, a.id LIMIT $%d OFFSET $%d",
		applicationColumns, applicationFrom, w.String(), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list job_applications: %w", err)
	}
	defer rows.Close()

	items := []models.JobApplication{}
	for rows.Next() {
		v, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job_applications: %w", err)
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *Applications) Get(ctx context.Context, id string) (models.JobApplication, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+applicationColumns+" FROM "+applicationFrom+" WHERE a.id = $1", id)
	v, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JobApplication{}, ErrNotFound
	}
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("get job application: %w", err)
	}
	return v, nil
}

// Submit stores a new application for a published position and bumps the
// position's applications_count in the same transaction.
func (r *Applications) Submit(ctx context.Context, in models.ApplicationInput) (models.JobApplication, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var title string
	var status models.ContentStatus
	err = tx.QueryRowContext(ctx, "SELECT title, status FROM job_positions WHERE id = $1", in.JobID).Scan(&title, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JobApplication{}, ErrNotFound
	}
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("get job position: %w", err)
	}
	if status != models.ContentPublished {
		return models.JobApplication{}, ErrPositionClosed
	}

	t := now()
	jobID := in.JobID
	v := models.JobApplication{
		ID:             newID(),
		JobID:          &jobID,
		JobTitle:       title,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		CoverLetter:    in.CoverLetter,
		ResumeFileName: in.ResumeFileName,
		ResumeURL:      in.ResumeURL,
		Status:         models.ApplicationPending,
		AppliedDate:    t,
		CreatedAt:      t,
		UpdatedAt:      t,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO job_applications (id, job_id, first_name, last_name, email, phone, cover_letter,
			resume_file_name, resume_url, status, applied_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, v.ID, jobID, v.FirstName, v.LastName, v.Email, v.Phone, v.CoverLetter,
		v.ResumeFileName, v.ResumeURL, v.Status, v.AppliedDate, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("insert job application: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE job_positions SET applications_count = applications_count + 1 WHERE id = $1
	`, jobID)
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("update applications_count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.JobApplication{}, fmt.Errorf("commit: %w", err)
	}
	return v, nil
}

func (r *Applications) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	return updateStatus(ctx, r.db, "job_applications", id, string(status))
}

// Delete removes an application and takes it off its position's count in
// the same transaction.
func (r *Applications) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var jobID sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT job_id FROM job_applications WHERE id = $1", id).Scan(&jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get job application: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM job_applications WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete job application: %w", err)
	}
	if jobID.Valid {
		_, err = tx.ExecContext(ctx, `
			UPDATE job_positions SET applications_count = applications_count - 1
			WHERE id = $1 AND applications_count > 0
		`, jobID.String)
		if err != nil {
			return fmt.Errorf("update applications count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
