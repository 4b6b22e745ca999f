// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/testutil"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.SetupTestDB(t))
}

func TestServicesCRUD(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	created, err := s.Services.Create(ctx, models.ServiceInput{Title: "Cloud Migration", Category: "Cloud"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.ContentDraft, created.Status, "empty status takes the table default")

	got, err := s.Services.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud Migration", got.Title)

	updated, err := s.Services.Update(ctx, created.ID, models.ServiceInput{
		Title: "Cloud Migration", Category: "Cloud", Description: "Lift and shift", Status: models.ContentPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentPublished, updated.Status)
	assert.Equal(t, "Lift and shift", updated.Description)

	require.NoError(t, s.Services.Delete(ctx, created.ID))
	_, err = s.Services.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Services.Delete(ctx, created.ID), ErrNotFound)
}

func TestUpdateMissingRow(t *testing.T) {
	s := setupStore(t)
	_, err := s.Projects.Update(context.Background(), "missing", models.ProjectInput{Title: "x", Category: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersAndOrder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	inputs := []models.ProjectInput{
		{Title: "ERP Rollout", Category: "Enterprise", Client: "Acme", Status: models.ProjectCompleted},
		{Title: "Mobile Banking", Category: "Mobile", Client: "First Bank", Status: models.ProjectInProgress},
		{Title: "Data Lake", Category: "Data", Client: "Acme", Status: models.ProjectPlanning},
	}
	for _, in := range inputs {
		_, err := s.Projects.Create(ctx, in)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	all, total, err := s.Projects.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "Data Lake", all[0].Title, "newest first")

	visible, total, err := s.Projects.List(ctx, ListFilter{ExcludeStatus: string(models.ProjectPlanning)})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, visible, 2)

	acme, total, err := s.Projects.List(ctx, ListFilter{Search: "ACME"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, acme, 2)

	page, total, err := s.Projects.List(ctx, ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Mobile Banking", page[0].Title)
}

func TestBlogPublishingAndViews(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	draft, err := s.Blogs.Create(ctx, models.BlogInput{Title: "Zero Trust", Author: "Jane", Category: "Security"})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	assert.ErrorIs(t, s.Blogs.IncrementViews(ctx, draft.ID), ErrNotFound, "drafts do not count views")

	pub, err := s.Blogs.Update(ctx, draft.ID, models.BlogInput{
		Title: "Zero Trust", Author: "Jane", Category: "Security", Status: models.ContentPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, pub.PublishedAt)
	first := *pub.PublishedAt

	require.NoError(t, s.Blogs.IncrementViews(ctx, draft.ID))
	require.NoError(t, s.Blogs.IncrementViews(ctx, draft.ID))

	again, err := s.Blogs.Update(ctx, draft.ID, models.BlogInput{
		Title: "Zero Trust v2", Author: "Jane", Category: "Security", Status: models.ContentPublished,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, again.Views)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, first.Equal(*again.PublishedAt), "published_at is kept on later edits")
}

func TestTestimonialDefaultRating(t *testing.T) {
	s := setupStore(t)
	v, err := s.Testimonials.Create(context.Background(), models.TestimonialInput{
		Name: "Sam", Position: "CTO", Company: "Acme", Content: "Great team",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, v.Rating)
}

func TestPositionsLists(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	p, err := s.Positions.Create(ctx, models.JobPositionInput{
		Title: "Go Engineer", Department: "Engineering", Location: "Remote", Type: models.JobFullTime,
		Description: "Services", Requirements: models.StringList{"Go", "SQL"}, Status: models.ContentPublished,
	})
	require.NoError(t, err)

	got, err := s.Positions.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"Go", "SQL"}, got.Requirements)
	assert.Equal(t, models.StringList{}, got.Benefits)
}

func TestApplicationSubmit(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	open := testutil.CreateTestPosition(t, conn, "Go Engineer", "published")
	closed := testutil.CreateTestPosition(t, conn, "Old Role", "archived")

	in := models.ApplicationInput{JobID: open, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	app, err := s.Applications.Submit(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, "Go Engineer", app.JobTitle)

	pos, err := s.Positions.Get(ctx, open)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.ApplicationsCount)

	in.JobID = closed
	_, err = s.Applications.Submit(ctx, in)
	assert.ErrorIs(t, err, ErrPositionClosed)

	in.JobID = "missing"
	_, err = s.Applications.Submit(ctx, in)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Applications.UpdateStatus(ctx, app.ID, models.ApplicationInterviewed))
	got, err := s.Applications.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationInterviewed, got.Status)

	list, total, err := s.Applications.List(ctx, ListFilter{JobID: open})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestBlogTitleExists(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, title := range []string{"Über uns", "100% _coverage_"} {
		_, err := s.Blogs.Create(ctx, models.BlogInput{Title: title, Author: "a", Category: "c"})
		require.NoError(t, err)
	}

	testCases := []struct {
		title string
		want  bool
	}{
		{"Über uns", true},
		{"100% _coverage_", true},
		{"100% _COVERAGE_", true},
		{"1000 coverage", false},
		{"%", false},
		{"Über", false},
	}
	for _, tc := range testCases {
		got, err := s.Blogs.TitleExists(ctx, tc.title)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.title)
	}
}

func TestApplicationDeleteUpdatesCount(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	job := testutil.CreateTestPosition(t, conn, "Go Engineer", "published")
	var ids []string
	for _, name := range []string{"Ada", "Grace"} {
		app, err := s.Applications.Submit(ctx, models.ApplicationInput{
			JobID: job, FirstName: name, LastName: "Test", Email: name + "@example.com",
		})
		require.NoError(t, err)
		ids = append(ids, app.ID)
	}

	require.NoError(t, s.Applications.Delete(ctx, ids[0]))
	pos, err := s.Positions.Get(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.ApplicationsCount)

	assert.ErrorIs(t, s.Applications.Delete(ctx, ids[0]), ErrNotFound)

	// an application whose position is gone deletes cleanly
	require.NoError(t, s.Positions.Delete(ctx, job))
	require.NoError(t, s.Applications.Delete(ctx, ids[1]))
}

func TestDeletingPositionKeepsApplications(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	job := testutil.CreateTestPosition(t, conn, "Designer", "published")
	app, err := s.Applications.Submit(ctx, models.ApplicationInput{
		JobID: job, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, s.Positions.Delete(ctx, job))

	got, err := s.Applications.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Nil(t, got.JobID)
	assert.Empty(t, got.JobTitle)
}

func TestUsersUniqueIndexConflict(t *testing.T) {
	// a concurrent writer can claim the email between the check and the write
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()
	taken := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	mock.ExpectQuery("SELECT id FROM users").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO users").WillReturnError(taken)
	_, err = s.Users.Create(ctx, models.UserInput{Email: "race@example.com", Name: "Racer"})
	assert.ErrorIs(t, err, ErrConflict)

	mock.ExpectQuery("SELECT id FROM users").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE users").WillReturnError(taken)
	_, err = s.Users.Update(ctx, "u1", models.UserInput{Email: "race@example.com", Name: "Racer"})
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	insert := `INSERT INTO users (id, email, name, role, status, created_at, updated_at)
		VALUES ($1, $2, 'n', 'user', 'active', $3, $3)`

	_, err := db.ExecContext(ctx, insert, "a", "dup@example.com", time.Now())
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "b", "dup@example.com", time.Now())
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}

func TestUsersUniqueEmail(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	u, err := s.Users.Create(ctx, models.UserInput{Email: "Admin@Example.com", Name: "Admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Equal(t, models.UserActive, u.Status)

	_, err = s.Users.Create(ctx, models.UserInput{Email: "admin@example.com", Name: "Other"})
	assert.ErrorIs(t, err, ErrConflict)

	// updating a user with its own email is fine
	_, err = s.Users.Update(ctx, u.ID, models.UserInput{Email: "admin@example.com", Name: "Renamed"})
	require.NoError(t, err)

	require.NoError(t, s.Users.TouchLastLogin(ctx, "ADMIN@example.com"))
	got, err := s.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLogin)

	require.NoError(t, s.Users.TouchLastLogin(ctx, "nobody@example.com"))
}

func TestContactsLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	c, err := s.Contacts.Create(ctx, models.ContactInput{
		Name: "Lee", Email: "lee@example.com", Subject: "Quote", Message: "Need a site",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactNew, c.Status)

	require.NoError(t, s.Contacts.UpdateStatus(ctx, c.ID, models.ContactReplied))
	assert.ErrorIs(t, s.Contacts.UpdateStatus(ctx, "missing", models.ContactRead), ErrNotFound)

	list, _, err := s.Contacts.List(ctx, ListFilter{Status: string(models.ContactReplied)})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSettingsUpdateAndGroup(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := s.Settings.Update(ctx, []models.SettingUpdate{
		{Key: models.SettingSiteName, Value: "Golden Age"},
		{Key: models.SettingEmailAlerts, Value: "false"},
	})
	require.NoError(t, err)

	g, err := s.Settings.Grouped(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Golden Age", g.General[models.SettingSiteName])
	assert.False(t, g.Notifications[models.SettingEmailAlerts])
	assert.Equal(t, "30", g.Security[models.SettingSessionTimeout])
}

func TestSettingsCache(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	c := NewSettingsCache(s.Settings, time.Minute)

	pub, err := c.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Golden Age Infotech", pub[models.SettingSiteName])

	require.NoError(t, s.Settings.Update(ctx, []models.SettingUpdate{{Key: models.SettingSiteName, Value: "Renamed"}}))

	pub, _ = c.Public(ctx)
	assert.Equal(t, "Golden Age Infotech", pub[models.SettingSiteName], "served from cache until invalidated")

	c.Invalidate()
	pub, _ = c.Public(ctx)
	assert.Equal(t, "Renamed", pub[models.SettingSiteName])

	assert.Equal(t, "true", c.Value(ctx, models.SettingEmailAlerts))
}

func TestDashboard(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	testutil.CreateTestBlog(t, conn, "One", "published", 10)
	testutil.CreateTestBlog(t, conn, "Two", "draft", 5)
	job := testutil.CreateTestPosition(t, conn, "Role", "published")
	_, err := s.Applications.Submit(ctx, models.ApplicationInput{JobID: job, FirstName: "A", LastName: "B", Email: "a@b.co"})
	require.NoError(t, err)
	_, err = s.Services.Create(ctx, models.ServiceInput{Title: "S", Category: "C"})
	require.NoError(t, err)

	st, err := s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalBlogs)
	assert.EqualValues(t, 15, st.TotalBlogViews)
	assert.Equal(t, 1, st.TotalServices)
	assert.Equal(t, 0, st.TotalProjects)
	assert.Equal(t, 1, st.PendingApplications)
}

func TestBackendFailures(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT COUNT").WillReturnError(boom)
	_, _, err = s.Services.List(ctx, ListFilter{})
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec("INSERT INTO blogs").WillReturnError(boom)
	_, err = s.Blogs.Create(ctx, models.BlogInput{Title: "t", Author: "a", Category: "c"})
	assert.ErrorIs(t, err, boom)

	// a failed batch rolls back and writes nothing
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO site_settings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO site_settings").WillReturnError(boom)
	mock.ExpectRollback()
	err = s.Settings.Update(ctx, []models.SettingUpdate{
		{Key: models.SettingSiteName, Value: "a"},
		{Key: models.SettingPhone, Value: "b"},
	})
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery("SELECT").WillReturnError(boom)
	_, err = s.Dashboard(ctx)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
