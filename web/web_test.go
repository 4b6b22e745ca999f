// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpatel66/golden-sleek-vision/auth"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/store"
	"github.com/devpatel66/golden-sleek-vision/testutil"
)

type fixture struct {
	st    *store.Store
	authn *auth.Authenticator
	pages *Pages
}

func setup(t *testing.T) fixture {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	render, err := NewRenderer()
	require.NoError(t, err)

	creds := auth.Credentials{Email: "admin@example.com", Password: "admin123", Name: "Admin User"}
	authn := auth.NewAuthenticator(creds, auth.NewMemorySessions(), time.Hour, st.Users)
	cache := store.NewSettingsCache(st.Settings, time.Minute)
	return fixture{
		st:    st,
		authn: authn,
		pages: NewPages(st, cache, authn, nil, render, false),
	}
}

func get(h http.HandlerFunc, target string, pathValues ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func postForm(h http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestNewRendererParsesTemplates(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	for _, page := range []string{"home", "about", "services", "portfolio", "blog", "blog_post", "careers",
		"career_job", "contact", "login", "not_found", "error", "admin_dashboard", "admin_section", "admin_settings"} {
		assert.True(t, r.Has(page), page)
	}
	assert.False(t, r.Has("layout"))
}

func TestFilters(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	tests := []struct {
		src  string
		vars map[string]any
		want string
	}{
		{`{{ "in-progress" | label }}`, nil, "In Progress"},
		{`{{ "full-time" | label }}`, nil, "Full Time"},
		{`{{ 3 | stars }}`, nil, "★★★☆☆"},
		{`{{ 9 | stars }}`, nil, "★★★★★"},
		{`{{ 1234567 | comma }}`, nil, "1,234,567"},
		{`{{ t | short_date }}`, map[string]any{"t": "2024-03-05T10:00:00Z"}, "Mar 5, 2024"},
		{`{{ t | ago }}`, map[string]any{"t": time.Now().Add(-72 * time.Hour).Format(time.RFC3339Nano)}, "3 days ago"},
		{`[{{ t | ago }}]`, map[string]any{"t": "not a time"}, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			out, err := r.engine.ParseAndRenderString(tt.src, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestHomeAndListings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.st.Services.Create(ctx, models.ServiceInput{Title: "Cloud Migration", Category: "Cloud", Status: models.ContentPublished})
	require.NoError(t, err)
	_, err = f.st.Services.Create(ctx, models.ServiceInput{Title: "Secret Draft", Category: "Cloud", Status: models.ContentDraft})
	require.NoError(t, err)
	_, err = f.st.Projects.Create(ctx, models.ProjectInput{Title: "Retail App", Category: "Mobile", Status: models.ProjectCompleted})
	require.NoError(t, err)
	_, err = f.st.Projects.Create(ctx, models.ProjectInput{Title: "Future Idea", Category: "Mobile", Status: models.ProjectPlanning})
	require.NoError(t, err)

	w := get(f.pages.Home, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Golden Age Infotech")
	assert.Contains(t, body, "Cloud Migration")
	assert.NotContains(t, body, "Secret Draft")
	assert.Contains(t, body, "Login")

	w = get(f.pages.Services, "/services")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cloud Migration")
	assert.NotContains(t, w.Body.String(), "Secret Draft")

	w = get(f.pages.Portfolio, "/portfolio")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Retail App")
	assert.NotContains(t, w.Body.String(), "Future Idea")
}

func TestOutputIsEscaped(t *testing.T) {
	f := setup(t)
	_, err := f.st.Services.Create(context.Background(), models.ServiceInput{
		Title: "<script>alert(1)</script>", Category: "Web", Status: models.ContentPublished,
	})
	require.NoError(t, err)

	w := get(f.pages.Services, "/services")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestBlogPages(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	post, err := f.st.Blogs.Create(ctx, models.BlogInput{
		Title: "Zero Trust in Practice", Author: "Jane Doe", Category: "Security",
		Content: "First line\nSecond line", Status: models.ContentPublished,
	})
	require.NoError(t, err)
	draft, err := f.st.Blogs.Create(ctx, models.BlogInput{Title: "Unfinished", Author: "Jane Doe", Category: "Security"})
	require.NoError(t, err)

	w := get(f.pages.Blog, "/blog?search=zero")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Zero Trust in Practice")
	assert.NotContains(t, w.Body.String(), "Unfinished")

	w = get(f.pages.BlogPost, "/blog/"+post.ID, "id", post.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 views")
	assert.Contains(t, w.Body.String(), "First line<br")

	got, err := f.st.Blogs.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)

	w = get(f.pages.BlogPost, "/blog/"+draft.ID, "id", draft.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	got, err = f.st.Blogs.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.Views, "drafts are not counted")

	w = get(f.pages.BlogPost, "/blog/nope", "id", "nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestCareerPages(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	open, err := f.st.Positions.Create(ctx, models.JobPositionInput{
		Title: "Go Engineer", Department: "Engineering", Location: "Remote", Type: models.JobFullTime,
		Description: "Build services", Requirements: models.StringList{"5 years of Go"}, Status: models.ContentPublished,
	})
	require.NoError(t, err)
	closed, err := f.st.Positions.Create(ctx, models.JobPositionInput{
		Title: "Old Role", Department: "Ops", Location: "Onsite", Type: models.JobContract, Description: "x",
	})
	require.NoError(t, err)

	w := get(f.pages.Careers, "/careers")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go Engineer")
	assert.Contains(t, w.Body.String(), "Full Time")
	assert.NotContains(t, w.Body.String(), "Old Role")

	w = get(f.pages.CareerJob, "/careers/"+open.ID, "id", open.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "5 years of Go")
	assert.Contains(t, w.Body.String(), `action="/api/careers/jobs/`+open.ID+`/applications"`)

	w = get(f.pages.CareerJob, "/careers/"+closed.ID, "id", closed.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactForm(t *testing.T) {
	f := setup(t)

	w := postForm(f.pages.SubmitContact, "/contact", url.Values{
		"name": {"Lee"}, "email": {"lee@example.com"}, "subject": {"Quote"}, "message": {"Need an app"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact?sent=1", w.Header().Get("Location"))

	items, total, err := f.st.Contacts.List(context.Background(), store.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, models.ContactNew, items[0].Status)

	w = get(f.pages.Contact, "/contact?sent=1")
	assert.Contains(t, w.Body.String(), "Thanks for reaching out")

	w = postForm(f.pages.SubmitContact, "/contact", url.Values{
		"name": {"Lee"}, "email": {"not-an-email"}, "subject": {"Quote"}, "message": {"Hi"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
	assert.Contains(t, w.Body.String(), `value="Lee"`, "form keeps what was typed")

	_, total, err = f.st.Contacts.List(context.Background(), store.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestLoginAndLogout(t *testing.T) {
	f := setup(t)

	w := postForm(f.pages.Login, "/login", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	w = postForm(f.pages.Login, "/login", url.Values{
		"email": {"admin@example.com"}, "password": {"admin123"}, "next": {"/admin/settings"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/settings", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// signed-in visitors skip the form
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	f.pages.LoginForm(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	f.pages.Logout(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	_, err := f.authn.Resolve(context.Background(), cookies[0].Value)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                   "/admin",
		"/admin/blogs":       "/admin/blogs",
		"//evil.example.com": "/admin",
		"https://evil.com":   "/admin",
		`/\evil.com`:         "/admin",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func adminRequest(t *testing.T, f fixture, target string, pathValues ...string) *http.Request {
	t.Helper()
	s, err := f.authn.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req.WithContext(middleware.WithSession(req.Context(), s))
}

func TestAdminPages(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.st.Blogs.Create(ctx, models.BlogInput{Title: "Draft Post", Author: "Jane", Category: "News"})
	require.NoError(t, err)
	_, err = f.st.Contacts.Create(ctx, models.ContactInput{Name: "Lee", Email: "lee@example.com", Subject: "Quote", Message: "Hi"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.pages.Dashboard(w, adminRequest(t, f, "/admin"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back, Admin User")
	assert.Contains(t, w.Body.String(), "New messages (1)")
	assert.Contains(t, w.Body.String(), "Sign out")

	for _, section := range []string{"services", "projects", "blogs", "content", "careers", "testimonials", "users"} {
		w = httptest.NewRecorder()
		f.pages.AdminSection(w, adminRequest(t, f, "/admin/"+section, "section", section))
		assert.Equal(t, http.StatusOK, w.Code, section)
	}

	w = httptest.NewRecorder()
	f.pages.AdminSection(w, adminRequest(t, f, "/admin/blogs", "section", "blogs"))
	assert.Contains(t, w.Body.String(), "Draft Post", "admins see drafts")

	w = httptest.NewRecorder()
	f.pages.AdminSection(w, adminRequest(t, f, "/admin/careers", "section", "careers"))
	assert.Contains(t, w.Body.String(), "Job positions (0)")
	assert.Contains(t, w.Body.String(), "Applications (0)")

	w = httptest.NewRecorder()
	f.pages.AdminSection(w, adminRequest(t, f, "/admin/nope", "section", "nope"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSettingsPage(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.st.Settings.Update(context.Background(), []models.SettingUpdate{
		{Key: models.SettingSiteName, Value: "Golden Age"},
		{Key: models.SettingTwoFactorAuth, Value: "true"},
	}))

	w := httptest.NewRecorder()
	f.pages.Settings(w, adminRequest(t, f, "/admin/settings"))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="site_name" value="Golden Age"`)
	assert.Contains(t, body, `name="two_factor_auth" data-bool checked`)
	assert.Contains(t, body, `name="session_timeout" value="30"`)
	assert.Less(t, strings.Index(body, "General"), strings.Index(body, "Security"))
}

func TestSettingForm(t *testing.T) {
	groups := settingForm(models.GroupSettings(nil))
	require.Len(t, groups, 4)
	assert.Equal(t, "site_name", groups[0].Fields[0].Key)
	for _, fld := range groups[2].Fields {
		assert.True(t, fld.Bool, fld.Key)
	}
	var boolSecurity []string
	for _, fld := range groups[3].Fields {
		if fld.Bool {
			boolSecurity = append(boolSecurity, fld.Key)
		}
	}
	assert.Equal(t, []string{models.SettingTwoFactorAuth}, boolSecurity)
}
