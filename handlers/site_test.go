// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpatel66/golden-sleek-vision/auth"
	"github.com/devpatel66/golden-sleek-vision/media"
	"github.com/devpatel66/golden-sleek-vision/middleware"
	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/notify"
	"github.com/devpatel66/golden-sleek-vision/realtime"
	"github.com/devpatel66/golden-sleek-vision/store"
	"github.com/devpatel66/golden-sleek-vision/testutil"
)

func TestContactFlow(t *testing.T) {
	_, st := setupStore(t)
	rec := &recordingNotifier{}
	cache := store.NewSettingsCache(st.Settings, time.Minute)
	h := NewContactHandler(st.Contacts, notify.NewAlerts(rec, cache, "owner@example.com"))

	w := serve(h.Submit, testutil.MakeRequest("POST", "/api/contact", models.ContactInput{
		Name: "Priya", Email: "priya@example.com", Subject: "Quote", Message: "We need an app",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var c models.ContactSubmission
	testutil.AssertJSON(t, w, &c)
	assert.Equal(t, models.ContactNew, c.Status)
	require.Len(t, rec.messages(), 1)

	w = serve(h.Submit, testutil.MakeRequest("POST", "/api/contact", models.ContactInput{
		Name: "Priya", Email: "not-an-email", Subject: "Quote", Message: "Hi",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	assert.Len(t, rec.messages(), 1)

	req := testutil.MakeRequest("PUT", "/", models.StatusUpdate{Status: "replied"}, nil)
	req.SetPathValue("id", c.ID)
	w = serve(h.UpdateStatus, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &c)
	assert.Equal(t, models.ContactReplied, c.Status)

	w = serve(h.List, httptest.NewRequest("GET", "/api/admin/contacts?status=replied", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var list models.ListResponse[models.ContactSubmission]
	testutil.AssertJSON(t, w, &list)
	assert.Equal(t, 1, list.Total)

	w = serve(h.Export, httptest.NewRequest("GET", "/api/admin/contacts/export.csv", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "priya@example.com")

	req = httptest.NewRequest("DELETE", "/", nil)
	req.SetPathValue("id", c.ID)
	testutil.AssertStatus(t, serve(h.Delete, req), http.StatusNoContent)
}

func TestContactAlertsSwitchedOff(t *testing.T) {
	_, st := setupStore(t)
	rec := &recordingNotifier{}
	cache := store.NewSettingsCache(st.Settings, time.Minute)
	require.NoError(t, st.Settings.Update(context.Background(), []models.SettingUpdate{
		{Key: models.SettingEmailAlerts, Value: "false"},
	}))
	h := NewContactHandler(st.Contacts, notify.NewAlerts(rec, cache, "owner@example.com"))

	w := serve(h.Submit, testutil.MakeRequest("POST", "/api/contact", models.ContactInput{
		Name: "Sam", Email: "sam@example.com", Subject: "Hello", Message: "Hi",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	assert.Empty(t, rec.messages())
}

func TestSettings(t *testing.T) {
	_, st := setupStore(t)
	cache := store.NewSettingsCache(st.Settings, time.Minute)
	hub := realtime.NewHub()
	_, events := hub.Subscribe()
	h := NewSettingsHandler(st.Settings, cache, hub)

	var public map[string]string
	testutil.AssertJSON(t, serve(h.Public, httptest.NewRequest("GET", "/api/settings/public", nil)), &public)
	assert.Equal(t, "Golden Age Infotech", public[models.SettingSiteName])
	assert.NotContains(t, public, models.SettingEmailAlerts)

	w := serve(h.Update, testutil.MakeRequest("PUT", "/api/admin/settings", []models.SettingUpdate{
		{Key: models.SettingSiteName, Value: "Golden Age"},
		{Key: models.SettingTwoFactorAuth, Value: "true"},
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var groups models.SettingsGroups
	testutil.AssertJSON(t, w, &groups)
	assert.Equal(t, "Golden Age", groups.General[models.SettingSiteName])

	select {
	case e := <-events:
		assert.Equal(t, []string{models.SettingSiteName, models.SettingTwoFactorAuth}, e.Keys)
	default:
		t.Fatal("expected a settings event")
	}

	// the cache was invalidated by the write
	testutil.AssertJSON(t, serve(h.Public, httptest.NewRequest("GET", "/api/settings/public", nil)), &public)
	assert.Equal(t, "Golden Age", public[models.SettingSiteName])

	// one bad entry rejects the whole batch
	w = serve(h.Update, testutil.MakeRequest("PUT", "/api/admin/settings", []models.SettingUpdate{
		{Key: models.SettingSiteName, Value: "Changed Again"},
		{Key: models.SettingSessionTimeout, Value: "soon"},
	}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = serve(h.Get, httptest.NewRequest("GET", "/api/admin/settings", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &groups)
	assert.Equal(t, "Golden Age", groups.General[models.SettingSiteName])
	assert.Equal(t, "true", groups.Security[models.SettingTwoFactorAuth])

	testutil.AssertStatus(t, serve(h.Update, testutil.MakeRequest("PUT", "/api/admin/settings", []models.SettingUpdate{}, nil)), http.StatusBadRequest)
}

func TestSettingsChangeReachesOtherInstances(t *testing.T) {
	_, st := setupStore(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type instance struct {
		handler *SettingsHandler
		hub     *realtime.Hub
	}
	newInstance := func() instance {
		cache := store.NewSettingsCache(st.Settings, time.Hour)
		hub := realtime.NewHub()
		broker := realtime.NewRedisBroker(client, hub)
		broker.OnReceive(InvalidateOnChange(cache))
		require.NoError(t, broker.Start(ctx))
		return instance{handler: NewSettingsHandler(st.Settings, cache, broker), hub: hub}
	}
	a, b := newInstance(), newInstance()

	// warm b's cache
	var public map[string]string
	testutil.AssertJSON(t, serve(b.handler.Public, httptest.NewRequest("GET", "/api/settings/public", nil)), &public)
	require.Equal(t, "Golden Age Infotech", public[models.SettingSiteName])

	_, events := b.hub.Subscribe()
	w := serve(a.handler.Update, testutil.MakeRequest("PUT", "/api/admin/settings", []models.SettingUpdate{
		{Key: models.SettingSiteName, Value: "New Name"},
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	select {
	case e := <-events:
		assert.Equal(t, []string{models.SettingSiteName}, e.Keys)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the settings event")
	}

	testutil.AssertJSON(t, serve(b.handler.Public, httptest.NewRequest("GET", "/api/settings/public", nil)), &public)
	assert.Equal(t, "New Name", public[models.SettingSiteName])
}

func newAuth(t *testing.T, st *store.Store) *auth.Authenticator {
	t.Helper()
	cfg := testutil.GetTestConfig()
	return auth.NewAuthenticator(
		auth.Credentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword, Name: cfg.AdminName},
		auth.NewMemorySessions(), cfg.SessionTTL, st.Users)
}

func TestAuthHandler(t *testing.T) {
	_, st := setupStore(t)
	authn := newAuth(t, st)
	h := NewAuthHandler(authn, false)

	w := serve(h.Login, testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{Email: "admin@example.com", Password: "wrong"}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = serve(h.Login, testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = serve(h.Login, testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{Email: "Admin@Example.com", Password: "admin123"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	var login LoginResponse
	testutil.AssertJSON(t, w, &login)
	assert.Equal(t, "admin", login.User.Role)

	// /me behind the session guard
	me := middleware.RequireAdmin(authn, h.Me)
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	testutil.AssertStatus(t, serve(me, req), http.StatusOK)

	// logout kills the session
	req = httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(cookie)
	w = serve(h.Logout, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	testutil.AssertStatus(t, serve(me, req), http.StatusUnauthorized)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 6))))
	return buf.Bytes()
}

func TestImageUpload(t *testing.T) {
	blobs := newMemBlobs()
	h := NewUploadHandler(blobs)

	upload := func(name, ct string, data []byte) *httptest.ResponseRecorder {
		req := testutil.MakeMultipartRequest(t, "POST", "/api/admin/uploads", nil,
			testutil.FormFile{Field: "file", Name: name, ContentType: ct, Data: bytes.NewReader(data)})
		return serve(h.Image, req)
	}

	w := upload("logo.png", "image/png", pngBytes(t))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.UploadResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.True(t, strings.HasPrefix(resp.Key, "images/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".png"))

	// declared type is ignored, content decides
	testutil.AssertStatus(t, upload("evil.png", "image/png", []byte("<script>alert(1)</script>")), http.StatusUnsupportedMediaType)

	w = upload("huge.png", "image/png", bytes.Repeat([]byte{0}, media.MaxImageSize+1))
	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
	assert.Contains(t, w.Body.String(), "5.0 MiB")

	assert.Equal(t, 1, blobs.count())

	blobs.err = fmt.Errorf("bucket gone")
	testutil.AssertStatus(t, upload("logo.png", "image/png", pngBytes(t)), http.StatusInternalServerError)
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Engineering Notes</title>
  <item>
    <title>Scaling Postgres</title>
    <description>&lt;p&gt;How we &lt;b&gt;scaled&lt;/b&gt; our database.&lt;/p&gt;</description>
    <category>Databases</category>
  </item>
  <item>
    <title>Zero Downtime Deploys</title>
    <description>Rolling updates explained.</description>
  </item>
  <item>
    <title></title>
    <description>No title, skipped.</description>
  </item>
</channel>
</rss>`

func TestBlogImport(t *testing.T) {
	_, st := setupStore(t)
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer feed.Close()

	h := NewBlogImporter(st.Blogs)

	w := serve(h.Import, testutil.MakeRequest("POST", "/api/admin/blogs/import", models.ImportFeedRequest{URL: feed.URL}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp ImportResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Items, 2)

	first := resp.Items[0]
	assert.Equal(t, "Scaling Postgres", first.Title)
	assert.Equal(t, models.ContentDraft, first.Status)
	assert.Equal(t, "Databases", first.Category)
	assert.Equal(t, "Engineering Notes", first.Author)
	assert.Equal(t, "How we scaled our database.", first.Excerpt)
	assert.Equal(t, "General", resp.Items[1].Category)

	// a second import finds nothing new
	w = serve(h.Import, testutil.MakeRequest("POST", "/api/admin/blogs/import", models.ImportFeedRequest{URL: feed.URL, Limit: 1}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	assert.Zero(t, resp.Imported)

	// non-ASCII titles and LIKE wildcards are matched exactly
	special := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>Notes</title>
<item><title>Über Cloud Costs</title><description>a</description></item>
<item><title>100% _Uptime_</title><description>b</description></item>
</channel></rss>`))
	}))
	defer special.Close()
	for _, want := range []int{2, 0} {
		w = serve(h.Import, testutil.MakeRequest("POST", "/", models.ImportFeedRequest{URL: special.URL}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		resp = ImportResponse{}
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, want, resp.Imported)
	}

	testutil.AssertStatus(t, serve(h.Import, testutil.MakeRequest("POST", "/", models.ImportFeedRequest{URL: "ftp://x"}, nil)), http.StatusBadRequest)

	gone := httptest.NewServer(http.NotFoundHandler())
	defer gone.Close()
	testutil.AssertStatus(t, serve(h.Import, testutil.MakeRequest("POST", "/", models.ImportFeedRequest{URL: gone.URL}, nil)), http.StatusBadGateway)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "a & b", excerpt("<p>a &amp; b</p>"))
	long := strings.Repeat("word ", 100)
	got := excerpt(long)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), excerptLength+1)
}
