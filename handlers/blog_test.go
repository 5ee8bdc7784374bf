package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/repository"
	"github.com/akinalp/sitekit/services"
	"github.com/akinalp/sitekit/testutil"
)

func setupContentRoutes(t *testing.T) *http.ServeMux {
	t.Helper()

	db := testutil.SetupTestDB(t)
	guard := services.NewCollectionGuard(nil, 0, nil)
	t.Cleanup(guard.Close)

	blog := NewBlogHandler(services.NewBlogService(repository.NewSQLiteBlogRepo(db.Conn), nil))
	announcement := NewAnnouncementHandler(services.NewAnnouncementService(repository.NewSQLiteAnnouncementRepo(db.Conn), nil))
	backup := NewBackupHandler(services.NewBackupService(
		db, repository.NewSQLiteRestoreRepo(db.Conn), guard, filepath.Join(t.TempDir(), "backups"), nil,
	))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/blog-posts", blog.List)
	mux.HandleFunc("GET /api/blog-posts/{id}", blog.Get)
	mux.HandleFunc("GET /api/admin/blog-posts", blog.ListAll)
	mux.HandleFunc("POST /api/blog-posts", blog.Create)
	mux.HandleFunc("PATCH /api/blog-posts/{id}", blog.Update)
	mux.HandleFunc("DELETE /api/blog-posts/{id}", blog.Delete)
	mux.HandleFunc("GET /api/announcement", announcement.Current)
	mux.HandleFunc("PUT /api/admin/announcement", announcement.Update)
	mux.HandleFunc("POST /api/admin/backups", backup.Create)
	mux.HandleFunc("GET /api/admin/backups/{name}", backup.Download)
	mux.HandleFunc("POST /api/admin/backups/upload", backup.Upload)
	mux.HandleFunc("POST /api/admin/backups/{name}/restore", backup.Restore)
	return mux
}

func TestBlogHandler_DraftsArePrivate(t *testing.T) {
	mux := setupContentRoutes(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/blog-posts", map[string]any{
		"title": "Coming soon", "author": "Ali", "content": "WIP", "published": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	draft := decode[models.BlogPost](t, rec).Data

	rec = doJSON(t, mux, http.MethodGet, "/api/blog-posts/"+draft.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/blog-posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[models.BlogPage](t, rec).Data.Total)

	rec = doJSON(t, mux, http.MethodGet, "/api/admin/blog-posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.BlogPage](t, rec).Data.Total)

	rec = doJSON(t, mux, http.MethodPatch, "/api/blog-posts/"+draft.ID, map[string]any{"published": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/blog-posts/"+draft.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Coming soon", decode[models.BlogPost](t, rec).Data.Title)

	rec = doJSON(t, mux, http.MethodDelete, "/api/blog-posts/"+draft.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, mux, http.MethodDelete, "/api/blog-posts/"+draft.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogHandler_RejectsBadInput(t *testing.T) {
	mux := setupContentRoutes(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/blog-posts", map[string]any{
		"title": "Pic", "author": "Ali", "content": "x", "image": "https://example.com/a.png",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/blog-posts?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/blog-posts?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnnouncementHandler_CurrentFollowsActiveFlag(t *testing.T) {
	mux := setupContentRoutes(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/announcement", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[*models.Announcement](t, rec).Data)

	rec = doJSON(t, mux, http.MethodPut, "/api/admin/announcement", map[string]any{
		"text": "Closed Friday", "type": "warning", "active": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/announcement", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode[*models.Announcement](t, rec).Data
	require.NotNil(t, current)
	assert.Equal(t, models.AnnouncementWarning, current.Type)

	rec = doJSON(t, mux, http.MethodPut, "/api/admin/announcement", map[string]any{"text": "x", "type": "loud"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackupHandler_DownloadUploadRestore(t *testing.T) {
	mux := setupContentRoutes(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/admin/backups", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Backup](t, rec).Data

	rec = doJSON(t, mux, http.MethodGet, "/api/admin/backups/"+created.Name, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), created.Name)
	content := rec.Body.Bytes()
	assert.EqualValues(t, created.SizeBytes, len(content))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("backup_file", "site.db")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/backups/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	uploaded := decode[models.Backup](t, rec).Data
	assert.NotEqual(t, created.Name, uploaded.Name)

	rec = doJSON(t, mux, http.MethodPost, "/api/admin/backups/upload", map[string]string{"not": "multipart"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/admin/backups/"+uploaded.Name+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[models.RestoreResult](t, rec).Data
	assert.Equal(t, uploaded.Name, result.Backup)
	assert.NotEmpty(t, result.SafetyBackup)

	rec = doJSON(t, mux, http.MethodGet, "/api/admin/backups/sitekit-20200101-000000.db", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
