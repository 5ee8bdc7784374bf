package handlers

import (
	"fmt"
	"net/http"

	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// BackupHandler, veritabanı yedek endpoint'leri. Admin only.
type BackupHandler struct {
	backupService services.BackupService
}

// NewBackupHandler, constructor.
func NewBackupHandler(backupService services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Create godoc
// POST /api/admin/backups
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backupService.Create(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, backup)
}

// List godoc
// GET /api/admin/backups
func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := h.backupService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, backups)
}

// Delete godoc
// DELETE /api/admin/backups/{name}
func (h *BackupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.backupService.Delete(r.Context(), r.PathValue("name")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "backup deleted"})
}

// Download godoc
// GET /api/admin/backups/{name}
func (h *BackupHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, backup, err := h.backupService.Open(r.Context(), r.PathValue("name"))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.Name))
	http.ServeContent(w, r, backup.Name, backup.CreatedAt, f)
}

// Upload godoc
// POST /api/admin/backups/upload
// multipart/form-data, dosya alanı: backup_file
func (h *BackupHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Multipart zarfı için küçük bir pay bırakılır; dosya sınırını servis uygular.
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxBackupUploadBytes+1<<20)

	file, _, err := r.FormFile("backup_file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "backup_file is required")
		return
	}
	defer file.Close()

	backup, err := h.backupService.Upload(r.Context(), file)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, backup)
}

// Restore godoc
// POST /api/admin/backups/{name}/restore
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	result, err := h.backupService.Restore(r.Context(), r.PathValue("name"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}
