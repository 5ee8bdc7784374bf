package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// AnnouncementHandler, site duyurusu endpoint'leri.
type AnnouncementHandler struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementHandler, constructor.
func NewAnnouncementHandler(announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// Current godoc
// GET /api/announcement
// Public: aktif duyuru yoksa data null döner.
func (h *AnnouncementHandler) Current(w http.ResponseWriter, r *http.Request) {
	a, err := h.announcementService.Current(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, a)
}

// Get godoc
// GET /api/admin/announcement
func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.announcementService.Get(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, a)
}

// Update godoc
// PUT /api/admin/announcement
// Body: { "text": "...", "type": "info", "active": true }
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.announcementService.Update(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, a)
}
