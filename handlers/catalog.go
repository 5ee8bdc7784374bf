package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// CatalogHandler, hizmet kartlarının admin CRUD endpoint'leri.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler, constructor.
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Icons godoc
// GET /api/services/icons
func (h *CatalogHandler) Icons(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.catalogService.Icons())
}

// Create godoc
// POST /api/services
// display_order verilmezse (0) hizmet sona eklenir.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, service)
}

// Update godoc
// PATCH /api/services/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, service)
}

// Delete godoc
// DELETE /api/services/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "service deleted"})
}
