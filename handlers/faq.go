package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// FAQHandler, SSS admin CRUD endpoint'leri.
type FAQHandler struct {
	faqService services.FAQService
}

// NewFAQHandler, constructor.
func NewFAQHandler(faqService services.FAQService) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

// Create godoc
// POST /api/faqs
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	faq, err := h.faqService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, faq)
}

// Update godoc
// PATCH /api/faqs/{id}
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	faq, err := h.faqService.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, faq)
}

// Delete godoc
// DELETE /api/faqs/{id}
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.faqService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "faq deleted"})
}
