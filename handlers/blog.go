package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// maxBlogBody, blog isteği gövdesinin üst sınırı. Görsel base64 data URL olarak
// gövdede geldiği için MaxBlogImageBytes'ın base64 karşılığından büyüktür.
const maxBlogBody = 4 << 20

// BlogHandler, blog yazısı endpoint'leri.
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler, constructor.
func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List godoc
// GET /api/blog-posts?limit=10&offset=0
// Public: sadece yayınlanmış yazılar, yeniden eskiye.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListAll godoc
// GET /api/admin/blog-posts?limit=10&offset=0
// Admin: taslaklar dahil.
func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request, includeDrafts bool) {
	limit, offset, err := parsePaging(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.blogService.List(r.Context(), models.BlogQuery{
		Limit:         limit,
		Offset:        offset,
		IncludeDrafts: includeDrafts,
	})
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// Get godoc
// GET /api/blog-posts/{id}
// Public: taslak yazı 404 döner.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.Get(r.Context(), r.PathValue("id"), false)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Create godoc
// POST /api/blog-posts
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBlogBody)

	var req models.CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.blogService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, post)
}

// Update godoc
// PATCH /api/blog-posts/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBlogBody)

	var req models.UpdateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.blogService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Delete godoc
// DELETE /api/blog-posts/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blogService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "blog post deleted"})
}
