package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// maxReorderBody, reorder isteği gövdesinin üst sınırı (1 MB).
const maxReorderBody = 1 << 20

// CollectionHandler, sıralanabilir koleksiyonların okuma ve sıralama endpoint'leri.
type CollectionHandler struct {
	collectionService services.CollectionService
}

// NewCollectionHandler, constructor.
func NewCollectionHandler(collectionService services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// List godoc
// GET /api/{collection}
// GET /api/faqs?search=garanti&limit=10&offset=0
//
// Public — site bu endpoint'ten hizmet ve SSS listesini display_order sırasıyla çeker.
// Yanıt koleksiyonun revizyonunu da taşır; admin editörü reorder isteğinde bunu gönderir.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := collectionFromPath(w, r)
	if !ok {
		return
	}

	switch kind {
	case models.CollectionServices:
		view, err := h.collectionService.ListServices(r.Context())
		if err != nil {
			pkg.Error(w, err)
			return
		}
		pkg.JSON(w, http.StatusOK, view)

	case models.CollectionFAQs:
		query, err := parseFAQQuery(r)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		view, err := h.collectionService.ListFAQs(r.Context(), query)
		if err != nil {
			pkg.Error(w, err)
			return
		}
		pkg.JSON(w, http.StatusOK, view)
	}
}

// Reorder godoc
// POST /api/{collection}/reorder
// Body: { "items": [{ "id": "...", "display_order": 1 }, ...], "revision": 7 }
//
// Tam sırayı alır (delta değil). Payload koleksiyondaki aktif item'ların tamamını
// tam bir kez içermeli; aksi halde 400. Revizyon eskiyse 409 — istemci yeniden yükler.
func (h *CollectionHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	kind, ok := collectionFromPath(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReorderBody)

	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.collectionService.Reorder(r.Context(), kind, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, view)
}

// Settings godoc
// GET /api/reorder/settings
// Admin editörünün geometri eşikleri ve koleksiyon başına policy adları.
func (h *CollectionHandler) Settings(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.collectionService.Settings())
}

// collectionFromPath, {collection} path değerini doğrular. Bilinmeyen koleksiyon → 404.
func collectionFromPath(w http.ResponseWriter, r *http.Request) (models.CollectionKind, bool) {
	kind, err := models.ParseCollectionKind(r.PathValue("collection"))
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return kind, true
}

func parseFAQQuery(r *http.Request) (models.FAQQuery, error) {
	query := models.FAQQuery{Search: strings.TrimSpace(r.URL.Query().Get("search"))}

	limit, offset, err := parsePaging(r)
	if err != nil {
		return query, err
	}
	query.Limit, query.Offset = limit, offset
	return query, nil
}

// parsePaging, limit ve offset query parametrelerini okur. Verilmeyen değer 0'dır.
func parsePaging(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()

	if l := q.Get("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 0 {
			return 0, 0, fmt.Errorf("invalid query parameter 'limit'")
		}
	}

	if o := q.Get("offset"); o != "" {
		offset, err = strconv.Atoi(o)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid query parameter 'offset'")
		}
	}

	return limit, offset, nil
}
