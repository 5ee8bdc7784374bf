package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/pkg/ratelimit"
	"github.com/akinalp/sitekit/services"
)

// maxContactBody, iletişim formu gövdesinin üst sınırı (64 KB).
const maxContactBody = 64 << 10

// ContactHandler, public iletişim formu endpoint'i.
type ContactHandler struct {
	contactService services.ContactService
	limiter        *ratelimit.CooldownLimiter
}

// NewContactHandler, constructor. limiter nil ise rate limiting devre dışı kalır.
func NewContactHandler(contactService services.ContactService, limiter *ratelimit.CooldownLimiter) *ContactHandler {
	return &ContactHandler{contactService: contactService, limiter: limiter}
}

// Submit godoc
// POST /api/contact
// Body: { "name": "...", "email": "...", "phone": "...", "message": "..." }
//
// IP başına pencere içinde sınırlı sayıda mesaj; aşılırsa cooldown süresince 429.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.limiter != nil && !h.limiter.Allow(ip) {
		retryAfter := h.limiter.CooldownSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many messages, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.contactService.Submit(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusAccepted, map[string]string{"message": "message sent"})
}
