package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/pkg/ratelimit"
	"github.com/akinalp/sitekit/services"
)

// stubAuth, sadece "secret-pass" şifresini kabul eden AuthService.
type stubAuth struct {
	services.AuthService
	changed []string
}

func (s *stubAuth) Login(_ context.Context, req *models.LoginRequest) (*models.AuthTokens, error) {
	if req.Password != "secret-pass" {
		return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
	}
	return &models.AuthTokens{AccessToken: "access", RefreshToken: "refresh", Admin: &models.Admin{ID: "a1", Username: req.Username}}, nil
}

func (s *stubAuth) ChangePassword(_ context.Context, adminID, _, _ string) error {
	s.changed = append(s.changed, adminID)
	return nil
}

func login(h *AuthHandler, password string) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"username":"owner","password":%q}`, password)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:51000"
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestAuthHandler_LoginRateLimited(t *testing.T) {
	limiter := ratelimit.NewWindowLimiter(3, time.Minute)
	t.Cleanup(limiter.Close)
	h := NewAuthHandler(&stubAuth{}, limiter)

	for range 3 {
		assert.Equal(t, http.StatusUnauthorized, login(h, "wrong").Code)
	}

	rec := login(h, "secret-pass")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestAuthHandler_SuccessfulLoginResetsLimiter(t *testing.T) {
	limiter := ratelimit.NewWindowLimiter(3, time.Minute)
	t.Cleanup(limiter.Close)
	h := NewAuthHandler(&stubAuth{}, limiter)

	login(h, "wrong")
	login(h, "wrong")
	require.Equal(t, http.StatusOK, login(h, "secret-pass").Code)

	for range 3 {
		assert.Equal(t, http.StatusUnauthorized, login(h, "wrong").Code)
	}
}

func TestAuthHandler_ChangePasswordRequiresAdmin(t *testing.T) {
	auth := &stubAuth{}
	h := NewAuthHandler(auth, nil)
	body := `{"current_password":"old-pass-1","new_password":"new-pass-1"}`

	req := httptest.NewRequest(http.MethodPost, "/api/auth/password", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/password", strings.NewReader(body))
	req = req.WithContext(WithAdmin(req.Context(), &models.Admin{ID: "a1"}))
	rec = httptest.NewRecorder()
	h.ChangePassword(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a1"}, auth.changed)
}
