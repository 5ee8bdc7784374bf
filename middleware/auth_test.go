package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akinalp/sitekit/handlers"
	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// stubAuth, "good" token'ını "a1" admin'ine çözer.
type stubAuth struct {
	services.AuthService
	admins map[string]*models.Admin
}

func (s *stubAuth) ValidateAccessToken(token string) (*models.TokenClaims, error) {
	switch token {
	case "good":
		return &models.TokenClaims{AdminID: "a1"}, nil
	case "orphan":
		return &models.TokenClaims{AdminID: "deleted"}, nil
	}
	return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
}

func (s *stubAuth) GetAdmin(_ context.Context, id string) (*models.Admin, error) {
	if a, ok := s.admins[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, pkg.ErrNotFound
}

func TestAuthMiddleware_Require(t *testing.T) {
	auth := &stubAuth{admins: map[string]*models.Admin{
		"a1": {ID: "a1", Username: "owner", PasswordHash: "$2a$hash"},
	}}
	mw := NewAuthMiddleware(auth)

	var seen *models.Admin
	protected := mw.RequireFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = handlers.AdminFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer forged", http.StatusUnauthorized},
		{"deleted admin", "Bearer orphan", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				if assert.NotNil(t, seen) {
					assert.Equal(t, "a1", seen.ID)
					assert.Empty(t, seen.PasswordHash)
				}
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}
