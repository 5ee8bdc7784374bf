// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Eğer hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"net/http"
	"strings"

	"github.com/akinalp/sitekit/handlers"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require, geçerli bir admin access token'ı zorunlu kılar.
//
// HTTP header formatı: Authorization: Bearer <token>
//
// Token geçerli olsa bile admin DB'den silinmişse istek reddedilir.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		admin, err := m.authService.GetAdmin(r.Context(), claims.AdminID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found")
			return
		}
		admin.PasswordHash = ""

		next.ServeHTTP(w, r.WithContext(handlers.WithAdmin(r.Context(), admin)))
	})
}

// RequireFunc, http.HandlerFunc için kısayol.
func (m *AuthMiddleware) RequireFunc(fn http.HandlerFunc) http.Handler {
	return m.Require(fn)
}
