// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// admin: JWT access token zorunlu; diğerleri public.
package main

import (
	"net/http"

	"github.com/akinalp/sitekit/middleware"
	"github.com/akinalp/sitekit/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Go 1.22 router'ı en spesifik pattern'i seçer: "/api/services/icons"
// "/api/{collection}/reorder" ile çakışmaz, "/api/health" da "/api/{collection}" ile.
func initRoutes(mux *http.ServeMux, h *Handlers, authService services.AuthService) {
	authMw := middleware.NewAuthMiddleware(authService)
	admin := authMw.RequireFunc

	// Health
	mux.HandleFunc("GET /api/health", h.Health.Check)

	// Auth
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.Handle("GET /api/auth/me", admin(h.Auth.Me))
	mux.Handle("POST /api/auth/password", admin(h.Auth.ChangePassword))

	// Koleksiyonlar — okuma public, sıralama admin
	mux.HandleFunc("GET /api/{collection}", h.Collection.List)
	mux.Handle("POST /api/{collection}/reorder", admin(h.Collection.Reorder))
	mux.Handle("GET /api/reorder/settings", admin(h.Collection.Settings))

	// Hizmetler
	mux.HandleFunc("GET /api/services/icons", h.Catalog.Icons)
	mux.Handle("POST /api/services", admin(h.Catalog.Create))
	mux.Handle("PATCH /api/services/{id}", admin(h.Catalog.Update))
	mux.Handle("DELETE /api/services/{id}", admin(h.Catalog.Delete))

	// SSS
	mux.Handle("POST /api/faqs", admin(h.FAQ.Create))
	mux.Handle("PATCH /api/faqs/{id}", admin(h.FAQ.Update))
	mux.Handle("DELETE /api/faqs/{id}", admin(h.FAQ.Delete))

	// Yedekler
	mux.Handle("POST /api/admin/backups", admin(h.Backup.Create))
	mux.Handle("GET /api/admin/backups", admin(h.Backup.List))
	mux.Handle("DELETE /api/admin/backups/{name}", admin(h.Backup.Delete))
	mux.Handle("GET /api/admin/backups/{name}", admin(h.Backup.Download))
	mux.Handle("POST /api/admin/backups/upload", admin(h.Backup.Upload))
	mux.Handle("POST /api/admin/backups/{name}/restore", admin(h.Backup.Restore))

	// Blog: yayınlanmış yazılar public, taslaklar ve yazma admin
	mux.HandleFunc("GET /api/blog-posts", h.Blog.List)
	mux.HandleFunc("GET /api/blog-posts/{id}", h.Blog.Get)
	mux.Handle("GET /api/admin/blog-posts", admin(h.Blog.ListAll))
	mux.Handle("POST /api/blog-posts", admin(h.Blog.Create))
	mux.Handle("PATCH /api/blog-posts/{id}", admin(h.Blog.Update))
	mux.Handle("DELETE /api/blog-posts/{id}", admin(h.Blog.Delete))

	// Duyuru
	mux.HandleFunc("GET /api/announcement", h.Announcement.Current)
	mux.Handle("GET /api/admin/announcement", admin(h.Announcement.Get))
	mux.Handle("PUT /api/admin/announcement", admin(h.Announcement.Update))

	// İletişim formu
	mux.HandleFunc("POST /api/contact", h.Contact.Submit)

	// WebSocket — tarayıcılar upgrade sırasında custom header gönderemediği için
	// token query parameter olarak gelir; WS handler kendi içinde doğrular.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
