// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"go.uber.org/zap"

	"github.com/akinalp/sitekit/config"
	"github.com/akinalp/sitekit/database"
	"github.com/akinalp/sitekit/handlers"
	"github.com/akinalp/sitekit/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Collection   *handlers.CollectionHandler
	Catalog      *handlers.CatalogHandler
	FAQ          *handlers.FAQHandler
	Backup       *handlers.BackupHandler
	Contact      *handlers.ContactHandler
	Blog         *handlers.BlogHandler
	Announcement *handlers.AnnouncementHandler
	Health       *handlers.HealthHandler
	WS           *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, db *database.DB, hub *ws.Hub, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Collection:   handlers.NewCollectionHandler(svcs.Collection),
		Catalog:      handlers.NewCatalogHandler(svcs.Catalog),
		FAQ:          handlers.NewFAQHandler(svcs.FAQ),
		Backup:       handlers.NewBackupHandler(svcs.Backup),
		Contact:      handlers.NewContactHandler(svcs.Contact, limiters.Contact),
		Blog:         handlers.NewBlogHandler(svcs.Blog),
		Announcement: handlers.NewAnnouncementHandler(svcs.Announcement),
		Health:       handlers.NewHealthHandler(db.Conn, hub),
		WS:           ws.NewHandler(hub, svcs.Auth, svcs.Collection, cfg.Server.CORSOrigins, logger),
	}
}
