// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/akinalp/sitekit/config"
	"github.com/akinalp/sitekit/pkg/email"
	"github.com/akinalp/sitekit/pkg/ratelimit"
	"github.com/akinalp/sitekit/services"
	"github.com/akinalp/sitekit/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth         services.AuthService
	Collection   services.CollectionService
	Catalog      services.CatalogService
	FAQ          services.FAQService
	Backup       services.BackupService
	Contact      services.ContactService
	Blog         services.BlogService
	Announcement services.AnnouncementService

	// Guard, kapanışta read cache'in temizleme goroutine'ini durdurmak için tutulur.
	Guard *services.CollectionGuard
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login   *ratelimit.WindowLimiter
	Contact *ratelimit.CooldownLimiter
}

// Close, limiter'ların cleanup goroutine'lerini durdurur.
func (l *RateLimiters) Close() {
	l.Login.Close()
	l.Contact.Close()
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
// Reorder policy adı geçersizse hata döner — sunucu yanlış konfigürasyonla açılmaz.
func initServices(
	repos *Repositories,
	backuper services.DatabaseBackuper,
	hub ws.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (*Services, *RateLimiters, error) {
	settings, err := services.NewReorderSettings(
		cfg.Reorder.RowTolerance,
		cfg.Reorder.ProximityThreshold,
		cfg.Reorder.ServicesPolicy,
		cfg.Reorder.FAQsPolicy,
	)
	if err != nil {
		return nil, nil, err
	}

	guard := services.NewCollectionGuard(hub, time.Duration(cfg.Cache.ReadTTLSeconds)*time.Second, logger)

	// Resend API key yoksa mesajlar sadece loglanır (development)
	var sender email.Sender
	if cfg.Contact.ResendAPIKey != "" && cfg.Contact.ToEmail != "" {
		sender = email.NewResendSender(cfg.Contact.ResendAPIKey, cfg.Contact.FromEmail, cfg.Contact.ToEmail, cfg.Contact.Language)
	} else {
		logger.Warn("RESEND_API_KEY or CONTACT_TO_EMAIL not set, contact messages will only be logged")
		sender = email.NewLogSender(logger)
	}

	svcs := &Services{
		Auth: services.NewAuthService(
			repos.Admin,
			repos.Session,
			cfg.JWT.Secret,
			cfg.JWT.AccessTokenExpiry,
			cfg.JWT.RefreshTokenExpiry,
			logger,
		),
		Collection:   services.NewCollectionService(repos.Collection, repos.Service, repos.FAQ, guard, settings, logger),
		Catalog:      services.NewCatalogService(repos.Service, guard, logger),
		FAQ:          services.NewFAQService(repos.FAQ, guard, logger),
		Backup:       services.NewBackupService(backuper, repos.Restore, guard, cfg.Database.BackupDir, logger),
		Contact:      services.NewContactService(sender, logger),
		Blog:         services.NewBlogService(repos.Blog, logger),
		Announcement: services.NewAnnouncementService(repos.Announcement, logger),
		Guard:        guard,
	}

	limiters := &RateLimiters{
		// 15 dakikada 5 başarısız deneme
		Login: ratelimit.NewWindowLimiter(5, 15*time.Minute),
		// 10 dakikada 3 mesaj; aşılırsa 30 dakika bekleme
		Contact: ratelimit.NewCooldownLimiter(3, 10*time.Minute, 30*time.Minute),
	}

	return svcs, limiters, nil
}
