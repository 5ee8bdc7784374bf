// Package main, sitekit backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Logger ve config'i yükle
//  2. Gömülü çevirileri yükle (iletişim bildirim e-postaları)
//  3. Database'i başlat (embed edilmiş migration'lar ile)
//  4. Repository'leri oluştur
//  5. WebSocket Hub'ı başlat
//  6. Service'leri oluştur, bootstrap admin ve varsayılan içeriği ekle
//  7. Handler'ları ve route'ları bağla
//  8. CORS + logging + recovery middleware'larını sar
//  9. HTTP Server'ı başlat, graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/akinalp/sitekit/config"
	"github.com/akinalp/sitekit/database"
	"github.com/akinalp/sitekit/middleware"
	"github.com/akinalp/sitekit/pkg/i18n"
	"github.com/akinalp/sitekit/pkg/logger"
	"github.com/akinalp/sitekit/ws"
)

func main() {
	log, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	log.Info("sitekit server starting")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Info("config loaded", zap.Int("port", cfg.Server.Port), zap.String("database", cfg.Database.Path))

	// ─── 2. i18n (bildirim e-postaları) ───
	if err := i18n.LoadEmbedded(); err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	if !i18n.IsSupported(cfg.Contact.Language) {
		log.Warn("unsupported CONTACT_LANGUAGE, falling back to default",
			zap.String("language", cfg.Contact.Language),
			zap.String("default", i18n.DefaultLanguage),
		)
	}
	log.Debug("translations loaded", zap.Int("keys", i18n.KeyCount(i18n.DefaultLanguage)))

	// ─── 3. Database ───
	migrations, err := database.Migrations()
	if err != nil {
		return err
	}
	db, err := database.New(cfg.Database.Path, migrations, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// ─── 4. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 5. WebSocket Hub ───
	hub := ws.NewHub(log)
	go hub.Run()

	// ─── 6. Service Layer ───
	svcs, limiters, err := initServices(repos, db, hub, cfg, log)
	if err != nil {
		return err
	}
	defer limiters.Close()
	defer svcs.Guard.Close()

	ctx := context.Background()
	if err := svcs.Auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if _, err := svcs.Catalog.SeedDefaults(ctx); err != nil {
		return err
	}
	if _, err := svcs.FAQ.SeedDefaults(ctx); err != nil {
		return err
	}

	// ─── 7. Handlers + Routes ───
	h := initHandlers(svcs, limiters, db, hub, cfg, log)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth)

	// ─── 8. Middleware ───
	// CORS_ORIGINS boşsa cors wrapper'ı eklenmez: rs/cors boş listeyi "*" sayar,
	// biz ise sadece aynı origin'e izin vermek istiyoruz.
	var handler http.Handler = mux
	if len(cfg.Server.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler(mux)
	}
	handler = middleware.Recovery(log)(middleware.RequestLogger(log)(handler))

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Süresi dolmuş refresh token oturumlarını saatlik temizle
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go runSessionCleanup(cleanupCtx, svcs, log)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server mevcut
	// request'lerin bitmesini bekler (5sn timeout).
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

func runSessionCleanup(ctx context.Context, svcs *Services, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svcs.Auth.CleanupExpiredSessions(ctx); err != nil {
				log.Warn("session cleanup failed", zap.Error(err))
			}
		}
	}
}
