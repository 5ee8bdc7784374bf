// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Cache    CacheConfig
	Contact  ContactConfig
	Reorder  ReorderConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string // Boşsa sadece aynı origin
}

// DatabaseConfig, SQLite database ve yedek ayarları.
type DatabaseConfig struct {
	Path      string // SQLite dosya yolu (ör: ./data/sitekit.db)
	BackupDir string // VACUUM INTO yedeklerinin yazılacağı dizin
}

// JWTConfig, JWT token ayarları.
type JWTConfig struct {
	Secret             string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry  int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int    // Gün cinsinden (varsayılan: 7)
}

// AdminConfig, ilk açılışta oluşturulacak admin hesabı.
// Her iki değer de boşsa bootstrap atlanır.
type AdminConfig struct {
	Username string
	Password string
}

// CacheConfig, public okuma cache'i.
type CacheConfig struct {
	ReadTTLSeconds int // 0 → cache kapalı
}

// ContactConfig, iletişim formu e-posta ayarları.
// APIKey boşsa form mesajları sadece loglanır.
type ContactConfig struct {
	ResendAPIKey string
	FromEmail    string
	ToEmail      string
	Language     string // Bildirim e-postasının dili (en, tr)
}

// ReorderConfig, sürükle-bırak sıralama ayarları.
// Policy alanları boşsa koleksiyonun varsayılan policy'si kullanılır.
type ReorderConfig struct {
	RowTolerance       float64
	ProximityThreshold float64
	ServicesPolicy     string
	FAQsPolicy         string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyası yoksa hata vermez, sessizce devam eder.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("READ_CACHE_TTL_SECONDS", "30"))
	if err != nil || cacheTTL < 0 {
		return nil, fmt.Errorf("invalid READ_CACHE_TTL_SECONDS: %q", getEnv("READ_CACHE_TTL_SECONDS", ""))
	}

	rowTolerance, err := strconv.ParseFloat(getEnv("REORDER_ROW_TOLERANCE", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REORDER_ROW_TOLERANCE: %w", err)
	}

	proximity, err := strconv.ParseFloat(getEnv("REORDER_PROXIMITY_THRESHOLD", "250"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REORDER_PROXIMITY_THRESHOLD: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        port,
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		},
		Database: DatabaseConfig{
			Path:      getEnv("DATABASE_PATH", "./data/sitekit.db"),
			BackupDir: getEnv("BACKUP_DIR", "./data/backups"),
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Cache: CacheConfig{
			ReadTTLSeconds: cacheTTL,
		},
		Contact: ContactConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("CONTACT_FROM_EMAIL", ""),
			ToEmail:      getEnv("CONTACT_TO_EMAIL", ""),
			Language:     getEnv("CONTACT_LANGUAGE", "en"),
		},
		Reorder: ReorderConfig{
			RowTolerance:       rowTolerance,
			ProximityThreshold: proximity,
			ServicesPolicy:     getEnv("REORDER_SERVICES_POLICY", ""),
			FAQsPolicy:         getEnv("REORDER_FAQS_POLICY", ""),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitList, virgülle ayrılmış listeyi parçalar; boş elemanları atlar.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
