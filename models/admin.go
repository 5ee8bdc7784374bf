// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Admin, yönetim paneline giriş yapabilen kullanıcı.
// Site içeriği (hizmetler, SSS) sadece admin'ler tarafından düzenlenir.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a DAHİL ETME (güvenlik!)
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest, giriş yaparken admin panelinden gelen veri.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// RefreshRequest, access token yenileme isteği.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthTokens, login/refresh yanıtı.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Admin        *Admin `json:"admin"`
}

// ValidateAdminCredentials, bootstrap admin bilgilerini kontrol eder.
// Şifre bcrypt'in 72 byte sınırını aşmamalı.
func ValidateAdminCredentials(username, password string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(username)); n < 3 || n > 32 {
		return fmt.Errorf("admin username must be between 3 and 32 characters")
	}
	if utf8.RuneCountInString(password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	if len(password) > 72 {
		return fmt.Errorf("admin password must be at most 72 bytes")
	}
	return nil
}
