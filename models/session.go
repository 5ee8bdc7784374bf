package models

import "time"

// Session, JWT refresh token oturumunu temsil eder.
//
// Access token kısa ömürlü (15dk), refresh token uzun ömürlü (7 gün).
// Refresh token'ları DB'de tutarak logout'ta sadece ilgili oturumu silebiliriz.
type Session struct {
	ID           string    `json:"id"`
	AdminID      string    `json:"admin_id"`
	RefreshToken string    `json:"-"` // API'ye gönderilmez
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
