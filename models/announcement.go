package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Duyuru tipleri, sitede bandın rengini belirler.
const (
	AnnouncementInfo    = "info"
	AnnouncementSuccess = "success"
	AnnouncementWarning = "warning"
	AnnouncementDanger  = "danger"
)

// Announcement, site üst bandında gösterilen tek duyuru.
type Announcement struct {
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateAnnouncementRequest, duyuruyu tamamen değiştirir.
// Text boşsa duyuru pasif yapılır.
type UpdateAnnouncementRequest struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// Validate, isteği doğrular ve normalize eder.
func (r *UpdateAnnouncementRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if utf8.RuneCountInString(r.Text) > 500 {
		return fmt.Errorf("announcement text must be at most 500 characters")
	}

	if r.Type == "" {
		r.Type = AnnouncementInfo
	}
	switch r.Type {
	case AnnouncementInfo, AnnouncementSuccess, AnnouncementWarning, AnnouncementDanger:
	default:
		return fmt.Errorf("announcement type must be one of info, success, warning, danger")
	}

	if r.Text == "" {
		r.Active = false
	}
	return nil
}
