package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Service, sitede "Hizmetler" bölümünde gösterilen tek bir hizmet kartı.
// DB'deki "services" tablosunun Go karşılığı.
type Service struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Icon, hizmet kartında kullanılabilecek bir ikon.
type Icon struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// AvailableIcons, admin panelindeki ikon seçicide listelenen ikonlar.
var AvailableIcons = []Icon{
	{Name: "Search", Class: "fas fa-search"},
	{Name: "Wrench", Class: "fas fa-wrench"},
	{Name: "Tools", Class: "fas fa-tools"},
	{Name: "Thermometer", Class: "fas fa-thermometer-half"},
	{Name: "Home", Class: "fas fa-home"},
	{Name: "Water Drop", Class: "fas fa-tint"},
	{Name: "Shower", Class: "fas fa-shower"},
	{Name: "Eye", Class: "fas fa-eye"},
	{Name: "Hammer", Class: "fas fa-hammer"},
	{Name: "Cog", Class: "fas fa-cog"},
	{Name: "Pipe", Class: "fas fa-grip-lines"},
	{Name: "Faucet", Class: "fas fa-faucet"},
	{Name: "Toilet", Class: "fas fa-toilet"},
	{Name: "Bath", Class: "fas fa-bath"},
	{Name: "Fire", Class: "fas fa-fire"},
	{Name: "Snowflake", Class: "fas fa-snowflake"},
	{Name: "Lightning", Class: "fas fa-bolt"},
	{Name: "Shield", Class: "fas fa-shield-alt"},
	{Name: "Check Circle", Class: "fas fa-check-circle"},
	{Name: "Star", Class: "fas fa-star"},
	{Name: "Award", Class: "fas fa-award"},
	{Name: "Certificate", Class: "fas fa-certificate"},
	{Name: "Clipboard", Class: "fas fa-clipboard-check"},
	{Name: "Calendar", Class: "fas fa-calendar-alt"},
	{Name: "Clock", Class: "fas fa-clock"},
}

// IsKnownIcon, class değerinin AvailableIcons içinde olup olmadığını kontrol eder.
func IsKnownIcon(class string) bool {
	for _, icon := range AvailableIcons {
		if icon.Class == class {
			return true
		}
	}
	return false
}

// CreateServiceRequest, yeni hizmet oluşturma isteği.
// DisplayOrder 0 ise hizmet listenin sonuna eklenir; aksi halde o sıraya
// yerleştirilir ve sonraki hizmetler bir kayar.
type CreateServiceRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

// Validate, CreateServiceRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateServiceRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if err := validateServiceTitle(r.Title); err != nil {
		return err
	}

	r.Description = strings.TrimSpace(r.Description)
	if utf8.RuneCountInString(r.Description) > 2000 {
		return fmt.Errorf("service description must be at most 2000 characters")
	}

	if !IsKnownIcon(r.Icon) {
		return fmt.Errorf("unknown icon %q", r.Icon)
	}

	if r.DisplayOrder < 0 {
		return fmt.Errorf("display_order cannot be negative")
	}
	return nil
}

// UpdateServiceRequest, hizmet güncelleme isteği.
// Pointer (*string) kullanılır — nil ise o alan güncellenmez (partial update).
// Sıra burada DEĞİŞTİRİLEMEZ — pozisyon değişikliğinin tek yolu reorder endpoint'idir.
type UpdateServiceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// Validate, UpdateServiceRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateServiceRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if err := validateServiceTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		if utf8.RuneCountInString(*r.Description) > 2000 {
			return fmt.Errorf("service description must be at most 2000 characters")
		}
	}
	if r.Icon != nil && !IsKnownIcon(*r.Icon) {
		return fmt.Errorf("unknown icon %q", *r.Icon)
	}
	return nil
}

func validateServiceTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > 150 {
		return fmt.Errorf("service title must be between 1 and 150 characters")
	}
	return nil
}
