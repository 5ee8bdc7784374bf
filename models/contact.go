package models

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ContactRequest, sitedeki iletişim formundan gelen mesaj.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Validate, ContactRequest'in geçerli olup olmadığını kontrol eder.
func (r *ContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)

	if n := utf8.RuneCountInString(r.Name); n < 1 || n > 100 {
		return fmt.Errorf("name must be between 1 and 100 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email address")
	}
	if utf8.RuneCountInString(r.Phone) > 32 {
		return fmt.Errorf("phone must be at most 32 characters")
	}
	if n := utf8.RuneCountInString(r.Message); n < 1 || n > 5000 {
		return fmt.Errorf("message must be between 1 and 5000 characters")
	}
	return nil
}
