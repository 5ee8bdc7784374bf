package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// FAQ, "Sıkça Sorulan Sorular" bölümündeki tek bir soru-cevap.
type FAQ struct {
	ID           string    `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FAQQuery, FAQ listeleme parametreleri.
// Limit 0 ise sınırsızdır. Search boş değilse soru ve cevapta büyük/küçük harf duyarsız arama yapılır.
type FAQQuery struct {
	Search string
	Limit  int
	Offset int
}

// IsFiltered, sorgunun tam koleksiyon yerine bir alt küme döndürüp döndürmediğini söyler.
func (q FAQQuery) IsFiltered() bool {
	return q.Search != "" || q.Limit > 0 || q.Offset > 0
}

// CreateFAQRequest, yeni FAQ oluşturma isteği.
type CreateFAQRequest struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
}

// Validate, CreateFAQRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateFAQRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	r.Answer = strings.TrimSpace(r.Answer)
	if err := validateFAQText(r.Question, r.Answer); err != nil {
		return err
	}
	if r.DisplayOrder < 0 {
		return fmt.Errorf("display_order cannot be negative")
	}
	return nil
}

// UpdateFAQRequest, FAQ güncelleme isteği (partial update, sıra hariç).
type UpdateFAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// Validate, UpdateFAQRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateFAQRequest) Validate() error {
	if r.Question != nil {
		*r.Question = strings.TrimSpace(*r.Question)
		if n := utf8.RuneCountInString(*r.Question); n < 1 || n > 500 {
			return fmt.Errorf("question must be between 1 and 500 characters")
		}
	}
	if r.Answer != nil {
		*r.Answer = strings.TrimSpace(*r.Answer)
		if n := utf8.RuneCountInString(*r.Answer); n < 1 || n > 5000 {
			return fmt.Errorf("answer must be between 1 and 5000 characters")
		}
	}
	return nil
}

func validateFAQText(question, answer string) error {
	if n := utf8.RuneCountInString(question); n < 1 || n > 500 {
		return fmt.Errorf("question must be between 1 and 500 characters")
	}
	if n := utf8.RuneCountInString(answer); n < 1 || n > 5000 {
		return fmt.Errorf("answer must be between 1 and 5000 characters")
	}
	return nil
}
