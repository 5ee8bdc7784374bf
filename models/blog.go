package models

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Blog görseli boyutları, sitede kartın görsel yüksekliğini belirler.
const (
	ImageSizeSmall  = "small"
	ImageSizeMedium = "medium"
	ImageSizeLarge  = "large"
)

// MaxBlogImageBytes, data URL içindeki görselin decode edilmiş azami boyutu (2 MB).
const MaxBlogImageBytes = 2 << 20

// imageMIMETypes, data URL'de kabul edilen görsel tipleri.
var imageMIMETypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// BlogPost, blog sayfasındaki tek bir yazı.
// Image boş olabilir; doluysa "data:image/...;base64,..." formatındadır.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	ImageSize string    `json:"image_size"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogQuery, blog listeleme parametreleri. Limit 0 ise sınırsızdır.
// IncludeDrafts sadece admin listesinde true olur.
type BlogQuery struct {
	Limit         int
	Offset        int
	IncludeDrafts bool
}

// BlogPage, sayfalanmış blog listesi. Total, sayfalamadan önceki toplam yazı sayısıdır.
type BlogPage struct {
	Posts []BlogPost `json:"posts"`
	Total int        `json:"total"`
}

// CreateBlogPostRequest, yeni blog yazısı isteği.
// Published verilmezse yazı hemen yayınlanır.
type CreateBlogPostRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	ImageSize string `json:"image_size"`
	Published *bool  `json:"published"`
}

// Validate, CreateBlogPostRequest'i doğrular ve ImageSize'a varsayılan atar.
func (r *CreateBlogPostRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Content = strings.TrimSpace(r.Content)
	r.Image = strings.TrimSpace(r.Image)

	if err := validateBlogTitle(r.Title); err != nil {
		return err
	}
	if err := validateBlogAuthor(r.Author); err != nil {
		return err
	}
	if err := validateBlogContent(r.Content); err != nil {
		return err
	}
	if err := ValidateImageDataURL(r.Image); err != nil {
		return err
	}

	if r.ImageSize == "" {
		r.ImageSize = ImageSizeMedium
	}
	return validateImageSize(r.ImageSize)
}

// UpdateBlogPostRequest, blog yazısı güncelleme isteği (partial update).
// Image boş string ise mevcut görsel kaldırılır.
type UpdateBlogPostRequest struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Content   *string `json:"content"`
	Image     *string `json:"image"`
	ImageSize *string `json:"image_size"`
	Published *bool   `json:"published"`
}

// Validate, UpdateBlogPostRequest'i doğrular.
func (r *UpdateBlogPostRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if err := validateBlogTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Author != nil {
		*r.Author = strings.TrimSpace(*r.Author)
		if err := validateBlogAuthor(*r.Author); err != nil {
			return err
		}
	}
	if r.Content != nil {
		*r.Content = strings.TrimSpace(*r.Content)
		if err := validateBlogContent(*r.Content); err != nil {
			return err
		}
	}
	if r.Image != nil {
		*r.Image = strings.TrimSpace(*r.Image)
		if err := ValidateImageDataURL(*r.Image); err != nil {
			return err
		}
	}
	if r.ImageSize != nil {
		if err := validateImageSize(*r.ImageSize); err != nil {
			return err
		}
	}
	return nil
}

// Apply, isteği mevcut yazıya uygular.
func (r *UpdateBlogPostRequest) Apply(post *BlogPost) {
	if r.Title != nil {
		post.Title = *r.Title
	}
	if r.Author != nil {
		post.Author = *r.Author
	}
	if r.Content != nil {
		post.Content = *r.Content
	}
	if r.Image != nil {
		post.Image = *r.Image
	}
	if r.ImageSize != nil {
		post.ImageSize = *r.ImageSize
	}
	if r.Published != nil {
		post.Published = *r.Published
	}
}

// ValidateImageDataURL, boş string'i veya desteklenen tipte, geçerli base64
// içerikli ve MaxBlogImageBytes'ı aşmayan bir data URL'i kabul eder.
func ValidateImageDataURL(s string) error {
	if s == "" {
		return nil
	}

	header, data, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("image must be a base64 data URL")
	}

	mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	known := false
	for _, m := range imageMIMETypes {
		if m == mime {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported image type %q", mime)
	}

	if base64.StdEncoding.DecodedLen(len(data)) > MaxBlogImageBytes+2 {
		return fmt.Errorf("image must be at most %d bytes", MaxBlogImageBytes)
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("image is not valid base64")
	}
	if len(decoded) == 0 {
		return fmt.Errorf("image cannot be empty")
	}
	if len(decoded) > MaxBlogImageBytes {
		return fmt.Errorf("image must be at most %d bytes", MaxBlogImageBytes)
	}
	return nil
}

func validateImageSize(size string) error {
	switch size {
	case ImageSizeSmall, ImageSizeMedium, ImageSizeLarge:
		return nil
	}
	return fmt.Errorf("image_size must be one of small, medium, large")
}

func validateBlogTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > 200 {
		return fmt.Errorf("title must be between 1 and 200 characters")
	}
	return nil
}

func validateBlogAuthor(author string) error {
	if n := utf8.RuneCountInString(author); n < 1 || n > 100 {
		return fmt.Errorf("author must be between 1 and 100 characters")
	}
	return nil
}

func validateBlogContent(content string) error {
	if n := utf8.RuneCountInString(content); n < 1 || n > 50000 {
		return fmt.Errorf("content must be between 1 and 50000 characters")
	}
	return nil
}
