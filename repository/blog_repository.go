package repository

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// BlogRepository, blog yazıları için veri erişim interface'i.
// Blog sıralanabilir bir koleksiyon değildir; revizyon tutulmaz.
type BlogRepository interface {
	// List, yazıları yeniden eskiye döner. IncludeDrafts false ise sadece yayınlananlar.
	List(ctx context.Context, query models.BlogQuery) (*models.BlogPage, error)
	// GetByID, yazıyı döner. includeDrafts false ise yayınlanmamış yazı ErrNotFound'dur.
	GetByID(ctx context.Context, id string, includeDrafts bool) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id string) error
}
