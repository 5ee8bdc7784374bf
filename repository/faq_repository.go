package repository

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// FAQRepository, sıkça sorulan sorular için veri erişim interface'i.
type FAQRepository interface {
	// List, aktif FAQ'ları revizyon ile döner. Query arama ve sayfalama uygular;
	// filtrelenmiş sonuçta da item'lar display_order sırasındadır.
	List(ctx context.Context, query models.FAQQuery) (*models.CollectionView[models.FAQ], error)
	GetByID(ctx context.Context, id string) (*models.FAQ, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, faq *models.FAQ) (int64, error)
	Update(ctx context.Context, faq *models.FAQ) error
	Delete(ctx context.Context, id string) (int64, error)
}
