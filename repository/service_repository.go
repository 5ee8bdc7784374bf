package repository

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// ServiceRepository, hizmet kartları için veri erişim interface'i.
//
// Create ve Delete koleksiyonun üyeliğini değiştirdiği için koleksiyon
// revizyonunu aynı transaction içinde artırır ve yeni revizyonu döner.
type ServiceRepository interface {
	// ListActive, aktif hizmetleri koleksiyon revizyonu ile birlikte döner.
	ListActive(ctx context.Context) (*models.CollectionView[models.Service], error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, service *models.Service) (int64, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) (int64, error)
}
