package repository

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// AnnouncementRepository, tek satırlık site duyurusu.
type AnnouncementRepository interface {
	Get(ctx context.Context) (*models.Announcement, error)
	Save(ctx context.Context, a *models.Announcement) error
}
