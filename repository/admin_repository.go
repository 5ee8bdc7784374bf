package repository

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// AdminRepository, admin hesapları için veri erişim interface'i.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
