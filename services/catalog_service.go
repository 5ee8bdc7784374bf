package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/repository"
)

// CatalogService, "Hizmetler" koleksiyonunun içerik yönetimi (admin CRUD).
// Okuma ve sıralama CollectionService'tedir.
type CatalogService interface {
	Get(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error)
	Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id string) error
	Icons() []models.Icon

	// SeedDefaults, tablo boşsa varsayılan hizmetleri ekler. Eklenen sayıyı döner.
	SeedDefaults(ctx context.Context) (int, error)
}

type catalogService struct {
	repo   repository.ServiceRepository
	guard  *CollectionGuard
	logger *zap.Logger
}

// NewCatalogService, constructor.
func NewCatalogService(repo repository.ServiceRepository, guard *CollectionGuard, logger *zap.Logger) CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &catalogService{
		repo:   repo,
		guard:  guard,
		logger: logger.Named("catalog"),
	}
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// Create, yeni hizmet ekler. Pozisyon eklemesi sırayı değiştirdiği için
// admin'lere collection_reset yayınlanır.
func (s *catalogService) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	service := &models.Service{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
	}

	_, err := s.guard.Mutate(ctx, models.CollectionServices, true, func(ctx context.Context) (int64, error) {
		return s.repo.Create(ctx, service)
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var service *models.Service
	err := s.guard.Touch(ctx, models.CollectionServices, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			current.Title = *req.Title
		}
		if req.Description != nil {
			current.Description = *req.Description
		}
		if req.Icon != nil {
			current.Icon = *req.Icon
		}

		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}
		service = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

// Delete, hizmeti soft-delete eder; sonraki hizmetler boşluğu kapatmak için bir kayar.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	_, err := s.guard.Mutate(ctx, models.CollectionServices, true, func(ctx context.Context) (int64, error) {
		return s.repo.Delete(ctx, id)
	})
	return err
}

func (s *catalogService) Icons() []models.Icon {
	out := make([]models.Icon, len(models.AvailableIcons))
	copy(out, models.AvailableIcons)
	return out
}

func (s *catalogService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range models.DefaultServices {
		req := models.DefaultServices[i]
		if _, err := s.Create(ctx, &req); err != nil {
			return i, fmt.Errorf("failed to seed service %q: %w", req.Title, err)
		}
	}

	s.logger.Info("default services seeded", zap.Int("count", len(models.DefaultServices)))
	return len(models.DefaultServices), nil
}
