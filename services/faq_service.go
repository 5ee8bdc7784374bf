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

// FAQService, SSS koleksiyonunun içerik yönetimi (admin CRUD).
type FAQService interface {
	Get(ctx context.Context, id string) (*models.FAQ, error)
	Create(ctx context.Context, req *models.CreateFAQRequest) (*models.FAQ, error)
	Update(ctx context.Context, id string, req *models.UpdateFAQRequest) (*models.FAQ, error)
	Delete(ctx context.Context, id string) error
	SeedDefaults(ctx context.Context) (int, error)
}

type faqService struct {
	repo   repository.FAQRepository
	guard  *CollectionGuard
	logger *zap.Logger
}

// NewFAQService, constructor.
func NewFAQService(repo repository.FAQRepository, guard *CollectionGuard, logger *zap.Logger) FAQService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &faqService{
		repo:   repo,
		guard:  guard,
		logger: logger.Named("faq"),
	}
}

func (s *faqService) Get(ctx context.Context, id string) (*models.FAQ, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *faqService) Create(ctx context.Context, req *models.CreateFAQRequest) (*models.FAQ, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	faq := &models.FAQ{
		ID:           uuid.NewString(),
		Question:     req.Question,
		Answer:       req.Answer,
		DisplayOrder: req.DisplayOrder,
	}

	_, err := s.guard.Mutate(ctx, models.CollectionFAQs, true, func(ctx context.Context) (int64, error) {
		return s.repo.Create(ctx, faq)
	})
	if err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *faqService) Update(ctx context.Context, id string, req *models.UpdateFAQRequest) (*models.FAQ, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var faq *models.FAQ
	err := s.guard.Touch(ctx, models.CollectionFAQs, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Question != nil {
			current.Question = *req.Question
		}
		if req.Answer != nil {
			current.Answer = *req.Answer
		}
		if err := s.repo.Update(ctx, current); err != nil {
			return err
		}
		faq = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *faqService) Delete(ctx context.Context, id string) error {
	_, err := s.guard.Mutate(ctx, models.CollectionFAQs, true, func(ctx context.Context) (int64, error) {
		return s.repo.Delete(ctx, id)
	})
	return err
}

func (s *faqService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range models.DefaultFAQs {
		req := models.DefaultFAQs[i]
		if _, err := s.Create(ctx, &req); err != nil {
			return i, fmt.Errorf("failed to seed faq: %w", err)
		}
	}

	s.logger.Info("default faqs seeded", zap.Int("count", len(models.DefaultFAQs)))
	return len(models.DefaultFAQs), nil
}
