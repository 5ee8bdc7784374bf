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

// Blog listeleme sayfa boyutları.
const (
	DefaultBlogPageSize = 10
	MaxBlogPageSize     = 100
)

// BlogService, blog yazılarının okunması ve admin CRUD'u.
// Public okumalar sadece yayınlanmış yazıları görür.
type BlogService interface {
	List(ctx context.Context, query models.BlogQuery) (*models.BlogPage, error)
	Get(ctx context.Context, id string, includeDrafts bool) (*models.BlogPost, error)
	Create(ctx context.Context, req *models.CreateBlogPostRequest) (*models.BlogPost, error)
	Update(ctx context.Context, id string, req *models.UpdateBlogPostRequest) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type blogService struct {
	repo   repository.BlogRepository
	logger *zap.Logger
}

// NewBlogService, constructor.
func NewBlogService(repo repository.BlogRepository, logger *zap.Logger) BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &blogService{repo: repo, logger: logger.Named("blog")}
}

// List, yazıları yeniden eskiye döner. Limit 0 ise DefaultBlogPageSize kullanılır;
// MaxBlogPageSize'ı aşan limit reddedilir.
func (s *blogService) List(ctx context.Context, query models.BlogQuery) (*models.BlogPage, error) {
	if query.Limit < 0 || query.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset cannot be negative", pkg.ErrBadRequest)
	}
	if query.Limit > MaxBlogPageSize {
		return nil, fmt.Errorf("%w: limit cannot exceed %d", pkg.ErrBadRequest, MaxBlogPageSize)
	}
	if query.Limit == 0 {
		query.Limit = DefaultBlogPageSize
	}
	return s.repo.List(ctx, query)
}

func (s *blogService) Get(ctx context.Context, id string, includeDrafts bool) (*models.BlogPost, error) {
	return s.repo.GetByID(ctx, id, includeDrafts)
}

func (s *blogService) Create(ctx context.Context, req *models.CreateBlogPostRequest) (*models.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post := &models.BlogPost{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Author:    req.Author,
		Content:   req.Content,
		Image:     req.Image,
		ImageSize: req.ImageSize,
		Published: req.Published == nil || *req.Published,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("blog post created", zap.String("id", post.ID), zap.Bool("published", post.Published))
	return post, nil
}

func (s *blogService) Update(ctx context.Context, id string, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	req.Apply(post)

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("blog post deleted", zap.String("id", id))
	return nil
}
