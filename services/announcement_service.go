package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/repository"
)

// AnnouncementService, site duyurusunu yönetir.
type AnnouncementService interface {
	// Current, aktif duyuruyu döner; aktif duyuru yoksa nil.
	Current(ctx context.Context) (*models.Announcement, error)
	// Get, admin paneli için duyurunun tam halini (pasif olsa da) döner.
	Get(ctx context.Context) (*models.Announcement, error)
	Update(ctx context.Context, req *models.UpdateAnnouncementRequest) (*models.Announcement, error)
}

type announcementService struct {
	repo   repository.AnnouncementRepository
	logger *zap.Logger
}

// NewAnnouncementService, constructor.
func NewAnnouncementService(repo repository.AnnouncementRepository, logger *zap.Logger) AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &announcementService{repo: repo, logger: logger.Named("announcement")}
}

func (s *announcementService) Current(ctx context.Context) (*models.Announcement, error) {
	a, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !a.Active || a.Text == "" {
		return nil, nil
	}
	return a, nil
}

func (s *announcementService) Get(ctx context.Context) (*models.Announcement, error) {
	return s.repo.Get(ctx)
}

func (s *announcementService) Update(ctx context.Context, req *models.UpdateAnnouncementRequest) (*models.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	a := &models.Announcement{Text: req.Text, Type: req.Type, Active: req.Active}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement updated", zap.Bool("active", a.Active), zap.String("type", a.Type))
	return a, nil
}
