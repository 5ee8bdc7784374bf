package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/pkg/email"
)

// ContactService, sitedeki iletişim formunu işletmenin e-posta kutusuna iletir.
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) error
}

type contactService struct {
	sender email.Sender
	logger *zap.Logger
}

// NewContactService, constructor.
func NewContactService(sender email.Sender, logger *zap.Logger) ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contactService{sender: sender, logger: logger.Named("contact")}
}

func (s *contactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := s.sender.SendContactMessage(ctx, *req); err != nil {
		s.logger.Error("contact message delivery failed", zap.Error(err))
		return fmt.Errorf("%w: message could not be delivered", pkg.ErrInternal)
	}

	s.logger.Info("contact message delivered", zap.String("from", req.Email))
	return nil
}
