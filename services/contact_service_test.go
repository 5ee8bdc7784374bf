package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
)

type fakeSender struct {
	sent []models.ContactRequest
	err  error
}

func (s *fakeSender) SendContactMessage(_ context.Context, msg models.ContactRequest) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestContactService_Submit(t *testing.T) {
	sender := &fakeSender{}
	svc := NewContactService(sender, nil)

	err := svc.Submit(context.Background(), &models.ContactRequest{
		Name: " Jane ", Email: "jane@example.com", Message: "Kitchen sink is leaking.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Jane", sender.sent[0].Name)
}

func TestContactService_SubmitInvalid(t *testing.T) {
	sender := &fakeSender{}
	svc := NewContactService(sender, nil)

	err := svc.Submit(context.Background(), &models.ContactRequest{Name: "Jane", Email: "not-an-email", Message: "hi"})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
	assert.Empty(t, sender.sent)
}

func TestContactService_SubmitDeliveryFailure(t *testing.T) {
	svc := NewContactService(&fakeSender{err: errors.New("provider down")}, nil)

	err := svc.Submit(context.Background(), &models.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	assert.True(t, errors.Is(err, pkg.ErrInternal))
	assert.NotContains(t, err.Error(), "provider down")
}
