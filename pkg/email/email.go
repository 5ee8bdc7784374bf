// Package email, iletişim formu bildirimlerinin gönderimi için soyutlama katmanı sağlar.
//
// Sender interface'i ile gönderim detayları soyutlanır. Üretimde Resend API,
// API key tanımlı değilse mesajı sadece loglayan logSender kullanılır.
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg/i18n"
)

// Sender, iletişim formu mesajını işletmenin gelen kutusuna iletir.
type Sender interface {
	SendContactMessage(ctx context.Context, msg models.ContactRequest) error
}

// resendSender, Resend API ile email gönderen Sender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Resend'de doğrulanmış domain altında olmalı
	toEmail   string // İşletmenin gelen kutusu
	localizer *i18n.Localizer
}

// NewResendSender, Resend API client'ı ile yeni bir Sender oluşturur.
// lang, bildirim e-postasının dilidir (i18n.SupportedLanguages).
func NewResendSender(apiKey, fromEmail, toEmail, lang string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
		localizer: i18n.NewLocalizer(lang),
	}
}

// SendContactMessage, form mesajını HTML ve düz metin olarak gönderir.
func (s *resendSender) SendContactMessage(ctx context.Context, msg models.ContactRequest) error {
	l := s.localizer
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", l.T("contact.from"), s.fromEmail),
		To:      []string{s.toEmail},
		Subject: l.TWithParams("contact.subject", map[string]string{"name": msg.Name}),
		Html:    renderContactHTML(l, msg),
		Text:    renderContactText(l, msg),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

// logSender, email yapılandırılmamışken kullanılan Sender — mesajı loglar.
type logSender struct {
	logger *zap.Logger
}

// NewLogSender, mesajları sadece loglayan bir Sender oluşturur (development).
func NewLogSender(logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logSender{logger: logger.Named("email")}
}

func (s *logSender) SendContactMessage(_ context.Context, msg models.ContactRequest) error {
	s.logger.Info("contact message received (email not configured)",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.Int("message_length", len(msg.Message)),
	)
	return nil
}

func renderContactText(l *i18n.Localizer, msg models.ContactRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", l.T("contact.name"), msg.Name)
	fmt.Fprintf(&b, "%s: %s\n", l.T("contact.email"), msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.T("contact.phone"), msg.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", msg.Message)
	return b.String()
}

// renderContactHTML, ziyaretçi girdisini escape ederek basit bir HTML gövdesi üretir.
func renderContactHTML(l *i18n.Localizer, msg models.ContactRequest) string {
	phone := ""
	if msg.Phone != "" {
		phone = fmt.Sprintf(`<p style="margin:0 0 8px 0;"><strong>%s:</strong> %s</p>`,
			html.EscapeString(l.T("contact.phone")), html.EscapeString(msg.Phone))
	}

	body := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>")

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px;font-family:Arial,Helvetica,sans-serif;color:#1f2937;">
  <h2 style="margin:0 0 16px 0;">%s</h2>
  <p style="margin:0 0 8px 0;"><strong>%s:</strong> %s</p>
  <p style="margin:0 0 8px 0;"><strong>%s:</strong> %s</p>
  %s
  <hr style="border:none;border-top:1px solid #e5e7eb;margin:16px 0;">
  <p style="line-height:1.6;margin:0;">%s</p>
</body>
</html>`,
		html.EscapeString(l.T("contact.heading")),
		html.EscapeString(l.T("contact.name")), html.EscapeString(msg.Name),
		html.EscapeString(l.T("contact.email")), html.EscapeString(msg.Email),
		phone, body)
}
