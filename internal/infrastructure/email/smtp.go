// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/outbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

const otpSubject = "CulinaMind Password Reset OTP"

// SMTPService sends mail through a configured SMTP relay with STARTTLS.
type SMTPService struct {
	cfg    config.EmailConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
	logger *zap.Logger
}

// NewSMTPService creates an SMTP email service.
func NewSMTPService(cfg config.EmailConfig, logger *zap.Logger) outbound.EmailService {
	return &SMTPService{cfg: cfg, send: smtp.SendMail, logger: logger}
}

// SendOTP emails a password reset code. The code expires server-side;
// the body states the window for the user.
func (s *SMTPService) SendOTP(ctx context.Context, to, code string) error {
	if s.cfg.SMTPHost == "" {
		s.logger.Warn("smtp not configured, otp email skipped", zap.String("to", to))
		return apperrors.New(apperrors.CodeServiceUnavailable, "Email service not configured", "")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<html><body><p>Your OTP is: <strong>%s</strong></p><p>This code expires in 10 minutes.</p></body></html>",
		code)
	msg := buildMessage(s.cfg.FromAddress, to, otpSubject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	if err := s.send(addr, auth, s.cfg.FromAddress, []string{to}, msg); err != nil {
		s.logger.Error("otp email send failed", zap.Error(err))
		return apperrors.NewExternalServiceError("smtp", err)
	}

	s.logger.Info("otp email sent", zap.String("to", to))
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
