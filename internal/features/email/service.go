package email

import (
	"context"
	"errors"

	"invest-portal/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// Sender delivers composed messages; *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService interface {
	// Enabled reports whether SMTP is configured.
	Enabled() bool
	// NotifyAddress is the inbox that receives admin notifications.
	NotifyAddress() string
	Send(ctx context.Context, msg Message) error
}

type EmailServiceImpl struct {
	Repo   EmailRepository
	Sender Sender
	From   string
	Notify string
	Logger *zap.Logger
}

func NewEmailService(cfg *config.Config, repo EmailRepository, logger *zap.Logger) EmailService {
	s := &EmailServiceImpl{
		Repo:   repo,
		From:   cfg.SMTP.From,
		Notify: cfg.SMTP.NotifyEmail,
		Logger: logger,
	}
	if cfg.SMTP.Enabled() {
		s.Sender = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
		if s.From == "" {
			s.From = cfg.SMTP.Username
		}
	}
	return s
}

func (s *EmailServiceImpl) Enabled() bool {
	return s.Sender != nil
}

func (s *EmailServiceImpl) NotifyAddress() string {
	return s.Notify
}

func (s *EmailServiceImpl) Send(ctx context.Context, msg Message) error {
	if s.Sender == nil {
		return ErrNotConfigured
	}

	record := &Email{
		From:       s.From,
		To:         msg.To,
		Subject:    msg.Subject,
		HtmlBody:   msg.HtmlBody,
		Status:     EmailQueued,
		EntityType: msg.EntityType,
		EntityID:   msg.EntityID,
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, record); err != nil {
			s.Logger.Warn("Failed to record email", zap.Error(err))
		}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HtmlBody)

	err := s.Sender.DialAndSend(m)

	status, errMsg := EmailSent, ""
	if err != nil {
		status, errMsg = EmailFailed, err.Error()
	}
	if s.Repo != nil && !record.ID.IsZero() {
		if uerr := s.Repo.UpdateStatus(ctx, record.ID, status, errMsg); uerr != nil {
			s.Logger.Warn("Failed to update email status", zap.Error(uerr))
		}
	}

	if err != nil {
		s.Logger.Error("Email delivery failed", zap.Strings("to", msg.To), zap.Error(err))
		return err
	}
	s.Logger.Info("Email sent", zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
