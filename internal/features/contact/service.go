package contact

import (
	"context"
	"fmt"
	"html"
	"time"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/export"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/email"

	"go.uber.org/zap"
)

type ContactService interface {
	Submit(ctx context.Context, input SubmitInput) (*Submission, error)
	List(ctx context.Context, lq ListQuery, q models.PageQuery) ([]Submission, int64, error)
	Export(ctx context.Context) ([]byte, error)
}

type ContactServiceImpl struct {
	Repo   ContactRepository
	Email  email.EmailService
	Logger *zap.Logger
}

func NewContactService(repo ContactRepository, emailService email.EmailService, logger *zap.Logger) ContactService {
	return &ContactServiceImpl{
		Repo:   repo,
		Email:  emailService,
		Logger: logger,
	}
}

var exportColumns = []export.Column{
	{Header: "Full Name", Key: "fullName", Width: 25},
	{Header: "Email", Key: "email", Width: 30},
	{Header: "Phone", Key: "phone", Width: 18},
	{Header: "Message", Key: "message", Width: 60},
	{Header: "Submitted At", Key: "createdAt", Width: 22},
}

func (s *ContactServiceImpl) Submit(ctx context.Context, input SubmitInput) (*Submission, error) {
	input = input.Normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	sub := input.Sanitize()
	sub.CreatedAt = time.Now().UTC()
	if err := s.Repo.Create(ctx, &sub); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to save contact form", err)
	}

	s.notify(ctx, &sub)
	return &sub, nil
}

// notify mails the admin inbox; failures never fail the submission.
func (s *ContactServiceImpl) notify(ctx context.Context, sub *Submission) {
	if s.Email == nil || !s.Email.Enabled() {
		return
	}
	body := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p>%s</p>",
		html.EscapeString(sub.FullName), html.EscapeString(sub.Email),
		html.EscapeString(sub.Phone), html.EscapeString(sub.Message),
	)
	err := s.Email.Send(ctx, email.Message{
		To:         []string{s.Email.NotifyAddress()},
		Subject:    "New contact form submission from " + sub.FullName,
		HtmlBody:   body,
		EntityType: "contactforms",
		EntityID:   sub.ID.Hex(),
	})
	if err != nil {
		s.Logger.Warn("Contact notification failed", zap.String("submission", sub.ID.Hex()), zap.Error(err))
	}
}

func (s *ContactServiceImpl) List(ctx context.Context, lq ListQuery, q models.PageQuery) ([]Submission, int64, error) {
	return s.Repo.List(ctx, lq, q)
}

func (s *ContactServiceImpl) Export(ctx context.Context) ([]byte, error) {
	subs, err := s.Repo.All(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, map[string]any{
			"fullName":  sub.FullName,
			"email":     sub.Email,
			"phone":     sub.Phone,
			"message":   sub.Message,
			"createdAt": sub.CreatedAt,
		})
	}
	return export.XLSX("Contact Submissions", exportColumns, rows)
}
