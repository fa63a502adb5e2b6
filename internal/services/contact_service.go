package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ContactConfig is what the notifications need to know about the site owner.
type ContactConfig struct {
	OwnerName   string
	OwnerEmail  string        // recipient of the owner notification
	SendTimeout time.Duration // per message
}

// ContactService stores contact messages and sends the two notifications.
type ContactService interface {
	// Submit validates and stores req. A nil error means the message is
	// persisted; notification outcomes never change it.
	Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) error
	// Wait blocks until every notification started so far has finished.
	Wait()
}

type contactService struct {
	contactRepo repositories.ContactRepository
	validator   *validator.Validator
	mailer      email.Provider
	templates   email.TemplateRenderer
	cfg         ContactConfig
	inflight    sync.WaitGroup
}

func NewContactService(
	contactRepo repositories.ContactRepository,
	v *validator.Validator,
	mailer email.Provider,
	templates email.TemplateRenderer,
	cfg ContactConfig,
) ContactService {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	return &contactService{
		contactRepo: contactRepo,
		validator:   v,
		mailer:      mailer,
		templates:   templates,
		cfg:         cfg,
	}
}

func (s *contactService) Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) error {
	req.Normalize()
	if err := s.validate(req); err != nil {
		return err
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(db.WithContext(ctx), msg); err != nil {
		return apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "Contact message stored", "contact_id", msg.ID)

	s.notify(ctx, msg)
	return nil
}

func (s *contactService) Wait() {
	s.inflight.Wait()
}

func (s *contactService) validate(req *dto.ContactRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	vErr, ok := err.(*validator.ValidationError)
	if !ok {
		return apperrors.InternalError(err)
	}
	if vErr.HasTag("required") {
		return apperrors.ErrContactFieldsRequired.WithDetails(vErr.Errors)
	}
	for _, f := range vErr.Failures {
		if f.Tag == "max" {
			return apperrors.ErrContactFieldTooLong(f.Field)
		}
	}
	return apperrors.ValidationError(vErr.Errors)
}

// notify starts the confirmation and the owner notification independently.
// Both outlive the request but are bounded by SendTimeout.
func (s *contactService) notify(ctx context.Context, msg *models.ContactMessage) {
	base := context.WithoutCancel(ctx)
	data := email.TemplateData{
		"Name":      msg.Name,
		"Email":     msg.Email,
		"Subject":   msg.Subject,
		"Message":   msg.Message,
		"OwnerName": s.cfg.OwnerName,
	}

	s.send(base, "submitter", email.TemplateContactConfirmation, data, msg.Email, "")
	s.send(base, "owner", email.TemplateContactNotification, data, s.cfg.OwnerEmail, msg.Email)
}

func (s *contactService) send(base context.Context, role, template string, data email.TemplateData, to, replyTo string) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(base, s.cfg.SendTimeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				logger.CtxWithError(ctx, "Contact notification panicked", fmt.Errorf("%v", r), "recipient_role", role)
			}
		}()

		subject, body, err := s.templates.RenderMessage(template, data)
		if err != nil {
			logger.CtxWithError(ctx, "Contact notification not rendered", err, "recipient_role", role)
			return
		}

		err = s.mailer.Send(ctx, &email.Email{
			To:      []string{to},
			ReplyTo: replyTo,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			logger.CtxWithError(ctx, "Contact notification failed", err, "recipient_role", role)
			return
		}
		logger.CtxInfo(ctx, "Contact notification sent", "recipient_role", role)
	}()
}
