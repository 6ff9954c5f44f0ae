package services

import (
	"context"
	"fmt"
	"log/slog"

	"collegeevents/internal/domain"
)

const registrationConfirmedTemplate = "registration_confirmed"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration email data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("%w: registration email has no recipient", domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(registrationConfirmedTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", registrationConfirmedTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	s.logger.InfoContext(ctx, "registration confirmation sent", "to", data.Email, "event", data.EventTitle)
	return nil
}
