package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationEmailData holds data for the registration confirmation email.
type RegistrationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	Venue      string
	Date       string
	StartTime  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
}
