package domain

import "context"

// Mailer sends a single email message. Implementations may use SES or a
// no-op sender in development.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, HTML,
// and plain-text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmationEmailData is the template data for the booking
// confirmation email.
type BookingConfirmationEmailData struct {
	Email      string
	EventTitle string
	EventDate  string
	EventTime  string
	Venue      string
	Location   string
}

// EmailService sends application emails.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, data *BookingConfirmationEmailData) error
}
