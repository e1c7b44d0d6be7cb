package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RunSummaryEmailData holds data for the assignment run summary email sent
// to the operator after a committed run.
type RunSummaryEmailData struct {
	OperatorEmail string
	EventID       string
	ChartID       string
	AssignedCount int
	Exceptions    []RunException
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRunSummary(ctx context.Context, data *RunSummaryEmailData) error
}
