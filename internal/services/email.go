package services

import (
	"context"
	"fmt"
	"log"

	"venueseating/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRunSummary emails the operator a summary of a committed assignment
// run using the "run_summary" template.
func (s *emailService) SendRunSummary(ctx context.Context, data *domain.RunSummaryEmailData) error {
	if data == nil {
		return fmt.Errorf("run summary data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("run_summary", data)
	if err != nil {
		return fmt.Errorf("failed to render run_summary template: %w", err)
	}
	if err := s.mailer.Send(data.OperatorEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send run summary email: %w", err)
	}
	log.Printf("[EMAIL] Run summary sent to %s", data.OperatorEmail)
	return nil
}
