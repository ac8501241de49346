package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"kerramientas-backend/internal/domain"
)

type emailService struct {
	client   *sendgrid.Client
	from     *mail.Email
	disabled bool
}

// NewEmailService builds a SendGrid-backed mailer. With an empty API
// key it runs disabled, which is how local development and the memory
// mode operate.
func NewEmailService(apiKey, fromName, fromAddress string) EmailService {
	return &emailService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     mail.NewEmail(fromName, fromAddress),
		disabled: apiKey == "",
	}
}

func (s *emailService) SendRequestCreated(ctx context.Context, ownerEmail, consumerName, toolName string, requestID int32) error {
	subject := "New rental request"
	body := fmt.Sprintf("%s requested to rent %s (request #%d). Open the app to confirm or reject it.", consumerName, toolName, requestID)
	return s.send(ctx, ownerEmail, subject, body)
}

func (s *emailService) SendRequestStatusChanged(ctx context.Context, email string, requestID int32, status domain.RequestStatus) error {
	subject := fmt.Sprintf("Rental request #%d is now %s", requestID, status)
	body := fmt.Sprintf("The status of rental request #%d changed to %q. Open the app for details.", requestID, status)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email string, rentalID int32, endDate string) error {
	subject := "Rental overdue"
	body := fmt.Sprintf("Your rental #%d was due back on %s. Please return the tool as soon as possible.", rentalID, endDate)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) send(ctx context.Context, toAddress, subject, body string) error {
	if s.disabled {
		return nil
	}
	to := mail.NewEmail("", toAddress)
	msg := mail.NewSingleEmail(s.from, subject, to, body, body)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return &domain.NetworkError{Op: "sendgrid send", Err: err}
	}
	if resp.StatusCode >= 400 {
		return &domain.NetworkError{Op: "sendgrid send", Err: fmt.Errorf("status %d: %s", resp.StatusCode, resp.Body)}
	}
	return nil
}
