package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Email is an outbound message as accepted by the send_email tool.
type Email struct {
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	HTMLBody  string   `json:"htmlBody"`
	TextBody  string   `json:"textBody,omitempty"`
	FromEmail string   `json:"fromEmail,omitempty"`
	FromName  string   `json:"fromName,omitempty"`
}

// EmailResult is what SendEmail reports back to the caller.
type EmailResult struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Data    Email  `json:"data"`
}

// EmailSender delivers an email and returns the provider's message id.
type EmailSender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// SendEmail delivers the email through the configured sender. Without one it
// echoes the input back unsent.
func (s *Service) SendEmail(ctx context.Context, email Email) (*EmailResult, error) {
	if s.sender == nil {
		return &EmailResult{
			Message: "Email functionality not yet implemented",
			Data:    email,
		}, nil
	}
	id, err := s.sender.Send(ctx, email)
	if err != nil {
		return nil, err
	}
	return &EmailResult{Message: "Email sent", ID: id, Data: email}, nil
}

// HasSender reports whether SendEmail actually delivers.
func (s *Service) HasSender() bool {
	return s.sender != nil
}

type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	emails      resendEmails
	defaultFrom string
}

// NewResendSender returns a sender using apiKey. defaultFrom is used when the
// caller does not supply a sender address.
func NewResendSender(apiKey, defaultFrom string) *ResendSender {
	return &ResendSender{emails: resend.NewClient(apiKey).Emails, defaultFrom: defaultFrom}
}

var errNoSender = errors.New("no sender address: set fromEmail or EMAIL_FROM")

func (r *ResendSender) Send(ctx context.Context, email Email) (string, error) {
	from := r.defaultFrom
	if email.FromEmail != "" {
		from = email.FromEmail
	}
	if from == "" {
		return "", errNoSender
	}
	if email.FromName != "" && !strings.Contains(from, "<") {
		from = fmt.Sprintf("%s <%s>", email.FromName, from)
	}

	resp, err := r.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email via resend: %w", err)
	}
	return resp.Id, nil
}
