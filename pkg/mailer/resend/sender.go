package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

// Config holds Resend provider configuration.
// SenderEmail and SenderName are used only when an email carries no From.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}

// Sender implements mailer.Sender and mailer.Dialer using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Dial implements mailer.Dialer.
// Resend is stateless HTTP, so the session only checks that a key is configured.
func (s *Sender) Dial(ctx context.Context) (mailer.Session, error) {
	if s.config.APIKey == "" {
		return nil, fmt.Errorf("%w: resend: API key is not configured", mailer.ErrAuthFailed)
	}
	return mailer.NopCloser(s), nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		attachments, err := convertAttachments(email.Attachments)
		if err != nil {
			return err
		}
		req.Attachments = attachments
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("%w: resend: %v", mailer.ErrSendFailed, err)
	}

	return nil
}

// convertAttachments reads file-backed attachments; inline parts keep their
// content-id so cid: references in the HTML resolve.
func convertAttachments(attachments []mailer.Attachment) ([]*resend.Attachment, error) {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		content, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result, nil
}
