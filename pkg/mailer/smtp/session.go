package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

// Session is an authenticated SMTP connection reused across messages.
type Session struct {
	client *smtp.Client
	closed bool
}

// Send implements mailer.Sender.
// A rejected message resets the transaction so the session stays usable.
func (s *Session) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return fmt.Errorf("%w: session closed", mailer.ErrSendFailed)
	}

	msg, err := mailer.Compose(email)
	if err != nil {
		return err
	}

	if err := s.transmit(email, msg); err != nil {
		_ = s.client.Reset()
		return fmt.Errorf("%w: %v", mailer.ErrSendFailed, err)
	}
	return nil
}

func (s *Session) transmit(email *mailer.Email, msg []byte) error {
	if err := s.client.Mail(mailer.AddressOnly(email.From)); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	for _, rcpt := range envelopeRecipients(email) {
		if err := s.client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("DATA: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	return nil
}

// Close sends QUIT and closes the connection. Subsequent calls are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.client.Quit(); err != nil {
		_ = s.client.Close()
		return err
	}
	return nil
}

func envelopeRecipients(email *mailer.Email) []string {
	out := make([]string, 0, len(email.To)+len(email.CC)+len(email.BCC))
	for _, list := range [][]string{email.To, email.CC, email.BCC} {
		for _, addr := range list {
			if addr != "" {
				out = append(out, mailer.AddressOnly(addr))
			}
		}
	}
	return out
}
