package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

// Dialer opens authenticated SMTP sessions.
type Dialer struct {
	config Config
}

// New creates an SMTP dialer.
func New(cfg Config) *Dialer {
	return &Dialer{config: cfg}
}

// Dial implements mailer.Dialer.
// Network and TLS problems are reported as mailer.ErrConnectFailed,
// rejected credentials as mailer.ErrAuthFailed.
func (d *Dialer) Dial(ctx context.Context) (mailer.Session, error) {
	addr := net.JoinHostPort(d.config.Host, strconv.Itoa(d.config.Port))
	security := d.config.security()
	tlsConfig := &tls.Config{ServerName: d.config.Host, MinVersion: tls.VersionTLS12}
	netDialer := &net.Dialer{Timeout: d.config.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if security == SecurityTLS {
		conn, err = (&tls.Dialer{NetDialer: netDialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = netDialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", mailer.ErrConnectFailed, addr, err)
	}

	client, err := smtp.NewClient(conn, d.config.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %s: %v", mailer.ErrConnectFailed, addr, err)
	}

	if security == SecurityStartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			_ = client.Close()
			return nil, fmt.Errorf("%w: %s: server does not offer STARTTLS", mailer.ErrConnectFailed, addr)
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%w: %s: starttls: %v", mailer.ErrConnectFailed, addr, err)
		}
	}

	if d.config.Username != "" {
		auth := smtp.PlainAuth("", d.config.Username, d.config.Password, d.config.Host)
		if err := client.Auth(auth); err != nil {
			_ = client.Close()
			return nil, classifyAuthError(err)
		}
	}

	return &Session{client: client}, nil
}

// classifyAuthError separates credential rejections from broken connections.
func classifyAuthError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", mailer.ErrConnectFailed, err)
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && protoErr.Code/100 == 4 {
		return fmt.Errorf("%w: %v", mailer.ErrConnectFailed, err)
	}
	return fmt.Errorf("%w: %v", mailer.ErrAuthFailed, err)
}
