// Package devsender provides a mail transport for local development that
// writes every message to disk as an .eml file instead of delivering it.
package devsender

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

// Config holds development transport configuration.
type Config struct {
	Dir string `env:"DEV_MAIL_DIR" envDefault:"./outbox"`
}

// Sender saves composed messages to a directory.
type Sender struct {
	dir string
	now func() time.Time
	seq int
}

// New creates a development sender writing into cfg.Dir.
func New(cfg Config) *Sender {
	return &Sender{dir: cfg.Dir, now: time.Now}
}

// Dial implements mailer.Dialer. The directory is created if missing.
func (s *Sender) Dial(ctx context.Context) (mailer.Session, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %v", mailer.ErrConnectFailed, err)
	}
	return mailer.NopCloser(s), nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := mailer.Compose(email)
	if err != nil {
		return err
	}

	s.seq++
	name := fmt.Sprintf("%s_%03d_%s.eml", s.now().Format("2006_01_02_150405"), s.seq, sanitizeFilename(email.To[0]))
	if err := os.WriteFile(filepath.Join(s.dir, name), msg, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write message: %v", mailer.ErrSendFailed, err)
	}
	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(mailer.AddressOnly(s), "@", "_at_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
