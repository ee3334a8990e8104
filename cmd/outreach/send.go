package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/outreach/internal/campaign"
	"github.com/dmitrymomot/outreach/pkg/config"
	"github.com/dmitrymomot/outreach/pkg/mailer"
	"github.com/dmitrymomot/outreach/pkg/mailer/devsender"
	"github.com/dmitrymomot/outreach/pkg/mailer/resend"
	"github.com/dmitrymomot/outreach/pkg/mailer/smtp"
	"github.com/dmitrymomot/outreach/pkg/recipient"
)

// Mail transports selectable with MAIL_TRANSPORT.
const (
	transportSMTP   = "smtp"
	transportResend = "resend"
	transportDev    = "dev"
)

var errUnknownTransport = errors.New("unknown mail transport")

type sendConfig struct {
	RecipientsFile string `env:"RECIPIENTS_FILE" envDefault:"recipients.xlsx"`
	TemplateDir    string `env:"TEMPLATE_DIR" envDefault:"templates"`
	Transport      string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	Campaign       campaign.Config
	Columns        recipient.Columns
	SMTP           smtp.Config
	Resend         resend.Config
	Dev            devsender.Config
}

func cmdSend(ctx context.Context, log *slog.Logger, stdout io.Writer) error {
	var cfg sendConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	dialer, err := newDialer(cfg)
	if err != nil {
		return err
	}

	runner := campaign.New(
		recipient.NewStore(cfg.RecipientsFile, cfg.Columns),
		mailer.NewTemplateStore(os.DirFS(cfg.TemplateDir)),
		dialer,
		cfg.Campaign,
		campaign.WithLogger(log),
	)

	fmt.Fprintln(stdout, "--- Starting Email Sender ---")
	report, err := runner.Run(ctx)
	if report != nil {
		printReport(stdout, report)
	}
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return campaign.ErrDeliveryFailed
	}
	return nil
}

// newDialer picks the mail transport. SMTP logs in as the sender unless a
// separate username is configured.
func newDialer(cfg sendConfig) (mailer.Dialer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", transportSMTP:
		smtpCfg := cfg.SMTP
		if smtpCfg.Username == "" {
			smtpCfg.Username = cfg.Campaign.Identity.Email
		}
		return smtp.New(smtpCfg), nil
	case transportResend:
		return resend.New(cfg.Resend), nil
	case transportDev:
		return devsender.New(cfg.Dev), nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownTransport, cfg.Transport)
}

func printReport(w io.Writer, report *campaign.Report) {
	for _, o := range report.Outcomes {
		fmt.Fprintln(w, "  "+outcomeLine(o))
	}
	fmt.Fprintf(w, "\n%s\n", report.Summary())
}

func outcomeLine(o campaign.Outcome) string {
	switch o.Status {
	case campaign.StatusSent:
		return fmt.Sprintf("[SUCCESS] Email sent to %s at %s", o.Name, o.Email)
	case campaign.StatusSkippedAlreadySent:
		return fmt.Sprintf("[SKIPPED] Email for %s already marked as 'Sent or Response'.", o.Name)
	case campaign.StatusSkippedNoTemplate:
		return fmt.Sprintf("[SKIPPED] No template file specified for %s.", o.Name)
	case campaign.StatusSkippedLoadFailed:
		return fmt.Sprintf("[SKIPPED] Could not load template for %s: %v", o.Name, o.Err)
	case campaign.StatusSkippedBindFailed:
		return fmt.Sprintf("[SKIPPED] Could not personalize template for %s: %v", o.Name, o.Err)
	case campaign.StatusFailed:
		return fmt.Sprintf("[FAILED] Email to %s at %s: %v", o.Name, o.Email, o.Err)
	}
	return fmt.Sprintf("[%s] %s", o.Status, o.Name)
}
